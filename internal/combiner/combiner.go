// Package combiner merges the five Factor Calculator output maps into
// a single combined attribution map and derives summary statistics
// from it (spec §4.3).
package combiner

import (
	"fmt"

	"github.com/b2b-attribution/engine/internal/domain"
)

// FactorMaps groups the five factor outputs under their combine-weight
// names.
type FactorMaps struct {
	Time     map[string]float64
	Quality  map[string]float64
	Account  map[string]float64
	Stage    map[string]float64
	Velocity map[string]float64
}

// Combine computes the weighted sum of the five factor maps. weights
// is renormalized to sum to 1; a weight vector that sums to zero is a
// validation error the caller (the facade) must reject before calling
// Combine — see domain.CombineWeights.Sum.
func Combine(maps FactorMaps, weights domain.CombineWeights) (map[string]float64, error) {
	total := weights.Sum()
	if total <= 0 {
		return nil, fmt.Errorf("combine weights must sum to a positive value, got %v", total)
	}

	norm := domain.CombineWeights{
		Time:     weights.Time / total,
		Quality:  weights.Quality / total,
		Account:  weights.Account / total,
		Stage:    weights.Stage / total,
		Velocity: weights.Velocity / total,
	}

	ids := make(map[string]struct{})
	for _, m := range []map[string]float64{maps.Time, maps.Quality, maps.Account, maps.Stage, maps.Velocity} {
		for id := range m {
			ids[id] = struct{}{}
		}
	}

	combined := make(map[string]float64, len(ids))
	for id := range ids {
		combined[id] = maps.Time[id]*norm.Time +
			maps.Quality[id]*norm.Quality +
			maps.Account[id]*norm.Account +
			maps.Stage[id]*norm.Stage +
			maps.Velocity[id]*norm.Velocity
	}

	return combined, nil
}
