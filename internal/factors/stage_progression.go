package factors

import "github.com/b2b-attribution/engine/internal/domain"

// StageProgression implements spec §4.2.4: a per-touchpoint score
// combining engagement, the funnel stage it influenced and its
// touchpoint-type weight. Computed independently of any opportunity —
// no normalization, no coupling across touchpoints.
func StageProgression(weights domain.WeightTables, touchpoints []domain.Touchpoint) map[string]float64 {
	result := make(map[string]float64, len(touchpoints))
	for _, tp := range touchpoints {
		value := (tp.EngagementScore / 100) *
			weights.StageWeightOf(tp.StageInfluence) *
			weights.TouchpointTypeWeightOf(tp.TouchpointType)
		result[tp.TouchpointID] = value
	}
	return result
}
