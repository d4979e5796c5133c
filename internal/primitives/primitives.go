// Package primitives holds the pure weighting formulas shared by the
// factor calculators: the time-decay kernel, account complexity
// multiplier, velocity multiplier and sales/marketing alignment score.
// Every function here is stateless and side-effect free so it can be
// called from goroutines without synchronization.
package primitives

import (
	"math"

	"github.com/b2b-attribution/engine/internal/domain"
)

// HalfLifeDays derives the exponential decay half-life for an
// opportunity's sales cycle, enforcing floorDays (configurable, spec
// §3 default 14) so very short cycles don't collapse all weight onto
// the final touch.
func HalfLifeDays(salesCycleDays int, floorDays float64) float64 {
	h := 0.3 * float64(salesCycleDays)
	if h < floorDays {
		return floorDays
	}
	return h
}

// TimeDecayKernel returns the exponential decay weight for a
// touchpoint gapDays before the conversion instant, given a half-life
// in days. Negative gaps (touchpoint after conversion) clip to zero gap.
func TimeDecayKernel(gapDays float64, halfLifeDays float64) float64 {
	if gapDays < 0 {
		gapDays = 0
	}
	return math.Exp(-gapDays / halfLifeDays)
}

// AccountComplexity computes the cumulative complexity multiplier for
// an opportunity: deal-size tier, buying-committee size and sales-cycle
// length each add independently, starting from a base of 1.0.
func AccountComplexity(o domain.Opportunity) float64 {
	complexity := 1.0

	switch o.DealSizeTier {
	case domain.TierEnterprise:
		complexity += 0.3
	case domain.TierMidMarket:
		complexity += 0.15
	}

	committee := o.CommitteeSize()
	switch {
	case committee > 5:
		complexity += 0.2
	case committee > 3:
		complexity += 0.1
	}

	cycle := o.EffectiveSalesCycleDays()
	switch {
	case cycle > 365:
		complexity += 0.25
	case cycle > 180:
		complexity += 0.15
	}

	return complexity
}

// VelocityMultiplier scores how an opportunity's actual sales cycle
// compares to the expected cycle for its deal-size tier. Faster-than-
// expected deals earn a bonus above 1; slower deals decay toward a
// floor of 0.5.
func VelocityMultiplier(actualDays, expectedDays int) float64 {
	actual := float64(actualDays)
	expected := float64(expectedDays)
	if expected <= 0 {
		return 1.0
	}
	if actual < expected {
		return 1 + ((expected-actual)/expected)*0.5
	}
	v := 1 - ((actual-expected)/expected)*0.3
	if v < 0.5 {
		return 0.5
	}
	return v
}

// AlignmentTotals are the three partition sums alignment scoring
// operates on.
type AlignmentTotals struct {
	Sales     float64
	Marketing float64
	Joint     float64
}

// AlignmentScore computes the 0-100 alignment score: how close the
// sales/marketing/joint split is to the ideal 40/40/20 balance.
func AlignmentScore(t AlignmentTotals) float64 {
	total := t.Sales + t.Marketing + t.Joint
	if total == 0 {
		return 0
	}

	salesPct := t.Sales / total * 100
	marketingPct := t.Marketing / total * 100
	jointPct := t.Joint / total * 100

	deviation := math.Abs(marketingPct-40) + math.Abs(salesPct-40) + math.Abs(jointPct-20)
	score := 100 - deviation
	if score < 0 {
		return 0
	}
	return score
}

// AlignmentGrade maps an alignment score to a letter grade per the
// boundaries in spec §4.1.
func AlignmentGrade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}
