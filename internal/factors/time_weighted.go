package factors

import (
	"github.com/b2b-attribution/engine/internal/domain"
	"github.com/b2b-attribution/engine/internal/primitives"
)

// TimeWeighted implements spec §4.2.1: per opportunity, touchpoints in
// its account are weighted by an exponential time-decay kernel times
// the touchpoint-type weight, normalized to sum to 1 and scaled by the
// opportunity amount. This is the factor the conservation property
// (spec §8 property 1) is checked against: for any opportunity with at
// least one account touchpoint, the contributions sum to its amount.
func TimeWeighted(weights domain.WeightTables, opportunities []domain.Opportunity, touchpoints []domain.Touchpoint) map[string]float64 {
	byAccount := groupTouchpointsByAccount(touchpoints)
	result := make(map[string]float64)

	for _, opp := range opportunities {
		accountTouchpoints := byAccount[opp.AccountID]
		if len(accountTouchpoints) == 0 {
			continue
		}

		halfLife := primitives.HalfLifeDays(opp.EffectiveSalesCycleDays(), weights.HalfLifeFloorDays)
		conversion := opp.ConversionDate()

		rawWeights := make(map[string]float64, len(accountTouchpoints))
		var total float64
		for _, tp := range accountTouchpoints {
			gapDays := conversion.Sub(tp.Timestamp).Hours() / 24
			w := primitives.TimeDecayKernel(gapDays, halfLife) * weights.TouchpointTypeWeightOf(tp.TouchpointType)
			rawWeights[tp.TouchpointID] = w
			total += w
		}

		if total <= 0 {
			continue
		}
		for tpID, w := range rawWeights {
			result[tpID] += (w / total) * opp.Amount
		}
	}

	return result
}
