package factors

import (
	"github.com/b2b-attribution/engine/internal/domain"
	"github.com/b2b-attribution/engine/internal/primitives"
)

// AccountBased implements spec §4.2.3: attribution shaped by account
// complexity, buying-committee size and deal-size tier, normalized per
// opportunity and scaled by its amount. Like TimeWeighted, this factor
// conserves deal value across an opportunity's account touchpoints
// (spec §8 property 2).
func AccountBased(weights domain.WeightTables, opportunities []domain.Opportunity, touchpoints []domain.Touchpoint) map[string]float64 {
	byAccount := groupTouchpointsByAccount(touchpoints)
	result := make(map[string]float64)

	for _, opp := range opportunities {
		accountTouchpoints := byAccount[opp.AccountID]
		if len(accountTouchpoints) == 0 {
			continue
		}

		complexity := primitives.AccountComplexity(opp)
		committeeFactor := 1 + 0.1*float64(opp.CommitteeSize())
		dealSizeMult := weights.DealSizeMultiplierOf(opp.DealSizeTier)

		rawWeights := make(map[string]float64, len(accountTouchpoints))
		var total float64
		for _, tp := range accountTouchpoints {
			base := weights.TouchpointTypeWeightOf(tp.TouchpointType) * (tp.EngagementScore / 100)
			switch {
			case tp.IsSalesTouch:
				base *= 1.3
			case tp.IsMarketingTouch:
				base *= 1.0
			}

			w := base * complexity * committeeFactor * dealSizeMult
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
