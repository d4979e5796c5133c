package factors

import (
	"github.com/b2b-attribution/engine/internal/domain"
	"github.com/b2b-attribution/engine/internal/primitives"
)

// PipelineVelocity implements spec §4.2.5: touchpoints in an account
// with a won opportunity get stamped with that opportunity's velocity
// signal — how the actual sales cycle compares to the expected cycle
// for its deal-size tier. Demo requests and sales calls get an extra
// 1.2x impact multiplier. A touchpoint shared by several won
// opportunities in the same account accumulates each one's
// contribution; there is no normalization.
func PipelineVelocity(weights domain.WeightTables, opportunities []domain.Opportunity, touchpoints []domain.Touchpoint) map[string]float64 {
	byAccount := groupTouchpointsByAccount(touchpoints)
	result := make(map[string]float64)

	for _, opp := range opportunities {
		accountTouchpoints := byAccount[opp.AccountID]
		if len(accountTouchpoints) == 0 {
			continue
		}

		expected := weights.ExpectedCycleDaysOf(opp.DealSizeTier)
		velocity := primitives.VelocityMultiplier(opp.EffectiveSalesCycleDays(), expected)

		for _, tp := range accountTouchpoints {
			base := tp.EngagementScore / 100

			impact := velocity
			if tp.TouchpointType == domain.TypeDemoRequest || tp.TouchpointType == domain.TypeSalesCall {
				impact = velocity * 1.2
			}

			result[tp.TouchpointID] += base * impact
		}
	}

	return result
}
