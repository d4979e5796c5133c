package factors

import "github.com/b2b-attribution/engine/internal/domain"

// QualityWeighted implements spec §4.2.2: a quality-adjusted
// engagement score per touchpoint, driven by the owning lead's
// quality tier, lead score and demographic/firmographic scores.
// Touchpoints whose lead is unknown are skipped. The result is not
// normalized — it is a unit-free positive score, not deal currency.
func QualityWeighted(weights domain.WeightTables, leads []domain.Lead, touchpoints []domain.Touchpoint) map[string]float64 {
	byLead := leadLookup(leads)
	result := make(map[string]float64)

	for _, tp := range touchpoints {
		lead, ok := byLead[tp.LeadID]
		if !ok {
			continue
		}

		base := tp.EngagementScore / 100
		qualMult := weights.QualityMultiplierOf(lead.QualityTier)
		scoreMult := float64(lead.LeadScore) / 100
		if scoreMult > 2.0 {
			scoreMult = 2.0
		}
		demoBonus := 1 + float64(lead.DemographicScore)/1000
		firmoBonus := 1 + float64(lead.FirmographicScore)/1000

		result[tp.TouchpointID] = base * qualMult * scoreMult * demoBonus * firmoBonus
	}

	return result
}
