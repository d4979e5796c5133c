package analyzer

import (
	"github.com/b2b-attribution/engine/internal/domain"
	"github.com/b2b-attribution/engine/internal/primitives"
)

// AlignmentReport is the sales/marketing alignment diagnostic of spec
// §4.4: the partitioned attribution split, its percentages, the
// alignment score and grade, and rule-generated recommendations.
type AlignmentReport struct {
	SalesAttribution     float64  `json:"sales_attribution"`
	MarketingAttribution float64  `json:"marketing_attribution"`
	JointAttribution     float64  `json:"joint_attribution"`
	SalesPercentage      float64  `json:"sales_percentage"`
	MarketingPercentage  float64  `json:"marketing_percentage"`
	JointPercentage      float64  `json:"joint_percentage"`
	AlignmentScore       float64  `json:"alignment_score"`
	Grade                string   `json:"grade"`
	Recommendations      []string `json:"recommendations"`
}

// AnalyzeSalesMarketingAlignment partitions the combined attribution
// map by each touchpoint's sales/marketing flags (touchpoints with
// neither flag set are excluded from the partition) and derives the
// alignment score, grade and recommendations of spec §4.1/§4.4.
func AnalyzeSalesMarketingAlignment(combined map[string]float64, touchpoints []domain.Touchpoint) AlignmentReport {
	byID := make(map[string]domain.Touchpoint, len(touchpoints))
	for _, tp := range touchpoints {
		byID[tp.TouchpointID] = tp
	}

	var totals primitives.AlignmentTotals
	for tpID, value := range combined {
		tp, ok := byID[tpID]
		if !ok {
			continue
		}
		switch {
		case tp.IsJoint():
			totals.Joint += value
		case tp.IsSalesTouch:
			totals.Sales += value
		case tp.IsMarketingTouch:
			totals.Marketing += value
		}
	}

	total := totals.Sales + totals.Marketing + totals.Joint
	report := AlignmentReport{
		SalesAttribution:     totals.Sales,
		MarketingAttribution: totals.Marketing,
		JointAttribution:     totals.Joint,
		AlignmentScore:       primitives.AlignmentScore(totals),
	}
	if total > 0 {
		report.SalesPercentage = totals.Sales / total * 100
		report.MarketingPercentage = totals.Marketing / total * 100
		report.JointPercentage = totals.Joint / total * 100
	}
	report.Grade = primitives.AlignmentGrade(report.AlignmentScore)
	report.Recommendations = generateRecommendations(report)

	return report
}

// generateRecommendations applies the rule-generated recommendation
// strings of spec §4.4 in the order the rules are listed.
func generateRecommendations(r AlignmentReport) []string {
	recs := make([]string, 0)

	if r.AlignmentScore < 50 {
		recs = append(recs, "poor alignment, implement joint planning")
	}

	switch {
	case r.SalesPercentage > 60:
		recs = append(recs, "reduce sales dominance, strengthen nurturing")
	case r.SalesPercentage < 20:
		recs = append(recs, "increase sales involvement")
	}

	switch {
	case r.MarketingPercentage > 60:
		recs = append(recs, "reduce marketing dominance, strengthen sales enablement")
	case r.MarketingPercentage < 20:
		recs = append(recs, "increase marketing involvement")
	}

	switch {
	case r.JointPercentage < 10:
		recs = append(recs, "add collaborative activities")
	case r.JointPercentage > 40:
		recs = append(recs, "clarify ownership")
	}

	if r.AlignmentScore >= 80 {
		recs = append(recs, "excellent alignment, share practices")
	}

	return recs
}
