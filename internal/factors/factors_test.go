package factors

import (
	"math"
	"testing"
	"time"

	"github.com/b2b-attribution/engine/internal/domain"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// S1 from spec §8: single touchpoint, single deal.
func TestScenarioS1(t *testing.T) {
	weights := domain.DefaultWeightTables()
	close := day(100)
	opp := domain.Opportunity{
		OpportunityID:  "O",
		AccountID:      "ACC",
		Amount:         1000,
		CreatedDate:    day(0),
		CloseDate:      &close,
		SalesCycleDays: 100,
	}
	tp := domain.Touchpoint{
		TouchpointID:     "T",
		LeadID:           "L",
		AccountID:        "ACC",
		Timestamp:        day(100),
		TouchpointType:   domain.TypeDemoRequest,
		EngagementScore:  80,
		StageInfluence:   domain.StageEvaluation,
		Channel:          "website",
		IsSalesTouch:     true,
		IsMarketingTouch: true,
	}
	lead := domain.Lead{
		LeadID:             "L",
		AccountID:          "ACC",
		LeadScore:          70,
		DemographicScore:   60,
		FirmographicScore:  60,
		BehavioralScore:    60,
		QualityTier:        domain.TierB,
	}

	opps := []domain.Opportunity{opp}
	tps := []domain.Touchpoint{tp}
	leads := []domain.Lead{lead}

	tw := TimeWeighted(weights, opps, tps)
	if math.Abs(tw["T"]-1000) > 1e-6 {
		t.Errorf("time-weighted = %v, want 1000", tw["T"])
	}

	ab := AccountBased(weights, opps, tps)
	if math.Abs(ab["T"]-1000) > 1e-6 {
		t.Errorf("account-based = %v, want 1000", ab["T"])
	}

	qw := QualityWeighted(weights, leads, tps)
	want := 0.8 * 1.2 * 0.7 * 1.06 * 1.06
	if math.Abs(qw["T"]-want) > 1e-3 {
		t.Errorf("quality-weighted = %v, want ~%v", qw["T"], want)
	}

	sp := StageProgression(weights, tps)
	wantStage := 0.8 * 1.5 * 1.5
	if math.Abs(sp["T"]-wantStage) > 1e-9 {
		t.Errorf("stage-progression = %v, want %v", sp["T"], wantStage)
	}

	pv := PipelineVelocity(weights, opps, tps)
	// No deal-size tier, so the expected cycle is the 180-day default:
	// 100 actual days earns velocity 1 + (80/180)*0.5.
	wantVelocity := 0.8 * (1 + (180.0-100.0)/180.0*0.5) * 1.2
	if math.Abs(pv["T"]-wantVelocity) > 1e-9 {
		t.Errorf("pipeline-velocity = %v, want %v", pv["T"], wantVelocity)
	}
}

// S2 from spec §8: two touchpoints, conservation with skewed decay.
func TestScenarioS2Conservation(t *testing.T) {
	weights := domain.DefaultWeightTables()
	close := day(60)
	opp := domain.Opportunity{
		OpportunityID:  "O",
		AccountID:      "ACC",
		Amount:         1000,
		CreatedDate:    day(0),
		CloseDate:      &close,
		SalesCycleDays: 60,
	}
	a := domain.Touchpoint{TouchpointID: "A", AccountID: "ACC", Timestamp: day(0), TouchpointType: domain.TypeContentDownload, EngagementScore: 50}
	b := domain.Touchpoint{TouchpointID: "B", AccountID: "ACC", Timestamp: day(60), TouchpointType: domain.TypeContentDownload, EngagementScore: 50}

	tw := TimeWeighted(weights, []domain.Opportunity{opp}, []domain.Touchpoint{a, b})
	sum := tw["A"] + tw["B"]
	if math.Abs(sum-1000) > 1e-6 {
		t.Errorf("conservation violated: sum = %v, want 1000", sum)
	}
	if tw["B"] <= tw["A"] {
		t.Errorf("later touchpoint should dominate: A=%v B=%v", tw["A"], tw["B"])
	}
}

// S6 from spec §8: accelerated enterprise deal.
func TestScenarioS6AcceleratedEnterprise(t *testing.T) {
	weights := domain.DefaultWeightTables()
	opp := domain.Opportunity{
		OpportunityID:       "O",
		AccountID:           "ACC",
		Amount:              100000,
		CreatedDate:         day(0),
		SalesCycleDays:      135,
		DealSizeTier:        domain.TierEnterprise,
		DecisionMakersCount: 3,
		InfluencersCount:    2,
	}
	tp := domain.Touchpoint{
		TouchpointID:    "T",
		AccountID:       "ACC",
		Timestamp:       day(0),
		TouchpointType:  domain.TypeDemoRequest,
		EngagementScore: 100,
	}

	ab := AccountBased(weights, []domain.Opportunity{opp}, []domain.Touchpoint{tp})
	if math.Abs(ab["T"]-100000) > 1e-6 {
		t.Errorf("account-based = %v, want 100000 (single touchpoint captures full amount)", ab["T"])
	}

	pv := PipelineVelocity(weights, []domain.Opportunity{opp}, []domain.Touchpoint{tp})
	want := 1.0 * 1.25 * 1.2
	if math.Abs(pv["T"]-want) > 1e-9 {
		t.Errorf("pipeline-velocity = %v, want %v", pv["T"], want)
	}
}

// S4 from spec §8: no touchpoints in window.
func TestScenarioS4EmptyInputs(t *testing.T) {
	weights := domain.DefaultWeightTables()
	opp := domain.Opportunity{OpportunityID: "O", AccountID: "ACC", Amount: 1000}

	if got := TimeWeighted(weights, []domain.Opportunity{opp}, nil); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
	if got := AccountBased(weights, []domain.Opportunity{opp}, nil); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
	if got := QualityWeighted(weights, nil, nil); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
	if got := StageProgression(weights, nil); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
	if got := PipelineVelocity(weights, []domain.Opportunity{opp}, nil); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func TestQualityWeightedSkipsUnknownLead(t *testing.T) {
	weights := domain.DefaultWeightTables()
	tp := domain.Touchpoint{TouchpointID: "T", LeadID: "ghost", EngagementScore: 90}
	got := QualityWeighted(weights, nil, []domain.Touchpoint{tp})
	if _, ok := got["T"]; ok {
		t.Errorf("expected touchpoint with unknown lead to be skipped, got %v", got)
	}
}
