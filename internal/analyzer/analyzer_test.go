package analyzer

import (
	"math"
	"testing"

	"github.com/b2b-attribution/engine/internal/domain"
)

func TestAnalyzeChannelPerformanceROIAndOrdering(t *testing.T) {
	touchpoints := []domain.Touchpoint{
		{TouchpointID: "1", Channel: "website", TouchpointType: domain.TypeWebsiteVisit, Cost: 100},
		{TouchpointID: "2", Channel: "referral", TouchpointType: domain.TypeReferral, Cost: 0},
	}
	combined := map[string]float64{"1": 150, "2": 500}

	report := AnalyzeChannelPerformance(combined, touchpoints)
	if len(report.Channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(report.Channels))
	}
	// referral has infinite ROI (cost 0, attribution > 0), must rank first.
	if report.Channels[0].Channel != "referral" {
		t.Errorf("expected referral first (infinite ROI), got %s", report.Channels[0].Channel)
	}
	website := report.Channels[1]
	if math.Abs(website.ROI-0.5) > 1e-9 {
		t.Errorf("website ROI = %v, want 0.5", website.ROI)
	}
	if !contains(report.Insights, "best ROI channel: referral") {
		t.Errorf("expected best-ROI insight, got %v", report.Insights)
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func TestAnalyzeChannelPerformanceZeroAttributionZeroCost(t *testing.T) {
	touchpoints := []domain.Touchpoint{{TouchpointID: "1", Channel: "x", Cost: 0}}
	combined := map[string]float64{"1": 0}
	report := AnalyzeChannelPerformance(combined, touchpoints)
	if report.Channels[0].ROI != 0 {
		t.Errorf("expected ROI 0, got %v", report.Channels[0].ROI)
	}
}

func TestAnalyzeChannelPerformanceCostWithZeroAttribution(t *testing.T) {
	touchpoints := []domain.Touchpoint{{TouchpointID: "1", Channel: "tradeshow", Cost: 250}}
	combined := map[string]float64{"1": 0}
	report := AnalyzeChannelPerformance(combined, touchpoints)
	if len(report.Channels) != 1 {
		t.Fatalf("expected 1 channel, got %d", len(report.Channels))
	}
	m := report.Channels[0]
	if m.CostPerAttribution != 0 {
		t.Errorf("cost_per_attribution = %v, want 0 when attribution is zero", m.CostPerAttribution)
	}
	if math.Abs(m.ROI+1) > 1e-9 {
		t.Errorf("ROI = %v, want -1 (cost > 0, attribution 0)", m.ROI)
	}
}

func TestAnalyzeSalesMarketingAlignmentAllJoint(t *testing.T) {
	touchpoints := []domain.Touchpoint{
		{TouchpointID: "T", IsSalesTouch: true, IsMarketingTouch: true},
	}
	combined := map[string]float64{"T": 1000}
	report := AnalyzeSalesMarketingAlignment(combined, touchpoints)

	if report.JointPercentage != 100 {
		t.Errorf("joint pct = %v, want 100", report.JointPercentage)
	}
	if report.AlignmentScore != 0 {
		t.Errorf("alignment score = %v, want 0", report.AlignmentScore)
	}
	if report.Grade != "F" {
		t.Errorf("grade = %q, want F", report.Grade)
	}
}

func TestAnalyzeSalesMarketingAlignmentExcludesNeither(t *testing.T) {
	touchpoints := []domain.Touchpoint{
		{TouchpointID: "T1", IsSalesTouch: false, IsMarketingTouch: false},
		{TouchpointID: "T2", IsSalesTouch: true, IsMarketingTouch: false},
	}
	combined := map[string]float64{"T1": 500, "T2": 500}
	report := AnalyzeSalesMarketingAlignment(combined, touchpoints)
	if report.SalesPercentage != 100 {
		t.Errorf("sales pct = %v, want 100 (neither-flag touch excluded)", report.SalesPercentage)
	}
}

func TestAlignmentBoundsAreZeroToHundred(t *testing.T) {
	touchpoints := []domain.Touchpoint{
		{TouchpointID: "T", IsSalesTouch: true, IsMarketingTouch: false},
	}
	combined := map[string]float64{"T": 1}
	report := AnalyzeSalesMarketingAlignment(combined, touchpoints)
	if report.AlignmentScore < 0 || report.AlignmentScore > 100 {
		t.Errorf("alignment score out of bounds: %v", report.AlignmentScore)
	}
}
