package attribution

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/b2b-attribution/engine/internal/domain"
)

type fakeLoader struct {
	leads        []domain.Lead
	opportunities []domain.Opportunity
	touchpoints  []domain.Touchpoint
}

func (f *fakeLoader) LoadLeads(ctx context.Context, q Query) ([]domain.Lead, error) {
	return f.leads, nil
}
func (f *fakeLoader) LoadOpportunities(ctx context.Context, q Query) ([]domain.Opportunity, error) {
	return f.opportunities, nil
}
func (f *fakeLoader) LoadTouchpoints(ctx context.Context, q Query) ([]domain.Touchpoint, error) {
	return f.touchpoints, nil
}

type fakeWriter struct {
	calls int32
}

func (w *fakeWriter) WriteResult(ctx context.Context, doc ResultDocument) error {
	atomic.AddInt32(&w.calls, 1)
	return nil
}

func sampleScenario() *fakeLoader {
	close := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	return &fakeLoader{
		leads: []domain.Lead{
			{LeadID: "L", AccountID: "ACC", LeadScore: 70, DemographicScore: 60, FirmographicScore: 60, QualityTier: domain.TierB},
		},
		opportunities: []domain.Opportunity{
			{OpportunityID: "O", AccountID: "ACC", Amount: 1000, CreatedDate: close.AddDate(0, 0, -100), CloseDate: &close, SalesCycleDays: 100},
		},
		touchpoints: []domain.Touchpoint{
			{TouchpointID: "T", LeadID: "L", AccountID: "ACC", Timestamp: close, TouchpointType: domain.TypeDemoRequest,
				EngagementScore: 80, StageInfluence: domain.StageEvaluation, Channel: "website",
				IsSalesTouch: true, IsMarketingTouch: true},
		},
	}
}

func TestCalculateAttributionHappyPath(t *testing.T) {
	loader := sampleScenario()
	writer := &fakeWriter{}
	engine := New(domain.DefaultWeightTables(), loader, writer)

	doc, err := engine.CalculateAttribution(context.Background(), CalculateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Summary.TouchpointCount != 1 {
		t.Errorf("expected 1 touchpoint in summary, got %d", doc.Summary.TouchpointCount)
	}
	if atomic.LoadInt32(&writer.calls) != 1 {
		t.Errorf("expected writer called once, got %d", writer.calls)
	}
}

func TestCalculateAttributionRejectsZeroSumWeights(t *testing.T) {
	loader := sampleScenario()
	engine := New(domain.DefaultWeightTables(), loader, &fakeWriter{})

	zero := domain.CombineWeights{}
	_, err := engine.CalculateAttribution(context.Background(), CalculateRequest{Weights: &zero})
	if err == nil {
		t.Fatal("expected validation error for zero-sum weights")
	}
	var fe *FacadeError
	if !errors.As(err, &fe) || fe.Class != ClassValidation {
		t.Errorf("expected ClassValidation, got %v", err)
	}
}

func TestCalculateAttributionRejectsInvalidDateWindow(t *testing.T) {
	loader := sampleScenario()
	engine := New(domain.DefaultWeightTables(), loader, &fakeWriter{})

	from := time.Now()
	to := from.AddDate(0, 0, -1)
	_, err := engine.CalculateAttribution(context.Background(), CalculateRequest{DateFrom: &from, DateTo: &to})
	if err == nil {
		t.Fatal("expected validation error for inverted date window")
	}
}

func TestCalculateAttributionCancellationSkipsWriter(t *testing.T) {
	loader := sampleScenario()
	writer := &fakeWriter{}
	engine := New(domain.DefaultWeightTables(), loader, writer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.CalculateAttribution(ctx, CalculateRequest{})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if atomic.LoadInt32(&writer.calls) != 0 {
		t.Errorf("expected writer untouched on cancellation, got %d calls", writer.calls)
	}
}

func TestCalculateAttributionDeterministic(t *testing.T) {
	loader := sampleScenario()
	engine := New(domain.DefaultWeightTables(), loader, &fakeWriter{})

	a, err := engine.CalculateAttribution(context.Background(), CalculateRequest{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := engine.CalculateAttribution(context.Background(), CalculateRequest{})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(a.CombinedAttribution, b.CombinedAttribution); diff != "" {
		t.Errorf("combined attribution not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(a.Summary.TopContributingTouchpoints, b.Summary.TopContributingTouchpoints); diff != "" {
		t.Errorf("top touchpoints not deterministic:\n%s", diff)
	}
}

func TestWeightOverrideEqualsTimeWeightedOnly(t *testing.T) {
	loader := sampleScenario()
	engine := New(domain.DefaultWeightTables(), loader, &fakeWriter{})

	w := domain.CombineWeights{Time: 1}
	doc, err := engine.CalculateAttribution(context.Background(), CalculateRequest{Weights: &w})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(doc.CombinedAttribution, doc.TimeWeightedAttribution); diff != "" {
		t.Errorf("combined should equal time-weighted exactly with time-only weights:\n%s", diff)
	}
}

func TestNoTouchpointsInWindowStillSucceeds(t *testing.T) {
	loader := &fakeLoader{
		opportunities: []domain.Opportunity{{OpportunityID: "O", AccountID: "ACC", Amount: 1000}},
	}
	writer := &fakeWriter{}
	engine := New(domain.DefaultWeightTables(), loader, writer)

	doc, err := engine.CalculateAttribution(context.Background(), CalculateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Summary.TouchpointCount != 0 {
		t.Errorf("expected zero touchpoints, got %d", doc.Summary.TouchpointCount)
	}
	if doc.AlignmentReport.Grade != "F" {
		t.Errorf("expected grade F for zero total, got %q", doc.AlignmentReport.Grade)
	}
	if atomic.LoadInt32(&writer.calls) != 1 {
		t.Errorf("expected writer still called for empty result, got %d", writer.calls)
	}
}

func TestModelInfoHasNoInputs(t *testing.T) {
	engine := New(domain.DefaultWeightTables(), &fakeLoader{}, &fakeWriter{})
	info := engine.ModelInfo()
	if len(info.TouchpointTypeWeights) == 0 {
		t.Error("expected non-empty touchpoint type weights")
	}
}
