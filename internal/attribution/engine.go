package attribution

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/b2b-attribution/engine/internal/analyzer"
	"github.com/b2b-attribution/engine/internal/combiner"
	"github.com/b2b-attribution/engine/internal/domain"
	"github.com/b2b-attribution/engine/internal/factors"
)

// Engine is the Service Facade of spec §4.5. It is stateless and pure
// beyond its injected collaborators, so any number of requests may run
// concurrently without mutual exclusion — see spec §5.
type Engine struct {
	weights domain.WeightTables
	loader  Loader
	writer  ResultWriter
}

// New constructs an Engine. weights is the constant-table config
// (spec §9); loader and writer are the narrow collaborators of §6.
func New(weights domain.WeightTables, loader Loader, writer ResultWriter) *Engine {
	return &Engine{weights: weights, loader: loader, writer: writer}
}

// loadedRecords is the snapshot of collaborator records a single
// request computes against, fetched once and shared by every
// downstream step to guarantee internal consistency (spec §4.5 "Load
// order is invariant").
type loadedRecords struct {
	leads        []domain.Lead
	opportunities []domain.Opportunity
	touchpoints  []domain.Touchpoint
}

func (e *Engine) load(ctx context.Context, q Query, correlationID string) (*loadedRecords, error) {
	var rec loadedRecords

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		leads, err := e.loader.LoadLeads(gctx, q)
		if err != nil {
			return fmt.Errorf("load leads: %w", err)
		}
		rec.leads = leads
		return nil
	})
	g.Go(func() error {
		opps, err := e.loader.LoadOpportunities(gctx, q)
		if err != nil {
			return fmt.Errorf("load opportunities: %w", err)
		}
		rec.opportunities = opps
		return nil
	})
	g.Go(func() error {
		touchpoints, err := e.loader.LoadTouchpoints(gctx, q)
		if err != nil {
			return fmt.Errorf("load touchpoints: %w", err)
		}
		rec.touchpoints = touchpoints
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, &FacadeError{Class: ClassFetch, CorrelationID: correlationID, Transient: true, Err: err}
	}
	return &rec, nil
}

// computedFactors holds the five factor maps after concurrent
// dispatch (spec §4.2, §5: "the five factor calculators may be
// dispatched in parallel on independent worker tasks").
type computedFactors struct {
	time     map[string]float64
	quality  map[string]float64
	account  map[string]float64
	stage    map[string]float64
	velocity map[string]float64
}

func (e *Engine) computeFactors(rec *loadedRecords) computedFactors {
	var out computedFactors
	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		out.time = factors.TimeWeighted(e.weights, rec.opportunities, rec.touchpoints)
	}()
	go func() {
		defer wg.Done()
		out.quality = factors.QualityWeighted(e.weights, rec.leads, rec.touchpoints)
	}()
	go func() {
		defer wg.Done()
		out.account = factors.AccountBased(e.weights, rec.opportunities, rec.touchpoints)
	}()
	go func() {
		defer wg.Done()
		out.stage = factors.StageProgression(e.weights, rec.touchpoints)
	}()
	go func() {
		defer wg.Done()
		out.velocity = factors.PipelineVelocity(e.weights, rec.opportunities, rec.touchpoints)
	}()

	wg.Wait()
	return out
}

func effectiveWeights(tables domain.WeightTables, override *domain.CombineWeights) domain.CombineWeights {
	if override == nil {
		return tables.DefaultCombineWeights
	}
	return *override
}

// CalculateAttribution is spec §4.5 operation 1: the full result
// document, persisted as a side effect. Cancellation is honored at
// every suspension point and between the compute and persist steps;
// a cancelled request never reaches the writer.
func (e *Engine) CalculateAttribution(ctx context.Context, req CalculateRequest) (*ResultDocument, error) {
	correlationID := uuid.NewString()

	if err := validateDateWindow(req.DateFrom, req.DateTo); err != nil {
		return nil, &FacadeError{Class: ClassValidation, CorrelationID: correlationID, Err: err}
	}
	if err := validateWeights(req.Weights); err != nil {
		return nil, &FacadeError{Class: ClassValidation, CorrelationID: correlationID, Err: err}
	}

	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	rec, err := e.load(ctx, req.query(), correlationID)
	if err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	cf := e.computeFactors(rec)

	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	weights := effectiveWeights(e.weights, req.Weights)
	combined, err := combiner.Combine(combiner.FactorMaps{
		Time:     cf.time,
		Quality:  cf.quality,
		Account:  cf.account,
		Stage:    cf.stage,
		Velocity: cf.velocity,
	}, weights)
	if err != nil {
		return nil, &FacadeError{Class: ClassInternal, CorrelationID: correlationID, Err: err}
	}

	summary := combiner.Summarize(combined)
	channelReport := analyzer.AnalyzeChannelPerformance(combined, rec.touchpoints)
	alignmentReport := analyzer.AnalyzeSalesMarketingAlignment(combined, rec.touchpoints)

	doc := ResultDocument{
		ModelName:                   ModelName,
		CreatedAt:                   time.Now().UTC(),
		TimeWeightedAttribution:     cf.time,
		QualityWeightedAttribution:  cf.quality,
		AccountBasedAttribution:     cf.account,
		StageProgressionAttribution: cf.stage,
		PipelineVelocityAttribution: cf.velocity,
		CombinedAttribution:         combined,
		Summary:                     summary,
		ChannelReport:               channelReport,
		AlignmentReport:             alignmentReport,
		Metadata: ResultMetadata{
			AccountIDs:       req.AccountIDs,
			ModelType:        ModelName,
			LeadCount:        len(rec.leads),
			OpportunityCount: len(rec.opportunities),
			TouchpointCount:  len(rec.touchpoints),
			EffectiveWeights: weights,
		},
	}

	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	if e.writer != nil {
		if err := e.writer.WriteResult(ctx, doc); err != nil {
			log.Printf("[WRITER] failed to persist attribution result (correlation=%s): %v", correlationID, err)
		}
	}

	return &doc, nil
}

// ProgressStage names a checkpoint CalculateAttributionWithProgress
// reports through, in the order they occur.
type ProgressStage string

const (
	StageFetching  ProgressStage = "fetching"
	StageComputing ProgressStage = "computing"
	StageCombining ProgressStage = "combining"
	StagePersisted ProgressStage = "persisted"
)

// CalculateAttributionWithProgress behaves exactly like
// CalculateAttribution but additionally invokes onProgress at each
// pipeline checkpoint — used by the streaming HTTP endpoint (spec §10
// domain stack) to push live status to a subscriber without changing
// the underlying computation.
func (e *Engine) CalculateAttributionWithProgress(ctx context.Context, req CalculateRequest, onProgress func(ProgressStage)) (*ResultDocument, error) {
	if onProgress == nil {
		onProgress = func(ProgressStage) {}
	}

	correlationID := uuid.NewString()

	if err := validateDateWindow(req.DateFrom, req.DateTo); err != nil {
		return nil, &FacadeError{Class: ClassValidation, CorrelationID: correlationID, Err: err}
	}
	if err := validateWeights(req.Weights); err != nil {
		return nil, &FacadeError{Class: ClassValidation, CorrelationID: correlationID, Err: err}
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	onProgress(StageFetching)
	rec, err := e.load(ctx, req.query(), correlationID)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	onProgress(StageComputing)
	cf := e.computeFactors(rec)
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	onProgress(StageCombining)
	weights := effectiveWeights(e.weights, req.Weights)
	combined, err := combiner.Combine(combiner.FactorMaps{
		Time:     cf.time,
		Quality:  cf.quality,
		Account:  cf.account,
		Stage:    cf.stage,
		Velocity: cf.velocity,
	}, weights)
	if err != nil {
		return nil, &FacadeError{Class: ClassInternal, CorrelationID: correlationID, Err: err}
	}

	doc := ResultDocument{
		ModelName:                   ModelName,
		CreatedAt:                   time.Now().UTC(),
		TimeWeightedAttribution:     cf.time,
		QualityWeightedAttribution:  cf.quality,
		AccountBasedAttribution:     cf.account,
		StageProgressionAttribution: cf.stage,
		PipelineVelocityAttribution: cf.velocity,
		CombinedAttribution:         combined,
		Summary:                     combiner.Summarize(combined),
		ChannelReport:               analyzer.AnalyzeChannelPerformance(combined, rec.touchpoints),
		AlignmentReport:             analyzer.AnalyzeSalesMarketingAlignment(combined, rec.touchpoints),
		Metadata: ResultMetadata{
			AccountIDs:       req.AccountIDs,
			ModelType:        ModelName,
			LeadCount:        len(rec.leads),
			OpportunityCount: len(rec.opportunities),
			TouchpointCount:  len(rec.touchpoints),
			EffectiveWeights: weights,
		},
	}

	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	if e.writer != nil {
		if err := e.writer.WriteResult(ctx, doc); err != nil {
			log.Printf("[WRITER] failed to persist attribution result (correlation=%s): %v", correlationID, err)
		}
	}
	onProgress(StagePersisted)

	return &doc, nil
}

// ChannelInsights is spec §4.5 operation 2: the channel roll-up with
// insights, computed with the engine's default combine weights.
func (e *Engine) ChannelInsights(ctx context.Context, req CalculateRequest) (*ChannelInsightsResult, error) {
	req.Weights = nil
	doc, err := e.calculateWithoutPersisting(ctx, req)
	if err != nil {
		return nil, err
	}

	best := ""
	if len(doc.ChannelReport.Channels) > 0 {
		best = doc.ChannelReport.Channels[0].Channel
	}

	return &ChannelInsightsResult{
		Channels:    doc.ChannelReport.Channels,
		Insights:    doc.ChannelReport.Insights,
		BestChannel: best,
	}, nil
}

// AlignmentReport is spec §4.5 operation 3: the sales/marketing
// alignment diagnostic, computed with the engine's default combine
// weights.
func (e *Engine) AlignmentReport(ctx context.Context, req CalculateRequest) (*analyzer.AlignmentReport, error) {
	req.Weights = nil
	doc, err := e.calculateWithoutPersisting(ctx, req)
	if err != nil {
		return nil, err
	}
	return &doc.AlignmentReport, nil
}

// calculateWithoutPersisting runs the same pipeline as
// CalculateAttribution but never calls the writer — operations 2 and
// 3 are read-only views over the same computation.
func (e *Engine) calculateWithoutPersisting(ctx context.Context, req CalculateRequest) (*ResultDocument, error) {
	correlationID := uuid.NewString()

	if err := validateDateWindow(req.DateFrom, req.DateTo); err != nil {
		return nil, &FacadeError{Class: ClassValidation, CorrelationID: correlationID, Err: err}
	}

	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	rec, err := e.load(ctx, req.query(), correlationID)
	if err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	cf := e.computeFactors(rec)
	weights := e.weights.DefaultCombineWeights
	combined, err := combiner.Combine(combiner.FactorMaps{
		Time:     cf.time,
		Quality:  cf.quality,
		Account:  cf.account,
		Stage:    cf.stage,
		Velocity: cf.velocity,
	}, weights)
	if err != nil {
		return nil, &FacadeError{Class: ClassInternal, CorrelationID: correlationID, Err: err}
	}

	return &ResultDocument{
		ModelName:       ModelName,
		CreatedAt:       time.Now().UTC(),
		CombinedAttribution: combined,
		Summary:         combiner.Summarize(combined),
		ChannelReport:   analyzer.AnalyzeChannelPerformance(combined, rec.touchpoints),
		AlignmentReport: analyzer.AnalyzeSalesMarketingAlignment(combined, rec.touchpoints),
		Metadata: ResultMetadata{
			AccountIDs:       req.AccountIDs,
			ModelType:        ModelName,
			LeadCount:        len(rec.leads),
			OpportunityCount: len(rec.opportunities),
			TouchpointCount:  len(rec.touchpoints),
			EffectiveWeights: weights,
		},
	}, nil
}

// ModelInfo is spec §4.5 operation 4: static introspection over the
// engine's constant tables, no inputs required.
func (e *Engine) ModelInfo() ModelInfo {
	tiers := make([]domain.DealSizeTier, 0, len(e.weights.DealSizeMultiplier))
	for t := range e.weights.DealSizeMultiplier {
		tiers = append(tiers, t)
	}

	return ModelInfo{
		Version:               "1.0",
		Description:           "B2B marketing attribution engine: five weighting models combined into a single per-touchpoint attribution value.",
		TouchpointTypeWeights:  e.weights.TouchpointTypeWeight,
		StageWeights:          e.weights.StageWeight,
		QualityMultipliers:    e.weights.QualityMultiplier,
		DealSizeMultipliers:   e.weights.DealSizeMultiplier,
		ExpectedCycleDays:     e.weights.ExpectedCycleDays,
		DefaultCombineWeights: e.weights.DefaultCombineWeights,
		SupportedDealTiers:    tiers,
		FactorDescriptions: map[string]string{
			"time":     "exponential time-decay from each touchpoint to the deal's conversion instant, normalized to deal value",
			"quality":  "lead-quality adjusted engagement score, unit-free",
			"account":  "account complexity and buying-committee weighted attribution, normalized to deal value",
			"stage":    "funnel-stage influence weighted engagement score, unit-free",
			"velocity": "pipeline acceleration relative to the expected sales cycle for the deal's size tier, unit-free",
		},
	}
}
