package attribution

import (
	"time"

	"github.com/b2b-attribution/engine/internal/analyzer"
	"github.com/b2b-attribution/engine/internal/combiner"
	"github.com/b2b-attribution/engine/internal/domain"
)

// ModelName is the constant string stamped onto every persisted
// result document (spec §6 Result writer collaborator).
const ModelName = "B2B_Marketing_Attribution"

// CalculateRequest is the input to CalculateAttribution: an optional
// account-id filter, an optional date window and an optional
// combine-weight override (spec §4.5 operation 1).
type CalculateRequest struct {
	AccountIDs []string
	DateFrom   *time.Time
	DateTo     *time.Time
	Weights    *domain.CombineWeights
}

func (r CalculateRequest) query() Query {
	return Query{AccountIDs: r.AccountIDs, From: r.DateFrom, To: r.DateTo}
}

// ResultMetadata is the metadata sub-block attached to every result
// document: record counts and the effective weights actually used.
type ResultMetadata struct {
	AccountIDs        []string              `json:"account_ids,omitempty"`
	ModelType         string                `json:"model_type"`
	LeadCount         int                   `json:"lead_count"`
	OpportunityCount  int                   `json:"opportunity_count"`
	TouchpointCount   int                   `json:"touchpoint_count"`
	EffectiveWeights  domain.CombineWeights `json:"effective_weights"`
}

// ResultDocument is the full result of a calculate operation: every
// factor map, the combined map, the summary, the channel roll-up, the
// alignment report and the metadata block (spec §4.5 operation 1, §6).
type ResultDocument struct {
	ModelName                    string                   `json:"model_name"`
	CreatedAt                    time.Time                `json:"created_at"`
	TimeWeightedAttribution      map[string]float64       `json:"time_weighted_attribution"`
	QualityWeightedAttribution   map[string]float64       `json:"quality_weighted_attribution"`
	AccountBasedAttribution      map[string]float64       `json:"account_based_attribution"`
	StageProgressionAttribution  map[string]float64       `json:"stage_progression_attribution"`
	PipelineVelocityAttribution  map[string]float64       `json:"pipeline_velocity_attribution"`
	CombinedAttribution          map[string]float64       `json:"combined_b2b_attribution"`
	Summary                      combiner.Summary         `json:"attribution_summary"`
	ChannelReport                analyzer.ChannelReport   `json:"channel_performance"`
	AlignmentReport              analyzer.AlignmentReport `json:"sales_marketing_alignment"`
	Metadata                     ResultMetadata           `json:"metadata"`
}

// ChannelInsightsResult is the response of operation 2: the channel
// roll-up plus a summary naming the best channel.
type ChannelInsightsResult struct {
	Channels    []analyzer.ChannelMetrics `json:"channels"`
	Insights    []string                  `json:"insights"`
	BestChannel string                    `json:"best_channel,omitempty"`
}

// ModelInfo is the static introspection payload of operation 4 (spec
// §4.5, §6 GET /model-info): the constant tables plus human-readable
// prose the original's model-info endpoint also returned.
type ModelInfo struct {
	Version               string                           `json:"version"`
	Description           string                           `json:"description"`
	TouchpointTypeWeights  map[domain.TouchpointType]float64 `json:"touchpoint_type_weights"`
	StageWeights          map[domain.Stage]float64          `json:"stage_weights"`
	QualityMultipliers    map[domain.QualityTier]float64    `json:"quality_multipliers"`
	DealSizeMultipliers   map[domain.DealSizeTier]float64   `json:"deal_size_multipliers"`
	ExpectedCycleDays     map[domain.DealSizeTier]int       `json:"expected_cycle_days"`
	DefaultCombineWeights domain.CombineWeights            `json:"default_combine_weights"`
	SupportedDealTiers    []domain.DealSizeTier            `json:"supported_deal_tiers"`
	FactorDescriptions    map[string]string                `json:"factor_descriptions"`
}
