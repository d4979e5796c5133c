// Package analyzer derives channel-performance and sales/marketing
// alignment diagnostics from a combined attribution map (spec §4.4).
package analyzer

import (
	"math"
	"sort"

	"github.com/b2b-attribution/engine/internal/domain"
)

// ChannelMetrics is the per-channel roll-up described in spec §4.4.
type ChannelMetrics struct {
	Channel              string   `json:"channel"`
	TotalAttribution     float64  `json:"total_attribution"`
	TouchpointCount      int      `json:"touchpoint_count"`
	TotalCost            float64  `json:"total_cost"`
	TouchpointTypes      []string `json:"touchpoint_types"`
	ROI                  float64  `json:"roi"`
	CostPerAttribution   float64  `json:"cost_per_attribution"`
}

// ChannelReport is the full output of AnalyzeChannelPerformance: the
// per-channel metrics in descending-ROI order plus rule-generated
// insight strings, in the fixed rule order of spec §4.4.
type ChannelReport struct {
	Channels []ChannelMetrics `json:"channels"`
	Insights []string         `json:"insights"`
}

// AnalyzeChannelPerformance groups the combined attribution map by
// each touchpoint's channel and computes ROI/cost-efficiency metrics,
// then generates insight strings in a fixed, deterministic rule order.
func AnalyzeChannelPerformance(combined map[string]float64, touchpoints []domain.Touchpoint) ChannelReport {
	byID := make(map[string]domain.Touchpoint, len(touchpoints))
	for _, tp := range touchpoints {
		byID[tp.TouchpointID] = tp
	}

	type accum struct {
		attribution float64
		count       int
		cost        float64
		types       map[string]struct{}
	}
	byChannel := make(map[string]*accum)

	for tpID, value := range combined {
		tp, ok := byID[tpID]
		if !ok {
			continue
		}
		a, ok := byChannel[tp.Channel]
		if !ok {
			a = &accum{types: make(map[string]struct{})}
			byChannel[tp.Channel] = a
		}
		a.attribution += value
		a.count++
		a.cost += tp.Cost
		a.types[string(tp.TouchpointType)] = struct{}{}
	}

	channels := make([]ChannelMetrics, 0, len(byChannel))
	for channel, a := range byChannel {
		types := make([]string, 0, len(a.types))
		for t := range a.types {
			types = append(types, t)
		}
		sort.Strings(types)

		m := ChannelMetrics{
			Channel:          channel,
			TotalAttribution: a.attribution,
			TouchpointCount:  a.count,
			TotalCost:        a.cost,
			TouchpointTypes:  types,
		}
		switch {
		case a.cost > 0:
			m.ROI = (a.attribution - a.cost) / a.cost
		case a.attribution > 0:
			m.ROI = math.Inf(1)
		default:
			m.ROI = 0
		}
		if a.attribution > 0 {
			m.CostPerAttribution = a.cost / a.attribution
		}
		channels = append(channels, m)
	}

	sort.Slice(channels, func(i, j int) bool {
		if channels[i].ROI != channels[j].ROI {
			return channels[i].ROI > channels[j].ROI
		}
		return channels[i].Channel < channels[j].Channel
	})

	return ChannelReport{Channels: channels, Insights: generateInsights(channels)}
}

// generateInsights applies the rule-generated insight strings of spec
// §4.4 in the order the rules are listed.
func generateInsights(channels []ChannelMetrics) []string {
	insights := make([]string, 0)
	if len(channels) == 0 {
		return insights
	}

	best := channels[0]
	insights = append(insights, "best ROI channel: "+best.Channel)

	worst := channels[len(channels)-1]
	if worst.ROI < 0 {
		insights = append(insights, "worst ROI channel: "+worst.Channel)
	}

	for _, c := range channels {
		if c.TouchpointCount > 10 && c.ROI < 1 {
			insights = append(insights, "high-volume, low-ROI channel: "+c.Channel)
		}
	}

	for _, c := range channels {
		if c.TotalCost > 1000 && c.ROI < 2 {
			insights = append(insights, "high-spend, underperforming channel: "+c.Channel)
		}
	}

	return insights
}
