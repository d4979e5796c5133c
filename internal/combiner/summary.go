package combiner

import "sort"

// TopTouchpoint is one entry of the top-5 ranking in a Summary.
type TopTouchpoint struct {
	TouchpointID string  `json:"touchpoint_id"`
	Value        float64 `json:"attribution_value"`
	Percentage   float64 `json:"percentage"`
}

// Summary is the descriptive roll-up of a combined attribution map
// (spec §4.3): total, count, average, the top-5 contributors and a
// top/bottom 20%-by-count split.
type Summary struct {
	TotalAttributionValue        float64         `json:"total_attribution_value"`
	TouchpointCount               int             `json:"touchpoint_count"`
	AverageAttributionPerTouchpoint float64       `json:"average_attribution_per_touchpoint"`
	TopContributingTouchpoints    []TopTouchpoint `json:"top_contributing_touchpoints"`
	Top20PercentSum                float64         `json:"top_20_percent"`
	Bottom20PercentSum              float64         `json:"bottom_20_percent"`
}

// sortedEntry pairs a touchpoint id with its value for deterministic
// sorting: value descending, ties broken by id ascending.
type sortedEntry struct {
	id    string
	value float64
}

func sortedDescending(m map[string]float64) []sortedEntry {
	entries := make([]sortedEntry, 0, len(m))
	for id, v := range m {
		entries = append(entries, sortedEntry{id: id, value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].id < entries[j].id
	})
	return entries
}

// Summarize computes the Summary for a combined attribution map.
func Summarize(combined map[string]float64) Summary {
	if len(combined) == 0 {
		return Summary{}
	}

	entries := sortedDescending(combined)

	var total float64
	for _, e := range entries {
		total += e.value
	}
	count := len(entries)

	topN := 5
	if topN > count {
		topN = count
	}
	top := make([]TopTouchpoint, 0, topN)
	for _, e := range entries[:topN] {
		pct := 0.0
		if total != 0 {
			pct = e.value / total * 100
		}
		top = append(top, TopTouchpoint{TouchpointID: e.id, Value: e.value, Percentage: pct})
	}

	sliceSize := count / 5
	if sliceSize < 1 {
		sliceSize = 1
	}
	var topSum, bottomSum float64
	for _, e := range entries[:sliceSize] {
		topSum += e.value
	}
	for _, e := range entries[count-sliceSize:] {
		bottomSum += e.value
	}

	return Summary{
		TotalAttributionValue:           total,
		TouchpointCount:                 count,
		AverageAttributionPerTouchpoint: total / float64(count),
		TopContributingTouchpoints:      top,
		Top20PercentSum:                 topSum,
		Bottom20PercentSum:              bottomSum,
	}
}
