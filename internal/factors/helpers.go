// Package factors implements the five stateless Factor Calculators of
// spec §4.2. Each takes immutable slices of domain records and a
// WeightTables config, and returns a map from touchpoint_id to a
// non-negative real. Touchpoints not mentioned in the returned map
// have implicit value 0. All five are pure and safe to run
// concurrently — they only read their inputs.
package factors

import "github.com/b2b-attribution/engine/internal/domain"

// groupTouchpointsByAccount indexes touchpoints by account_id.
func groupTouchpointsByAccount(touchpoints []domain.Touchpoint) map[string][]domain.Touchpoint {
	byAccount := make(map[string][]domain.Touchpoint)
	for _, tp := range touchpoints {
		byAccount[tp.AccountID] = append(byAccount[tp.AccountID], tp)
	}
	return byAccount
}

// leadLookup indexes leads by lead_id.
func leadLookup(leads []domain.Lead) map[string]domain.Lead {
	byID := make(map[string]domain.Lead, len(leads))
	for _, l := range leads {
		byID[l.LeadID] = l
	}
	return byID
}
