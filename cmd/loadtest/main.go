// loadtest drives the attribution engine against synthetic accounts,
// reporting latency and throughput. It bypasses the HTTP surface and
// calls attribution.Engine directly so the numbers reflect the
// pipeline itself rather than transport overhead.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/b2b-attribution/engine/internal/attribution"
	"github.com/b2b-attribution/engine/internal/domain"
)

var touchpointTypes = []domain.TouchpointType{
	domain.TypeContentDownload, domain.TypeWebinarAttendance, domain.TypeDemoRequest,
	domain.TypeTradeShow, domain.TypeSalesCall, domain.TypeEmailEngagement,
	domain.TypeWebsiteVisit, domain.TypeSocialEngagement, domain.TypeDirectMail, domain.TypeReferral,
}

var stages = []domain.Stage{
	domain.StageAwareness, domain.StageInterest, domain.StageConsideration,
	domain.StageIntent, domain.StageEvaluation, domain.StagePurchase,
}

var dealSizeTiers = []domain.DealSizeTier{domain.TierEnterprise, domain.TierMidMarket, domain.TierSMB}

// syntheticAccount generates a self-contained lead/opportunity/
// touchpoint set for one account, deterministic given seed.
func syntheticAccount(rng *rand.Rand, accountID string, touchpointCount int) ([]domain.Lead, []domain.Opportunity, []domain.Touchpoint) {
	now := time.Now().Add(-time.Duration(rng.Intn(300)) * 24 * time.Hour)
	leadScore := 20 + rng.Intn(80)
	lead := domain.Lead{
		LeadID:      accountID + "-lead-1",
		AccountID:   accountID,
		LeadScore:   leadScore,
		QualityTier: domain.DerivedQualityTier(leadScore),
		CreatedDate: now.Add(-60 * 24 * time.Hour),
		Stage:       stages[rng.Intn(len(stages))],
		Source:      "loadtest",
	}

	closeDate := now
	opp := domain.Opportunity{
		OpportunityID:       accountID + "-opp-1",
		AccountID:           accountID,
		LeadIDs:             []string{lead.LeadID},
		Amount:              1000 + rng.Float64()*500000,
		CreatedDate:         now.Add(-90 * 24 * time.Hour),
		CloseDate:           &closeDate,
		SalesCycleDays:      30 + rng.Intn(300),
		DealSizeTier:        dealSizeTiers[rng.Intn(len(dealSizeTiers))],
		DecisionMakersCount: 1 + rng.Intn(5),
		InfluencersCount:    rng.Intn(8),
	}

	touchpoints := make([]domain.Touchpoint, touchpointCount)
	for i := 0; i < touchpointCount; i++ {
		ts := opp.CreatedDate.Add(time.Duration(i) * 6 * time.Hour)
		touchpoints[i] = domain.Touchpoint{
			TouchpointID:     fmt.Sprintf("%s-tp-%d", accountID, i),
			LeadID:           lead.LeadID,
			AccountID:        accountID,
			Timestamp:        ts,
			TouchpointType:   touchpointTypes[rng.Intn(len(touchpointTypes))],
			Channel:          fmt.Sprintf("channel-%d", rng.Intn(5)),
			EngagementScore:  rng.Float64() * 10,
			StageInfluence:   stages[rng.Intn(len(stages))],
			Cost:             rng.Float64() * 200,
			IsSalesTouch:     rng.Intn(3) == 0,
			IsMarketingTouch: rng.Intn(3) != 0,
		}
	}

	return []domain.Lead{lead}, []domain.Opportunity{opp}, touchpoints
}

// memoryLoader implements attribution.Loader over an in-memory
// synthetic dataset keyed by account id.
type memoryLoader struct {
	leads         map[string][]domain.Lead
	opportunities map[string][]domain.Opportunity
	touchpoints   map[string][]domain.Touchpoint
}

func newMemoryLoader(accounts int, touchpointsPerAccount int, seed int64) *memoryLoader {
	rng := rand.New(rand.NewSource(seed))
	ml := &memoryLoader{
		leads:         make(map[string][]domain.Lead),
		opportunities: make(map[string][]domain.Opportunity),
		touchpoints:   make(map[string][]domain.Touchpoint),
	}
	for i := 0; i < accounts; i++ {
		accountID := fmt.Sprintf("acct-%d", i)
		leads, opps, tps := syntheticAccount(rng, accountID, touchpointsPerAccount)
		ml.leads[accountID] = leads
		ml.opportunities[accountID] = opps
		ml.touchpoints[accountID] = tps
	}
	return ml
}

func (m *memoryLoader) filterAccounts(q attribution.Query) []string {
	if len(q.AccountIDs) > 0 {
		return q.AccountIDs
	}
	ids := make([]string, 0, len(m.leads))
	for id := range m.leads {
		ids = append(ids, id)
	}
	return ids
}

func (m *memoryLoader) LoadLeads(_ context.Context, q attribution.Query) ([]domain.Lead, error) {
	var out []domain.Lead
	for _, id := range m.filterAccounts(q) {
		out = append(out, m.leads[id]...)
	}
	return out, nil
}

func (m *memoryLoader) LoadOpportunities(_ context.Context, q attribution.Query) ([]domain.Opportunity, error) {
	var out []domain.Opportunity
	for _, id := range m.filterAccounts(q) {
		out = append(out, m.opportunities[id]...)
	}
	return out, nil
}

func (m *memoryLoader) LoadTouchpoints(_ context.Context, q attribution.Query) ([]domain.Touchpoint, error) {
	var out []domain.Touchpoint
	for _, id := range m.filterAccounts(q) {
		out = append(out, m.touchpoints[id]...)
	}
	return out, nil
}

// noopWriter discards results; a load test measures the compute path,
// not persistence.
type noopWriter struct{}

func (noopWriter) WriteResult(context.Context, attribution.ResultDocument) error { return nil }

func main() {
	accounts := flag.Int("accounts", 200, "number of synthetic accounts in the dataset")
	touchpoints := flag.Int("touchpoints", 15, "touchpoints generated per account")
	requests := flag.Int("requests", 50, "number of calculate calls to run")
	concurrency := flag.Int("concurrency", 8, "concurrent calculate calls in flight")
	accountsPerCall := flag.Int("accounts-per-call", 20, "accounts requested per calculate call")
	flag.Parse()

	loader := newMemoryLoader(*accounts, *touchpoints, 42)
	engine := attribution.New(domain.DefaultWeightTables(), loader, noopWriter{})

	allAccountIDs := make([]string, 0, *accounts)
	for i := 0; i < *accounts; i++ {
		allAccountIDs = append(allAccountIDs, fmt.Sprintf("acct-%d", i))
	}

	fmt.Printf("loadtest: %d accounts x %d touchpoints, %d requests at concurrency %d\n",
		*accounts, *touchpoints, *requests, *concurrency)

	type outcome struct {
		latency time.Duration
		err     error
	}

	results := make(chan outcome, *requests)
	sem := make(chan struct{}, *concurrency)
	var wg sync.WaitGroup

	start := time.Now()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < *requests; i++ {
		wg.Add(1)
		sem <- struct{}{}
		offset := rng.Intn(len(allAccountIDs))
		go func(offset int) {
			defer wg.Done()
			defer func() { <-sem }()

			end := offset + *accountsPerCall
			if end > len(allAccountIDs) {
				end = len(allAccountIDs)
			}
			req := attribution.CalculateRequest{AccountIDs: allAccountIDs[offset:end]}

			callStart := time.Now()
			_, err := engine.CalculateAttribution(context.Background(), req)
			results <- outcome{latency: time.Since(callStart), err: err}
		}(offset)
	}

	wg.Wait()
	close(results)
	total := time.Since(start)

	var successCount, errorCount int
	var sumLatency time.Duration
	var maxLatency time.Duration
	for r := range results {
		if r.err != nil {
			errorCount++
			continue
		}
		successCount++
		sumLatency += r.latency
		if r.latency > maxLatency {
			maxLatency = r.latency
		}
	}

	fmt.Printf("completed in %s: %d ok, %d errors\n", total, successCount, errorCount)
	if successCount > 0 {
		fmt.Printf("avg latency %s, max latency %s, throughput %.1f req/s\n",
			sumLatency/time.Duration(successCount), maxLatency, float64(successCount)/total.Seconds())
	}
}
