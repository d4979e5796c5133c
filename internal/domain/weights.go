package domain

// WeightTables holds every constant table the engine's weighting
// primitives and factor calculators read from. It is injected at
// engine construction (struct-of-config, per spec §9) rather than
// compiled in, so every scenario in spec §8 is parameterizable for
// test without touching calculator code.
type WeightTables struct {
	HalfLifeFloorDays    float64
	TouchpointTypeWeight map[TouchpointType]float64
	StageWeight          map[Stage]float64
	QualityMultiplier    map[QualityTier]float64
	DealSizeMultiplier   map[DealSizeTier]float64
	ExpectedCycleDays    map[DealSizeTier]int
	DefaultCombineWeights CombineWeights
}

// CombineWeights is the five-element weight vector over factor names,
// renormalized to sum to 1 before use by the combiner.
type CombineWeights struct {
	Time     float64
	Quality  float64
	Account  float64
	Stage    float64
	Velocity float64
}

// DefaultWeightTables returns the constant tables from spec §3, used
// whenever the caller supplies no config override.
func DefaultWeightTables() WeightTables {
	return WeightTables{
		HalfLifeFloorDays: 14,
		TouchpointTypeWeight: map[TouchpointType]float64{
			TypeDemoRequest:       1.5,
			TypeSalesCall:         1.4,
			TypeReferral:          1.6,
			TypeTradeShow:         1.3,
			TypeWebinarAttendance: 1.2,
			TypeContentDownload:   1.1,
			TypeDirectMail:        0.9,
			TypeEmailEngagement:   0.8,
			TypeSocialEngagement:  0.7,
			TypeWebsiteVisit:      0.6,
		},
		StageWeight: map[Stage]float64{
			StageAwareness:     0.8,
			StageInterest:      1.0,
			StageConsideration: 1.2,
			StageIntent:        1.4,
			StageEvaluation:    1.5,
			StagePurchase:      1.3,
		},
		QualityMultiplier: map[QualityTier]float64{
			TierA: 1.5,
			TierB: 1.2,
			TierC: 1.0,
			TierD: 0.7,
		},
		DealSizeMultiplier: map[DealSizeTier]float64{
			TierEnterprise: 1.4,
			TierMidMarket:  1.2,
			TierSMB:        1.0,
		},
		ExpectedCycleDays: map[DealSizeTier]int{
			TierEnterprise: 270,
			TierMidMarket:  150,
			TierSMB:        60,
		},
		DefaultCombineWeights: CombineWeights{
			Time:     0.25,
			Quality:  0.25,
			Account:  0.25,
			Stage:    0.15,
			Velocity: 0.10,
		},
	}
}

// TouchpointTypeWeightOf looks up the type weight, defaulting to 1.0
// for an unknown type (matches the original engine's dict.get default).
func (w WeightTables) TouchpointTypeWeightOf(t TouchpointType) float64 {
	if v, ok := w.TouchpointTypeWeight[t]; ok {
		return v
	}
	return 1.0
}

// StageWeightOf looks up the stage weight, defaulting to 1.0 for an
// unknown stage.
func (w WeightTables) StageWeightOf(s Stage) float64 {
	if v, ok := w.StageWeight[s]; ok {
		return v
	}
	return 1.0
}

// QualityMultiplierOf looks up the quality multiplier, defaulting to
// 1.0 for an unknown tier.
func (w WeightTables) QualityMultiplierOf(t QualityTier) float64 {
	if v, ok := w.QualityMultiplier[t]; ok {
		return v
	}
	return 1.0
}

// DealSizeMultiplierOf looks up the deal-size multiplier, defaulting
// to 1.0 for an unknown tier.
func (w WeightTables) DealSizeMultiplierOf(t DealSizeTier) float64 {
	if v, ok := w.DealSizeMultiplier[t]; ok {
		return v
	}
	return 1.0
}

// ExpectedCycleDaysOf looks up the expected sales-cycle length for a
// deal-size tier, defaulting to 180 for an unknown tier.
func (w WeightTables) ExpectedCycleDaysOf(t DealSizeTier) int {
	if v, ok := w.ExpectedCycleDays[t]; ok {
		return v
	}
	return 180
}

// AsSlice returns the five combine-weight components in the fixed
// (time, quality, account, stage, velocity) order.
func (c CombineWeights) AsSlice() [5]float64 {
	return [5]float64{c.Time, c.Quality, c.Account, c.Stage, c.Velocity}
}

// Sum returns the sum of the five components.
func (c CombineWeights) Sum() float64 {
	s := c.AsSlice()
	return s[0] + s[1] + s[2] + s[3] + s[4]
}
