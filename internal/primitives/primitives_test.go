package primitives

import (
	"math"
	"testing"

	"github.com/b2b-attribution/engine/internal/domain"
)

func TestHalfLifeDaysFloor(t *testing.T) {
	if got := HalfLifeDays(10, 14); got != 14 {
		t.Errorf("HalfLifeDays(10, 14) = %v, want 14 (floor)", got)
	}
	if got := HalfLifeDays(60, 14); math.Abs(got-18) > 1e-9 {
		t.Errorf("HalfLifeDays(60, 14) = %v, want 18", got)
	}
}

func TestHalfLifeDaysConfigurableFloor(t *testing.T) {
	if got := HalfLifeDays(10, 21); got != 21 {
		t.Errorf("HalfLifeDays(10, 21) = %v, want 21 (configured floor)", got)
	}
	if got := HalfLifeDays(100, 21); math.Abs(got-30) > 1e-9 {
		t.Errorf("HalfLifeDays(100, 21) = %v, want 30 (above floor, floor unused)", got)
	}
}

func TestTimeDecayKernelClipsNegativeGap(t *testing.T) {
	if got := TimeDecayKernel(-5, 18); got != 1.0 {
		t.Errorf("TimeDecayKernel(-5, 18) = %v, want 1.0", got)
	}
}

func TestAccountComplexityCumulative(t *testing.T) {
	o := domain.Opportunity{
		DealSizeTier:        domain.TierEnterprise,
		DecisionMakersCount: 3,
		InfluencersCount:    3,
		SalesCycleDays:      400,
	}
	got := AccountComplexity(o)
	want := 1.0 + 0.3 + 0.2 + 0.25
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("AccountComplexity = %v, want %v", got, want)
	}
}

func TestVelocityMultiplierFasterThanExpected(t *testing.T) {
	got := VelocityMultiplier(135, 270)
	want := 1.25
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("VelocityMultiplier(135, 270) = %v, want %v", got, want)
	}
}

func TestVelocityMultiplierFloor(t *testing.T) {
	got := VelocityMultiplier(540, 270) // 2x expected
	want := 0.7
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("VelocityMultiplier(540, 270) = %v, want %v", got, want)
	}
	got = VelocityMultiplier(10000, 270)
	if got < 0.5 {
		t.Errorf("VelocityMultiplier floor violated: got %v", got)
	}
}

func TestAlignmentScoreZeroTotal(t *testing.T) {
	if got := AlignmentScore(AlignmentTotals{}); got != 0 {
		t.Errorf("AlignmentScore(zero) = %v, want 0", got)
	}
}

func TestAlignmentScoreAllJoint(t *testing.T) {
	got := AlignmentScore(AlignmentTotals{Joint: 1000})
	want := 0.0 // 100 - (40+40+80) clipped at 0
	if got != want {
		t.Errorf("AlignmentScore(all joint) = %v, want %v", got, want)
	}
}

func TestAlignmentGradeBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		grade string
	}{
		{90, "A+"}, {89.9, "A"}, {80, "A"}, {79.9, "B"},
		{70, "B"}, {60, "C"}, {50, "D"}, {49.9, "F"},
	}
	for _, c := range cases {
		if got := AlignmentGrade(c.score); got != c.grade {
			t.Errorf("AlignmentGrade(%v) = %q, want %q", c.score, got, c.grade)
		}
	}
}
