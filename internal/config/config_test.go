package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	tables, err := Load("/nonexistent/path/to/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tables.DefaultCombineWeights.Time != 0.25 {
		t.Errorf("expected default time weight 0.25, got %v", tables.DefaultCombineWeights.Time)
	}
	if tables.HalfLifeFloorDays != 14 {
		t.Errorf("expected default half-life floor 14, got %v", tables.HalfLifeFloorDays)
	}
}

func TestLoadOverridesHalfLifeFloorDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	if err := os.WriteFile(path, []byte("half_life_floor_days: 21\n"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	tables, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tables.HalfLifeFloorDays != 21 {
		t.Errorf("expected overridden half-life floor 21, got %v", tables.HalfLifeFloorDays)
	}
	if tables.DefaultCombineWeights.Time != 0.25 {
		t.Errorf("expected unoverridden fields to keep defaults, got time weight %v", tables.DefaultCombineWeights.Time)
	}
}
