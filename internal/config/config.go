// Package config loads the engine's constant-table overrides from a
// YAML file, mirroring cmd/api's godotenv.Load + yaml.Unmarshal
// bootstrap pattern. A missing config file is not an error — the
// engine falls back to domain.DefaultWeightTables. An unreadable or
// malformed file returns its error together with those defaults.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/b2b-attribution/engine/internal/domain"
)

// DBPoolConfig holds the pgxpool sizing knobs InitDB applies on top of
// whatever DATABASE_URL itself specifies. Read from the environment
// rather than the YAML weights file since these are deployment
// concerns, not attribution-model parameters.
type DBPoolConfig struct {
	MaxConns int32
	MinConns int32
}

// DefaultDBPoolConfig mirrors pgxpool's own defaults so an engine run
// without any override behaves exactly as pgxpool.ParseConfig alone
// would.
func DefaultDBPoolConfig() DBPoolConfig {
	return DBPoolConfig{MaxConns: 0, MinConns: 0}
}

// LoadDBPoolConfig reads ATTRIBUTION_DB_MAX_CONNS and
// ATTRIBUTION_DB_MIN_CONNS, falling back to DefaultDBPoolConfig for
// any variable that is unset or not a valid integer.
func LoadDBPoolConfig() DBPoolConfig {
	cfg := DefaultDBPoolConfig()
	if v, err := strconv.Atoi(os.Getenv("ATTRIBUTION_DB_MAX_CONNS")); err == nil && v > 0 {
		cfg.MaxConns = int32(v)
	}
	if v, err := strconv.Atoi(os.Getenv("ATTRIBUTION_DB_MIN_CONNS")); err == nil && v >= 0 {
		cfg.MinConns = int32(v)
	}
	return cfg
}

// FileConfig is the on-disk shape of an engine config file. Every
// field is optional; only the tables present in the file override the
// built-in defaults.
type FileConfig struct {
	HalfLifeFloorDays     *float64           `yaml:"half_life_floor_days"`
	TouchpointTypeWeight  map[string]float64 `yaml:"touchpoint_type_weight"`
	StageWeight           map[string]float64 `yaml:"stage_weight"`
	QualityMultiplier     map[string]float64 `yaml:"quality_multiplier"`
	DealSizeMultiplier    map[string]float64 `yaml:"deal_size_multiplier"`
	ExpectedCycleDays     map[string]int     `yaml:"expected_cycle_days"`
	DefaultCombineWeights *struct {
		Time     float64 `yaml:"time"`
		Quality  float64 `yaml:"quality"`
		Account  float64 `yaml:"account"`
		Stage    float64 `yaml:"stage"`
		Velocity float64 `yaml:"velocity"`
	} `yaml:"default_combine_weights"`
}

// Load reads path and merges it over domain.DefaultWeightTables. If
// path does not exist, the defaults are returned unchanged.
func Load(path string) (domain.WeightTables, error) {
	tables := domain.DefaultWeightTables()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return tables, nil
	}
	if err != nil {
		return tables, err
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return tables, err
	}

	applyOverrides(&tables, fc)
	return tables, nil
}

func applyOverrides(tables *domain.WeightTables, fc FileConfig) {
	if fc.HalfLifeFloorDays != nil {
		tables.HalfLifeFloorDays = *fc.HalfLifeFloorDays
	}
	for k, v := range fc.TouchpointTypeWeight {
		tables.TouchpointTypeWeight[domain.TouchpointType(k)] = v
	}
	for k, v := range fc.StageWeight {
		tables.StageWeight[domain.Stage(k)] = v
	}
	for k, v := range fc.QualityMultiplier {
		tables.QualityMultiplier[domain.QualityTier(k)] = v
	}
	for k, v := range fc.DealSizeMultiplier {
		tables.DealSizeMultiplier[domain.DealSizeTier(k)] = v
	}
	for k, v := range fc.ExpectedCycleDays {
		tables.ExpectedCycleDays[domain.DealSizeTier(k)] = v
	}
	if fc.DefaultCombineWeights != nil {
		tables.DefaultCombineWeights = domain.CombineWeights{
			Time:     fc.DefaultCombineWeights.Time,
			Quality:  fc.DefaultCombineWeights.Quality,
			Account:  fc.DefaultCombineWeights.Account,
			Stage:    fc.DefaultCombineWeights.Stage,
			Velocity: fc.DefaultCombineWeights.Velocity,
		}
	}
}
