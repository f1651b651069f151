// Package config holds the tunables enumerated in the generator's
// configuration surface, grounded on the teacher's internal/database.Config
// (env-overridable struct, validated at construction) and
// internal/game/universe.GeneratorConfig (plain defaults constructor).
package config

import (
	"os"
	"runtime"
	"strconv"

	"github.com/sargonas/stellar-forge/internal/faults"
)

// Config holds every tunable named in the generation pipeline's
// configuration surface.
type Config struct {
	// UniverseAge bounds the oldest stellar age sampled, in years.
	UniverseAge float64
	// BinaryPeriodMean is the log10(days) mean of the binary orbital
	// period lognormal distribution.
	BinaryPeriodMean float64
	// BinaryPeriodSigma is the log10(days) sigma of that distribution.
	BinaryPeriodSigma float64
	// AsteroidUpperLimit caps an asteroid cluster's total mass, in kg.
	AsteroidUpperLimit float64
	// LifeOccurrenceProbability gates life emergence on a qualifying
	// planet.
	LifeOccurrenceProbability float64
	// ContainUltravioletHabitableZone widens the habitable zone bounds
	// to include the UV habitable band.
	ContainUltravioletHabitableZone bool
	// EnableAsiFilter turns on the post-Cenoziocera ASI diversion branch.
	EnableAsiFilter bool
	// DestroyedByDisasterProbability is the chance a civilization is
	// wiped out by an unmodeled disaster after emerging.
	DestroyedByDisasterProbability float64

	// MigrationProbability, ScatteringProbability and WalkInProbability
	// are the independent Bernoulli probabilities the orbital generator
	// rolls per planet slot after initial placement (spec §4.5.3:
	// "probabilities exposed in the generator config").
	MigrationProbability  float64
	ScatteringProbability float64
	WalkInProbability     float64

	// OctreeRadius is the half-width of the root octree cube, in parsecs.
	OctreeRadius float64
	// OctreeMaxDepth bounds octree subdivision depth.
	OctreeMaxDepth int
	// MinSeparationParsecs is the minimum allowed distance between two
	// system placements.
	MinSeparationParsecs float64

	// WorkerCount sizes the driver's bounded worker pool. Zero means
	// "use the physical core count", per spec §5.
	WorkerCount int
	// MaxRetries bounds per-system rebuild attempts before a system is
	// abandoned, per spec §4.7.
	MaxRetries int

	// AssetBasePath is the root directory evolutionary tracks are loaded
	// from (./Assets/ in debug, ../Assets/ in release, per spec §6).
	AssetBasePath string
}

// Default returns the spec-mandated defaults (§6), with environment
// variables able to override individual fields exactly as the teacher's
// database.Config does for DB_HOST et al.
func Default() Config {
	cfg := Config{
		UniverseAge:                     1.38e10,
		BinaryPeriodMean:                5.03,
		BinaryPeriodSigma:               2.28,
		AsteroidUpperLimit:              1e21,
		LifeOccurrenceProbability:       0.0114514,
		ContainUltravioletHabitableZone: false,
		EnableAsiFilter:                 false,
		DestroyedByDisasterProbability:  1e-3,

		MigrationProbability:  0.15,
		ScatteringProbability: 0.10,
		WalkInProbability:     0.05,

		OctreeRadius:         20000,
		OctreeMaxDepth:       10,
		MinSeparationParsecs: 0.5,

		WorkerCount: 0,
		MaxRetries:  8,

		AssetBasePath: assetBasePath(),
	}

	cfg.applyEnvOverrides()
	return cfg
}

func assetBasePath() string {
	if path := os.Getenv("STELLAR_FORGE_ASSET_PATH"); path != "" {
		return path
	}
	if os.Getenv("STELLAR_FORGE_RELEASE") != "" {
		return "../Assets/"
	}
	return "./Assets/"
}

func (c *Config) applyEnvOverrides() {
	if v, ok := envFloat("STELLAR_FORGE_UNIVERSE_AGE"); ok {
		c.UniverseAge = v
	}
	if v, ok := envFloat("STELLAR_FORGE_LIFE_PROBABILITY"); ok {
		c.LifeOccurrenceProbability = v
	}
	if v, ok := envBool("STELLAR_FORGE_ENABLE_ASI_FILTER"); ok {
		c.EnableAsiFilter = v
	}
	if v, ok := envBool("STELLAR_FORGE_UV_HABITABLE_ZONE"); ok {
		c.ContainUltravioletHabitableZone = v
	}
	if v, ok := envInt("STELLAR_FORGE_WORKER_COUNT"); ok {
		c.WorkerCount = v
	}
	if v, ok := envInt("STELLAR_FORGE_MAX_RETRIES"); ok {
		c.MaxRetries = v
	}
}

func envFloat(key string) (float64, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envBool(key string) (bool, bool) {
	s := os.Getenv(key)
	if s == "" {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return v, true
}

// Validate rejects out-of-range configuration values, per the ConfigFault
// kind in spec §7: "refused at construction."
func (c Config) Validate() error {
	switch {
	case c.UniverseAge <= 0:
		return faults.Config("UniverseAge must be positive")
	case c.LifeOccurrenceProbability < 0 || c.LifeOccurrenceProbability > 1:
		return faults.Config("LifeOccurrenceProbability must be in [0, 1]")
	case c.DestroyedByDisasterProbability < 0 || c.DestroyedByDisasterProbability > 1:
		return faults.Config("DestroyedByDisasterProbability must be in [0, 1]")
	case c.AsteroidUpperLimit <= 0:
		return faults.Config("AsteroidUpperLimit must be positive")
	case c.OctreeRadius <= 0:
		return faults.Config("OctreeRadius must be positive")
	case c.OctreeMaxDepth <= 0:
		return faults.Config("OctreeMaxDepth must be positive")
	case c.MinSeparationParsecs < 0:
		return faults.Config("MinSeparationParsecs must be non-negative")
	case c.MaxRetries <= 0:
		return faults.Config("MaxRetries must be positive")
	}
	return nil
}

// ResolvedWorkerCount returns WorkerCount, substituting the physical core
// count when it is zero (spec §5: "sized to the physical core count").
func (c Config) ResolvedWorkerCount() int {
	if c.WorkerCount > 0 {
		return c.WorkerCount
	}
	return runtime.NumCPU()
}
