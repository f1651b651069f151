package config

import "testing"

func TestDefaultConfigMatchesSpec(t *testing.T) {
	cfg := Default()

	if cfg.UniverseAge != 1.38e10 {
		t.Errorf("UniverseAge = %v, want 1.38e10", cfg.UniverseAge)
	}
	if cfg.BinaryPeriodMean != 5.03 {
		t.Errorf("BinaryPeriodMean = %v, want 5.03", cfg.BinaryPeriodMean)
	}
	if cfg.BinaryPeriodSigma != 2.28 {
		t.Errorf("BinaryPeriodSigma = %v, want 2.28", cfg.BinaryPeriodSigma)
	}
	if cfg.AsteroidUpperLimit != 1e21 {
		t.Errorf("AsteroidUpperLimit = %v, want 1e21", cfg.AsteroidUpperLimit)
	}
	if cfg.LifeOccurrenceProbability != 0.0114514 {
		t.Errorf("LifeOccurrenceProbability = %v, want 0.0114514", cfg.LifeOccurrenceProbability)
	}
	if cfg.DestroyedByDisasterProbability != 1e-3 {
		t.Errorf("DestroyedByDisasterProbability = %v, want 1e-3", cfg.DestroyedByDisasterProbability)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.LifeOccurrenceProbability = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected ConfigFault for LifeOccurrenceProbability > 1")
	}

	cfg = Default()
	cfg.OctreeMaxDepth = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected ConfigFault for non-positive OctreeMaxDepth")
	}
}

func TestResolvedWorkerCountFallsBackToCores(t *testing.T) {
	cfg := Default()
	cfg.WorkerCount = 0
	if cfg.ResolvedWorkerCount() <= 0 {
		t.Error("expected a positive resolved worker count")
	}

	cfg.WorkerCount = 3
	if cfg.ResolvedWorkerCount() != 3 {
		t.Errorf("expected explicit worker count to be honored, got %d", cfg.ResolvedWorkerCount())
	}
}
