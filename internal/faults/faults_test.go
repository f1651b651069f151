package faults

import (
	"errors"
	"testing"
)

func TestFaultKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindRecoverable, "RecoverableGenerationFault"},
		{KindData, "DataFault"},
		{KindInvariant, "InvariantViolation"},
		{KindConfig, "ConfigFault"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestIsRecoverable(t *testing.T) {
	rec := Recoverable(42, "no surviving planet slots", nil)
	if !IsRecoverable(rec) {
		t.Error("expected Recoverable fault to report IsRecoverable")
	}

	inv := Invariant("hill sphere containment violated")
	if IsRecoverable(inv) {
		t.Error("expected InvariantViolation to not be recoverable")
	}

	wrapped := errors.New("wrapped: " + rec.Error())
	if IsRecoverable(wrapped) {
		t.Error("plain wrapped string should not unwrap to a Fault")
	}
}

func TestRetryableSystemBuildSucceedsAfterRetries(t *testing.T) {
	attempts := 0
	err := RetryableSystemBuild(8, func(attempt int) uint64 {
		return uint64(attempt)
	}, func(seed uint64) error {
		attempts++
		if attempts < 3 {
			return Recoverable(seed, "zero planet slots survived", nil)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryableSystemBuildAbandonsAfterBudget(t *testing.T) {
	attempts := 0
	err := RetryableSystemBuild(4, func(attempt int) uint64 {
		return uint64(attempt)
	}, func(seed uint64) error {
		attempts++
		return Recoverable(seed, "parent mass below minimum", nil)
	})
	if err == nil {
		t.Fatal("expected abandonment error")
	}
	if attempts != 4 {
		t.Errorf("expected 4 attempts, got %d", attempts)
	}
}

func TestRetryableSystemBuildStopsOnFatalFault(t *testing.T) {
	attempts := 0
	err := RetryableSystemBuild(8, func(attempt int) uint64 {
		return uint64(attempt)
	}, func(seed uint64) error {
		attempts++
		return Data("missing evolutionary track file", nil)
	})
	if err == nil {
		t.Fatal("expected a data fault to propagate")
	}
	if attempts != 1 {
		t.Errorf("expected single attempt for a non-recoverable fault, got %d", attempts)
	}
}

func TestMetricsRecordAndSnapshot(t *testing.T) {
	m := NewMetrics()
	m.Record("OrbitalGenerator", Recoverable(1, "x", nil))
	m.Record("StellarGenerator", Data("y", nil))

	stats := m.Snapshot()
	if stats.TotalFaults != 2 {
		t.Errorf("expected 2 total faults, got %d", stats.TotalFaults)
	}
	if stats.ByKind["RecoverableGenerationFault"] != 1 {
		t.Errorf("expected 1 recoverable fault, got %d", stats.ByKind["RecoverableGenerationFault"])
	}
	if stats.BySource["StellarGenerator"] != 1 {
		t.Errorf("expected 1 fault from StellarGenerator, got %d", stats.BySource["StellarGenerator"])
	}
}
