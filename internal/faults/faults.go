// Package faults implements the error taxonomy of the generation pipeline:
// RecoverableGenerationFault, DataFault, InvariantViolation, and ConfigFault.
// It is grounded on the teacher repository's internal/errors package
// (retry.go, metrics.go), generalized from "retry a flaky network call"
// to "retry a single failed system build with a fresh seed".
package faults

import (
	"errors"
	"fmt"

	"github.com/sargonas/stellar-forge/internal/logger"
)

var log = logger.WithComponent("Faults")

// Kind identifies which branch of the taxonomy an error belongs to.
type Kind int

const (
	// KindRecoverable marks a single-system failure the driver may retry
	// with a fresh seed (unsatisfied constraints, NaN cascade, empty
	// orbit set).
	KindRecoverable Kind = iota
	// KindData marks a missing or malformed evolutionary track file.
	// Fatal to the generator.
	KindData
	// KindInvariant marks an assertion failure in the octree or entity
	// model. Fatal.
	KindInvariant
	// KindConfig marks an out-of-range configuration value, refused at
	// construction.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindRecoverable:
		return "RecoverableGenerationFault"
	case KindData:
		return "DataFault"
	case KindInvariant:
		return "InvariantViolation"
	case KindConfig:
		return "ConfigFault"
	default:
		return "UnknownFault"
	}
}

// ExitCode maps a Kind to the process exit code a CLI entry point
// should use when a run fails with that kind of fault: each kind gets
// its own code so a caller scripting around the generator can tell a
// bad config from a corrupt asset from an internal invariant break.
func (k Kind) ExitCode() int {
	switch k {
	case KindConfig:
		return 2
	case KindData:
		return 3
	case KindInvariant:
		return 4
	default:
		return 1
	}
}

// Fault is the concrete error type for every kind in the taxonomy.
type Fault struct {
	Kind Kind
	// Seed is the seed sequence that produced the failing system. Zero
	// for kinds that are not per-system (Data, Invariant, Config).
	Seed uint64
	// Msg is a short human-readable description.
	Msg string
	// Err wraps the underlying cause, if any.
	Err error
}

func (f *Fault) Error() string {
	if f.Kind == KindRecoverable {
		if f.Err != nil {
			return fmt.Sprintf("%s: seed=%d: %s: %v", f.Kind, f.Seed, f.Msg, f.Err)
		}
		return fmt.Sprintf("%s: seed=%d: %s", f.Kind, f.Seed, f.Msg)
	}
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Msg, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Msg)
}

func (f *Fault) Unwrap() error { return f.Err }

// Recoverable constructs a RecoverableGenerationFault carrying the seed
// that produced it, per spec §4.5.7 / §7.
func Recoverable(seed uint64, msg string, err error) *Fault {
	return &Fault{Kind: KindRecoverable, Seed: seed, Msg: msg, Err: err}
}

// Data constructs a DataFault.
func Data(msg string, err error) *Fault {
	return &Fault{Kind: KindData, Msg: msg, Err: err}
}

// Invariant constructs an InvariantViolation.
func Invariant(msg string) *Fault {
	return &Fault{Kind: KindInvariant, Msg: msg}
}

// Config constructs a ConfigFault.
func Config(msg string) *Fault {
	return &Fault{Kind: KindConfig, Msg: msg}
}

// IsRecoverable reports whether err is a RecoverableGenerationFault,
// looking through wrapped errors.
func IsRecoverable(err error) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind == KindRecoverable
	}
	return false
}

// RetryableSystemBuild runs build, which may fail with a recoverable
// fault, up to maxAttempts times. Each retry calls reseed to produce a
// fresh seed for the next attempt, matching spec §4.7: "on a build
// failure, re-seed and retry up to K times before abandoning." Unlike
// the teacher's time-based backoff retry (used for transient network
// errors), there is no delay between attempts: a failed deterministic
// draw does not become more likely to succeed by waiting, only by
// drawing a different seed.
func RetryableSystemBuild(maxAttempts int, reseed func(attempt int) uint64, build func(seed uint64) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		seed := reseed(attempt)
		err := build(seed)
		if err == nil {
			if attempt > 1 {
				log.Info("system build succeeded after %d attempts (seed=%d)", attempt, seed)
			}
			return nil
		}

		lastErr = err
		if !IsRecoverable(err) {
			log.Error("non-recoverable fault, aborting retries: %v", err)
			return err
		}

		log.Warn("system build failed (attempt %d/%d), retrying with new seed: %v", attempt, maxAttempts, err)
	}

	log.Error("system build abandoned after %d attempts: %v", maxAttempts, lastErr)
	return fmt.Errorf("system build abandoned after %d attempts: %w", maxAttempts, lastErr)
}
