package faults

import (
	"sync"
	"time"
)

// Metrics tracks fault statistics across a driver run, grounded on the
// teacher's internal/errors.Metrics (same shape: counts by kind/source,
// last fault, uptime).
type Metrics struct {
	mu           sync.RWMutex
	TotalFaults  int64
	ByKind       map[string]int64
	BySource     map[string]int64
	LastFault    time.Time
	LastFaultMsg string
	startTime    time.Time
}

// NewMetrics creates a new fault metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		ByKind:    make(map[string]int64),
		BySource:  make(map[string]int64),
		startTime: time.Now(),
	}
}

// Record records a fault occurrence.
func (m *Metrics) Record(source string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalFaults++
	m.BySource[source]++
	m.LastFault = time.Now()
	if err != nil {
		m.LastFaultMsg = err.Error()
		var f *Fault
		if fl, ok := err.(*Fault); ok {
			f = fl
		}
		if f != nil {
			m.ByKind[f.Kind.String()]++
		} else {
			m.ByKind["unknown"]++
		}
	}

	log.Debug("fault recorded: source=%s total=%d", source, m.TotalFaults)
}

// Stats is a point-in-time snapshot of Metrics.
type Stats struct {
	TotalFaults  int64
	ByKind       map[string]int64
	BySource     map[string]int64
	LastFault    time.Time
	LastFaultMsg string
	Uptime       time.Duration
}

// Snapshot returns the current statistics.
func (m *Metrics) Snapshot() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byKind := make(map[string]int64, len(m.ByKind))
	for k, v := range m.ByKind {
		byKind[k] = v
	}
	bySource := make(map[string]int64, len(m.BySource))
	for k, v := range m.BySource {
		bySource[k] = v
	}

	return Stats{
		TotalFaults:  m.TotalFaults,
		ByKind:       byKind,
		BySource:     bySource,
		LastFault:    m.LastFault,
		LastFaultMsg: m.LastFaultMsg,
		Uptime:       time.Since(m.startTime),
	}
}
