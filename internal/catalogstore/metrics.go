package catalogstore

import "sync/atomic"

// Metrics tracks query counts for a single catalog store connection,
// grounded on the teacher's internal/metrics atomic-counter idiom
// (internal/metrics/metrics.go's databaseQueries/databaseErrors
// fields), scoped to one *DB rather than a process-global collector.
type Metrics struct {
	queries atomic.Int64
	errors  atomic.Int64
}

// NewMetrics returns a zeroed Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordQuery() { m.queries.Add(1) }
func (m *Metrics) recordError() { m.errors.Add(1) }

// Snapshot returns the current counts.
func (m *Metrics) Snapshot() (queries, errors int64) {
	return m.queries.Load(), m.errors.Load()
}
