package metrics

import (
	"sync"
	"time"
)

// Metrics collects counters for one pipeline run, exposed by the optional
// monitoring endpoints.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesLoaded    int64
	DuplicateGroups   int64
	DuplicatesRemoved int64
	FieldsBackfilled  int64
	LegacyMerged      int64
	DraftsGenerated   int64
	ValidationIssues  int64

	// Timings
	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) SetArticlesLoaded(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesLoaded = int64(n)
}

func (m *Metrics) AddDuplicateGroups(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicateGroups += int64(n)
}

func (m *Metrics) AddDuplicatesRemoved(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesRemoved += int64(n)
}

func (m *Metrics) AddFieldsBackfilled(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FieldsBackfilled += int64(n)
}

func (m *Metrics) AddLegacyMerged(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LegacyMerged += int64(n)
}

func (m *Metrics) AddDraftsGenerated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DraftsGenerated += int64(n)
}

func (m *Metrics) SetValidationIssues(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationIssues = int64(n)
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++

	if m.ProcessingCount > 0 {
		m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_loaded":            m.ArticlesLoaded,
		"duplicate_groups":           m.DuplicateGroups,
		"duplicates_removed":         m.DuplicatesRemoved,
		"fields_backfilled":          m.FieldsBackfilled,
		"legacy_merged":              m.LegacyMerged,
		"drafts_generated":           m.DraftsGenerated,
		"validation_issues":          m.ValidationIssues,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}
