package metrics

import (
	"testing"
	"time"
)

func TestCountersAccumulate(t *testing.T) {
	m := &Metrics{IsHealthy: true}
	m.SetArticlesLoaded(10)
	m.AddDuplicateGroups(2)
	m.AddDuplicatesRemoved(3)
	m.AddDuplicatesRemoved(1)
	m.AddFieldsBackfilled(7)
	m.AddLegacyMerged(4)
	m.AddDraftsGenerated(1)
	m.SetValidationIssues(5)

	stats := m.GetStats()
	if stats["articles_loaded"] != int64(10) {
		t.Errorf("articles_loaded = %v", stats["articles_loaded"])
	}
	if stats["duplicates_removed"] != int64(4) {
		t.Errorf("duplicates_removed = %v, want 4", stats["duplicates_removed"])
	}
	if stats["validation_issues"] != int64(5) {
		t.Errorf("validation_issues = %v", stats["validation_issues"])
	}
}

func TestProcessingTimeAverage(t *testing.T) {
	m := &Metrics{}
	m.RecordProcessingTime(100 * time.Millisecond)
	m.RecordProcessingTime(300 * time.Millisecond)

	if m.AverageProcessingTime != 200*time.Millisecond {
		t.Errorf("average = %v, want 200ms", m.AverageProcessingTime)
	}
	if m.LastProcessingTime != 300*time.Millisecond {
		t.Errorf("last = %v, want 300ms", m.LastProcessingTime)
	}
}

func TestErrorFlipsHealthAndRunRestoresIt(t *testing.T) {
	m := &Metrics{IsHealthy: true}
	m.SetError("store unreadable")
	if m.GetStats()["is_healthy"] != false {
		t.Errorf("error should mark unhealthy")
	}
	if m.GetStats()["last_error"] != "store unreadable" {
		t.Errorf("last_error = %v", m.GetStats()["last_error"])
	}

	m.SetLastRun()
	if m.GetStats()["is_healthy"] != true {
		t.Errorf("successful run should restore health")
	}
}
