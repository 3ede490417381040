package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestLocation_Derivation(t *testing.T) {
	cases := []struct {
		name     string
		status   WorkItemStatus
		sprintID *string
		want     Location
	}{
		{"todo without sprint", WorkItemTodo, nil, LocationBacklog},
		{"todo with empty sprint", WorkItemTodo, strPtr(""), LocationBacklog},
		{"todo with sprint", WorkItemTodo, strPtr("s1"), LocationSprint},
		{"in progress with sprint", WorkItemInProgress, strPtr("s1"), LocationSprint},
		{"done without sprint", WorkItemDone, nil, LocationCompleted},
		{"done with sprint", WorkItemDone, strPtr("s1"), LocationCompleted},
	}
	for _, tc := range cases {
		w := &WorkItem{Status: tc.status, SprintID: tc.sprintID}
		assert.Equal(t, tc.want, w.Location(), tc.name)
	}
}

func TestSprintRef_RetainedWhenDone(t *testing.T) {
	w := &WorkItem{Status: WorkItemDone, SprintID: strPtr("s1")}
	assert.Equal(t, LocationCompleted, w.Location())
	assert.Equal(t, "s1", w.SprintRef(), "completed items keep their last sprint")
}

func TestInEpic(t *testing.T) {
	w := &WorkItem{EpicID: strPtr("e1")}
	assert.True(t, w.InEpic("e1"))
	assert.False(t, w.InEpic("e2"))
	assert.False(t, (&WorkItem{}).InEpic("e1"))
}

func TestSpanDays(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	s := &Sprint{StartDate: start, EndDate: start.AddDate(0, 0, 14)}
	assert.InDelta(t, 14.0, s.SpanDays(), 1e-9)

	e := &Epic{StartDate: start, EndDate: start.AddDate(0, 0, 60)}
	assert.InDelta(t, 60.0, e.SpanDays(), 1e-9)

	// Degenerate spans clamp to one day.
	zero := &Sprint{StartDate: start, EndDate: start}
	assert.Equal(t, 1.0, zero.SpanDays())
}
