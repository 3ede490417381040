package domain

import "time"

type WorkItem struct {
	ID        string
	ProjectID string
	EpicID    *string
	SprintID  *string
	Title     string
	Status    WorkItemStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location derives the bucket a work item's hours and costs belong to.
// Done items are completed regardless of sprint membership; items placed
// in a sprint belong to that sprint; everything else sits in the backlog.
func (w *WorkItem) Location() Location {
	switch {
	case w.Status == WorkItemDone:
		return LocationCompleted
	case w.SprintID != nil && *w.SprintID != "":
		return LocationSprint
	default:
		return LocationBacklog
	}
}

// InEpic reports whether the work item belongs to the given epic.
func (w *WorkItem) InEpic(epicID string) bool {
	return w.EpicID != nil && *w.EpicID == epicID
}

// SprintRef returns the work item's sprint id, or "" when it has none.
// Completed items keep their last sprint association for historical totals.
func (w *WorkItem) SprintRef() string {
	if w.SprintID == nil {
		return ""
	}
	return *w.SprintID
}
