package rollup

import (
	"sort"

	"github.com/avoronkov/trackdeck/internal/domain"
)

// BacklogPartition is the synthetic partition name for items without a sprint.
const BacklogPartition = "backlog"

// PersonHours is one person's contribution to a partition.
type PersonHours struct {
	PersonID   string
	PersonName string
	Hours      float64
}

// PartitionRow is one sprint (or the backlog) bucket of an epic's hours.
type PartitionRow struct {
	// SprintID is empty for the backlog partition and the epic-only row.
	SprintID   string
	Name       string
	TotalHours float64
	FTE        float64
	Persons    []PersonHours
}

// EpicRollupRow is the hour rollup for a single epic: its in-scope sprint
// partitions, the backlog partition, the epic-only row, and the authoritative
// totals. Epic-level and work-item-level hours are additive accounting
// scopes, so TotalHours is their sum, never a deduplication.
type EpicRollupRow struct {
	EpicID     string
	Title      string
	Partitions []PartitionRow
	EpicOnly   PartitionRow
	TotalHours float64
	TotalFTE   float64
}

// hourBucket accumulates per-person hours before rendering a PartitionRow.
type hourBucket struct {
	total    float64
	byPerson map[string]float64
}

func newHourBucket() *hourBucket {
	return &hourBucket{byPerson: make(map[string]float64)}
}

func (b *hourBucket) add(personID string, hours float64) {
	b.total += hours
	b.byPerson[personID] += hours
}

func (b *hourBucket) row(snap *Snapshot, sprintID, name string, basis, periodDays float64) PartitionRow {
	persons := make([]PersonHours, 0, len(b.byPerson))
	for id, h := range b.byPerson {
		persons = append(persons, PersonHours{PersonID: id, PersonName: snap.PersonName(id), Hours: h})
	}
	sort.Slice(persons, func(i, j int) bool {
		if persons[i].PersonName != persons[j].PersonName {
			return persons[i].PersonName < persons[j].PersonName
		}
		return persons[i].PersonID < persons[j].PersonID
	})
	return PartitionRow{
		SprintID:   sprintID,
		Name:       name,
		TotalHours: b.total,
		FTE:        FTE(b.total, basis, periodDays),
		Persons:    persons,
	}
}

// EpicSprintHours computes the Epic×Sprint hour table for every epic in the
// snapshot. Each work-item-level hour lands in exactly one sprint or backlog
// bucket (the item's own location); completed items retain their last sprint
// association, and completed items that never had a sprint are excluded from
// partitioning. Epic-level hours form their own sprint-independent row.
func EpicSprintHours(snap *Snapshot, filter SprintFilter, basisHoursPerDay float64) []EpicRollupRow {
	scope := scopedSprints(snap, filter)

	rows := make([]EpicRollupRow, 0, len(snap.Epics))
	for _, epic := range snap.Epics {
		rows = append(rows, epicRow(snap, epic, scope, basisHoursPerDay))
	}
	return rows
}

func epicRow(snap *Snapshot, epic *domain.Epic, scope []*domain.Sprint, basis float64) EpicRollupRow {
	sprintBuckets := make(map[string]*hourBucket, len(scope))
	for _, s := range scope {
		sprintBuckets[s.ID] = newHourBucket()
	}
	backlog := newHourBucket()

	for _, item := range snap.ItemsForEpic(epic.ID) {
		bucket := partitionFor(item, sprintBuckets, backlog)
		if bucket == nil {
			continue
		}
		for _, a := range snap.ItemAssignments[item.ID] {
			bucket.add(a.PersonID, a.Hours)
		}
	}

	epicOnly := newHourBucket()
	for _, a := range snap.EpicAssignments[epic.ID] {
		epicOnly.add(a.PersonID, a.Hours)
	}

	row := EpicRollupRow{EpicID: epic.ID, Title: epic.Title}
	for _, s := range scope {
		row.Partitions = append(row.Partitions,
			sprintBuckets[s.ID].row(snap, s.ID, s.Name, basis, s.SpanDays()))
	}
	row.Partitions = append(row.Partitions,
		backlog.row(snap, "", BacklogPartition, basis, DefaultBacklogPeriodDays))
	row.EpicOnly = epicOnly.row(snap, "", "epic", basis, epic.SpanDays())

	for _, p := range row.Partitions {
		row.TotalHours += p.TotalHours
		row.TotalFTE += p.FTE
	}
	row.TotalHours += row.EpicOnly.TotalHours
	row.TotalFTE += row.EpicOnly.FTE
	return row
}

// partitionFor routes a work item's hours to its single bucket, or nil when
// the item is out of scope (completed with no sprint, or sprint filtered out).
func partitionFor(item *domain.WorkItem, sprintBuckets map[string]*hourBucket, backlog *hourBucket) *hourBucket {
	if ref := item.SprintRef(); ref != "" {
		return sprintBuckets[ref] // nil when the sprint is not selected
	}
	if item.Location() == domain.LocationBacklog {
		return backlog
	}
	return nil
}

// scopedSprints returns the snapshot's sprints selected by the filter, in
// start-date order for deterministic partition output.
func scopedSprints(snap *Snapshot, filter SprintFilter) []*domain.Sprint {
	var out []*domain.Sprint
	for _, s := range snap.Sprints {
		if filter.InScope(s.ID) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
