package rollup

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var snapStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// newSnapshot builds an empty snapshot with initialized maps.
func newSnapshot() *Snapshot {
	return &Snapshot{
		Sprints:         make(map[string]*domain.Sprint),
		EpicAssignments: make(map[string][]*domain.PersonAssignment),
		ItemAssignments: make(map[string][]*domain.PersonAssignment),
		EpicCosts:       make(map[string][]*domain.Cost),
		ItemCosts:       make(map[string][]*domain.Cost),
		Persons:         make(map[string]*domain.Person),
	}
}

// scenarioSnapshot is the base fixture shared by the epic-hour tests:
// epic E with a 60-day span, sprint S1 with a 14-day span, work item W in S1
// carrying a 40h assignment for person p1.
func scenarioSnapshot() *Snapshot {
	snap := newSnapshot()
	snap.Epics = []*domain.Epic{{
		ID: "E", ProjectID: "proj", Title: "Checkout revamp",
		StartDate: snapStart, EndDate: snapStart.AddDate(0, 0, 60),
	}}
	snap.Sprints["S1"] = &domain.Sprint{
		ID: "S1", ProjectID: "proj", Name: "Sprint 1",
		StartDate: snapStart, EndDate: snapStart.AddDate(0, 0, 14),
		Status: domain.SprintActive,
	}
	snap.WorkItems = []*domain.WorkItem{{
		ID: "W", ProjectID: "proj", EpicID: strPtr("E"), SprintID: strPtr("S1"),
		Title: "Payment form", Status: domain.WorkItemInProgress,
	}}
	snap.ItemAssignments["W"] = []*domain.PersonAssignment{{
		ID: "a1", PersonID: "p1", Scope: domain.WorkItemScope("W"), Hours: 40,
	}}
	snap.Persons["p1"] = &domain.Person{ID: "p1", Name: "Ada"}
	snap.Persons["p2"] = &domain.Person{ID: "p2", Name: "Grace"}
	return snap
}

func findPartition(t *testing.T, row EpicRollupRow, name string) PartitionRow {
	t.Helper()
	for _, p := range row.Partitions {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("partition %q not found", name)
	return PartitionRow{}
}

func TestEpicSprintHours_SingleItemInSprint(t *testing.T) {
	snap := scenarioSnapshot()

	rows := EpicSprintHours(snap, AllSprints(), 5.7)
	require.Len(t, rows, 1)
	row := rows[0]

	s1 := findPartition(t, row, "Sprint 1")
	assert.Equal(t, 40.0, s1.TotalHours)
	assert.InDelta(t, 0.501, s1.FTE, 0.001, "40h / (5.7 × 14d)")

	assert.Equal(t, 0.0, row.EpicOnly.TotalHours)
	assert.Equal(t, 40.0, row.TotalHours)

	require.Len(t, s1.Persons, 1)
	assert.Equal(t, "Ada", s1.Persons[0].PersonName)
}

func TestEpicSprintHours_EpicLevelAdditive(t *testing.T) {
	snap := scenarioSnapshot()
	snap.EpicAssignments["E"] = []*domain.PersonAssignment{{
		ID: "a2", PersonID: "p2", Scope: domain.EpicScope("E"), Hours: 20,
	}}

	rows := EpicSprintHours(snap, AllSprints(), 5.7)
	require.Len(t, rows, 1)
	row := rows[0]

	assert.Equal(t, 20.0, row.EpicOnly.TotalHours)
	assert.Equal(t, 60.0, row.TotalHours, "epic-level and item-level hours are summed, never deduplicated")
	// Epic-only FTE is computed over the epic's own 60-day span.
	assert.InDelta(t, 20.0/(5.7*60), row.EpicOnly.FTE, 1e-9)
}

func TestEpicSprintHours_FilterExcludesSprint(t *testing.T) {
	snap := scenarioSnapshot()
	snap.EpicAssignments["E"] = []*domain.PersonAssignment{{
		ID: "a2", PersonID: "p2", Scope: domain.EpicScope("E"), Hours: 20,
	}}
	// A backlog item with hours, unaffected by sprint selection.
	snap.WorkItems = append(snap.WorkItems, &domain.WorkItem{
		ID: "W2", ProjectID: "proj", EpicID: strPtr("E"), Status: domain.WorkItemTodo,
	})
	snap.ItemAssignments["W2"] = []*domain.PersonAssignment{{
		ID: "a3", PersonID: "p1", Scope: domain.WorkItemScope("W2"), Hours: 8,
	}}

	rows := EpicSprintHours(snap, SelectSprints(), 5.7)
	require.Len(t, rows, 1)
	row := rows[0]

	// No sprint partitions remain; backlog and epic-only keep their values.
	backlog := findPartition(t, row, BacklogPartition)
	assert.Equal(t, 8.0, backlog.TotalHours)
	assert.Equal(t, 20.0, row.EpicOnly.TotalHours)
	assert.Equal(t, 28.0, row.TotalHours, "S1's 40h drop out of the selected scope")
	for _, p := range row.Partitions {
		assert.NotEqual(t, "Sprint 1", p.Name)
	}
}

func TestEpicSprintHours_CompletedItemKeepsSprint(t *testing.T) {
	snap := scenarioSnapshot()
	snap.WorkItems[0].Status = domain.WorkItemDone

	rows := EpicSprintHours(snap, AllSprints(), 5.7)
	s1 := findPartition(t, rows[0], "Sprint 1")
	assert.Equal(t, 40.0, s1.TotalHours, "completed items retain their last sprint for historical totals")
}

func TestEpicSprintHours_CompletedItemWithoutSprintExcluded(t *testing.T) {
	snap := scenarioSnapshot()
	snap.WorkItems = append(snap.WorkItems, &domain.WorkItem{
		ID: "W3", ProjectID: "proj", EpicID: strPtr("E"), Status: domain.WorkItemDone,
	})
	snap.ItemAssignments["W3"] = []*domain.PersonAssignment{{
		ID: "a4", PersonID: "p1", Scope: domain.WorkItemScope("W3"), Hours: 12,
	}}

	rows := EpicSprintHours(snap, AllSprints(), 5.7)
	row := rows[0]
	backlog := findPartition(t, row, BacklogPartition)
	assert.Equal(t, 0.0, backlog.TotalHours)
	assert.Equal(t, 40.0, row.TotalHours, "done items with no sprint sit outside all partitions")
}

func TestEpicSprintHours_UnknownPersonFallback(t *testing.T) {
	snap := scenarioSnapshot()
	delete(snap.Persons, "p1")

	rows := EpicSprintHours(snap, AllSprints(), 5.7)
	s1 := findPartition(t, rows[0], "Sprint 1")
	require.Len(t, s1.Persons, 1)
	assert.Equal(t, UnknownPersonLabel, s1.Persons[0].PersonName)
	assert.Equal(t, 40.0, s1.TotalHours, "missing name never drops the hours")
}

func TestEpicSprintHours_Idempotent(t *testing.T) {
	snap := scenarioSnapshot()
	snap.EpicAssignments["E"] = []*domain.PersonAssignment{{
		ID: "a2", PersonID: "p2", Scope: domain.EpicScope("E"), Hours: 20,
	}}

	first := EpicSprintHours(snap, AllSprints(), 5.7)
	second := EpicSprintHours(snap, AllSprints(), 5.7)
	assert.True(t, reflect.DeepEqual(first, second), "identical snapshot and parameters must produce identical output")
}

// TestEpicSprintHours_NoDoubleCounting property-tests that every work-item
// hour lands in exactly one partition: the partition totals plus the
// epic-only row always reconstruct the epic total.
func TestEpicSprintHours_NoDoubleCounting(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 100; trial++ {
		snap := newSnapshot()
		snap.Epics = []*domain.Epic{{
			ID: "E", ProjectID: "proj", Title: "Epic",
			StartDate: snapStart, EndDate: snapStart.AddDate(0, 0, 30),
		}}
		sprintIDs := []string{"S1", "S2", "S3"}
		for i, id := range sprintIDs {
			snap.Sprints[id] = &domain.Sprint{
				ID: id, ProjectID: "proj", Name: id,
				StartDate: snapStart.AddDate(0, 0, i*14),
				EndDate:   snapStart.AddDate(0, 0, (i+1)*14),
			}
		}
		snap.Persons["p1"] = &domain.Person{ID: "p1", Name: "Ada"}

		var inPartitionHours float64
		numItems := rng.Intn(10) + 1
		for i := 0; i < numItems; i++ {
			item := &domain.WorkItem{
				ID: "W" + string(rune('a'+i)), ProjectID: "proj", EpicID: strPtr("E"),
				Status: domain.WorkItemTodo,
			}
			switch rng.Intn(4) {
			case 0: // backlog
			case 1, 2: // sprint
				item.SprintID = strPtr(sprintIDs[rng.Intn(len(sprintIDs))])
			case 3: // done, sprint retained half the time
				item.Status = domain.WorkItemDone
				if rng.Intn(2) == 0 {
					item.SprintID = strPtr(sprintIDs[rng.Intn(len(sprintIDs))])
				}
			}
			hours := float64(rng.Intn(40) + 1)
			snap.WorkItems = append(snap.WorkItems, item)
			snap.ItemAssignments[item.ID] = []*domain.PersonAssignment{{
				ID: item.ID + "-a", PersonID: "p1", Scope: domain.WorkItemScope(item.ID), Hours: hours,
			}}
			// Done items with no sprint fall outside every partition.
			if item.Status != domain.WorkItemDone || item.SprintRef() != "" {
				inPartitionHours += hours
			}
		}
		epicOnlyHours := float64(rng.Intn(50))
		if epicOnlyHours > 0 {
			snap.EpicAssignments["E"] = []*domain.PersonAssignment{{
				ID: "epic-a", PersonID: "p1", Scope: domain.EpicScope("E"), Hours: epicOnlyHours,
			}}
		}

		rows := EpicSprintHours(snap, AllSprints(), 5.7)
		require.Len(t, rows, 1)
		row := rows[0]

		var partitionSum float64
		for _, p := range row.Partitions {
			partitionSum += p.TotalHours
		}
		assert.InDelta(t, inPartitionHours, partitionSum, 1e-9,
			"trial %d: each item hour must appear in exactly one bucket", trial)
		assert.InDelta(t, partitionSum+epicOnlyHours, row.TotalHours, 1e-9,
			"trial %d: total must be partitions plus epic-only", trial)
	}
}
