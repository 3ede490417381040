package rollup

import (
	"testing"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostRollup_EpicAndBacklogBuckets(t *testing.T) {
	snap := newSnapshot()
	snap.Epics = []*domain.Epic{{
		ID: "E", ProjectID: "proj", Title: "Epic",
		StartDate: snapStart, EndDate: snapStart.AddDate(0, 0, 30),
	}}
	// Backlog item W with a $50 cost; $100 cost on the epic directly.
	snap.WorkItems = []*domain.WorkItem{{
		ID: "W", ProjectID: "proj", EpicID: strPtr("E"), Status: domain.WorkItemTodo,
	}}
	snap.EpicCosts["E"] = []*domain.Cost{{ID: "c1", Amount: 100, Category: "licenses"}}
	snap.ItemCosts["W"] = []*domain.Cost{{ID: "c2", Amount: 50, Category: "hardware"}}

	rows := CostRollup(snap, AllSprints())
	require.Len(t, rows, 1)
	row := rows[0]

	assert.Equal(t, 100.0, row.EpicLevel.Amount)
	assert.Equal(t, 50.0, row.Backlog.Amount)
	assert.Equal(t, 0.0, row.Sprint.Amount)
	assert.Equal(t, 150.0, row.TotalCost)
}

func TestCostRollup_SprintBucketHonorsFilter(t *testing.T) {
	snap := newSnapshot()
	snap.Epics = []*domain.Epic{{
		ID: "E", ProjectID: "proj", Title: "Epic",
		StartDate: snapStart, EndDate: snapStart.AddDate(0, 0, 30),
	}}
	snap.Sprints["S1"] = &domain.Sprint{ID: "S1", ProjectID: "proj", Name: "Sprint 1",
		StartDate: snapStart, EndDate: snapStart.AddDate(0, 0, 14)}
	snap.WorkItems = []*domain.WorkItem{{
		ID: "W", ProjectID: "proj", EpicID: strPtr("E"), SprintID: strPtr("S1"),
		Status: domain.WorkItemInProgress,
	}}
	snap.ItemCosts["W"] = []*domain.Cost{{ID: "c1", Amount: 75, Category: "cloud"}}

	inScope := CostRollup(snap, SelectSprints("S1"))
	assert.Equal(t, 75.0, inScope[0].Sprint.Amount)
	assert.Equal(t, 75.0, inScope[0].TotalCost)

	outOfScope := CostRollup(snap, SelectSprints())
	assert.Equal(t, 0.0, outOfScope[0].Sprint.Amount)
	assert.Equal(t, 0.0, outOfScope[0].Backlog.Amount, "sprint items never leak into the backlog bucket")
	assert.Equal(t, 0.0, outOfScope[0].TotalCost)
}

func TestCostRollup_CategoryBreakdown(t *testing.T) {
	snap := newSnapshot()
	snap.Epics = []*domain.Epic{{
		ID: "E", ProjectID: "proj", Title: "Epic",
		StartDate: snapStart, EndDate: snapStart.AddDate(0, 0, 30),
	}}
	snap.EpicCosts["E"] = []*domain.Cost{
		{ID: "c1", Amount: 100, Category: "licenses"},
		{ID: "c2", Amount: 40, Category: "licenses"},
		{ID: "c3", Amount: 25, Category: "cloud"},
	}

	rows := CostRollup(snap, AllSprints())
	require.Len(t, rows, 1)
	bucket := rows[0].EpicLevel
	assert.Equal(t, 165.0, bucket.Amount)
	require.Len(t, bucket.Categories, 2)
	// Sorted by category name.
	assert.Equal(t, CategoryAmount{Category: "cloud", Amount: 25}, bucket.Categories[0])
	assert.Equal(t, CategoryAmount{Category: "licenses", Amount: 140}, bucket.Categories[1])
}
