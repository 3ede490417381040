package rollup

import (
	"sort"

	"github.com/avoronkov/trackdeck/internal/domain"
)

// CategoryAmount is one category's share of a cost bucket. Categories are an
// open string set; color mapping is a presentation concern outside this
// package.
type CategoryAmount struct {
	Category string
	Amount   float64
}

// CostBucket is one scope bucket (epic-level, backlog, or sprint) of an
// epic's costs with its category breakdown.
type CostBucket struct {
	Amount     float64
	Categories []CategoryAmount
}

// EpicCostRow is the cost rollup for a single epic.
type EpicCostRow struct {
	EpicID    string
	Title     string
	EpicLevel CostBucket
	Backlog   CostBucket
	Sprint    CostBucket
	TotalCost float64
}

// CostRollup computes per-epic cost totals: costs linked directly to the
// epic, costs on its backlog items, and costs on its items in selected
// sprints. Completed items keep their sprint association, matching the hour
// rollup's bucketing.
func CostRollup(snap *Snapshot, filter SprintFilter) []EpicCostRow {
	rows := make([]EpicCostRow, 0, len(snap.Epics))
	for _, epic := range snap.Epics {
		row := EpicCostRow{EpicID: epic.ID, Title: epic.Title}

		row.EpicLevel = bucketCosts(snap.EpicCosts[epic.ID])

		var backlogCosts, sprintCosts []*domain.Cost
		for _, item := range snap.ItemsForEpic(epic.ID) {
			if ref := item.SprintRef(); ref != "" {
				if filter.InScope(ref) {
					sprintCosts = append(sprintCosts, snap.ItemCosts[item.ID]...)
				}
				continue
			}
			if item.Location() == domain.LocationBacklog {
				backlogCosts = append(backlogCosts, snap.ItemCosts[item.ID]...)
			}
		}
		row.Backlog = bucketCosts(backlogCosts)
		row.Sprint = bucketCosts(sprintCosts)

		row.TotalCost = row.EpicLevel.Amount + row.Backlog.Amount + row.Sprint.Amount
		rows = append(rows, row)
	}
	return rows
}

func bucketCosts(costs []*domain.Cost) CostBucket {
	var bucket CostBucket
	byCategory := make(map[string]float64)
	for _, c := range costs {
		bucket.Amount += c.Amount
		byCategory[c.Category] += c.Amount
	}
	for cat, amount := range byCategory {
		bucket.Categories = append(bucket.Categories, CategoryAmount{Category: cat, Amount: amount})
	}
	sort.Slice(bucket.Categories, func(i, j int) bool {
		return bucket.Categories[i].Category < bucket.Categories[j].Category
	})
	return bucket
}
