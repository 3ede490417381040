package rollup

import (
	"sort"

	"github.com/avoronkov/trackdeck/internal/domain"
)

// PersonRollupRow is one person's hours across the selected sprints, the
// backlog, and all epic-level assignments in the project.
type PersonRollupRow struct {
	PersonID   string
	PersonName string
	// SprintHours maps selected sprint id to hours from that person's
	// work-item assignments in the sprint.
	SprintHours  map[string]float64
	BacklogHours float64
	// EpicOnlyHours sums the person's epic-level assignments across all
	// epics; by definition sprint-independent.
	EpicOnlyHours float64
	TotalHours    float64
}

// PersonSprintHours computes the Person×Sprint hour table. Rows are sorted
// by person name ascending (id as tie-break) so output is deterministic.
// Column totals match EpicSprintHours for the same snapshot, filter, and
// basis: both tables partition the identical assignment set.
func PersonSprintHours(snap *Snapshot, filter SprintFilter, basisHoursPerDay float64) []PersonRollupRow {
	scope := scopedSprints(snap, filter)

	byPerson := make(map[string]*PersonRollupRow)
	rowFor := func(personID string) *PersonRollupRow {
		if r, ok := byPerson[personID]; ok {
			return r
		}
		r := &PersonRollupRow{
			PersonID:    personID,
			PersonName:  snap.PersonName(personID),
			SprintHours: make(map[string]float64, len(scope)),
		}
		byPerson[personID] = r
		return r
	}

	inScope := make(map[string]bool, len(scope))
	for _, s := range scope {
		inScope[s.ID] = true
	}

	// Work-item-level hours bucket by the item's own location, mirroring
	// the epic table's partitioning exactly.
	for _, epic := range snap.Epics {
		for _, item := range snap.ItemsForEpic(epic.ID) {
			for _, a := range snap.ItemAssignments[item.ID] {
				r := rowFor(a.PersonID)
				if ref := item.SprintRef(); ref != "" {
					if inScope[ref] {
						r.SprintHours[ref] += a.Hours
						r.TotalHours += a.Hours
					}
					continue
				}
				if item.Location() == domain.LocationBacklog {
					r.BacklogHours += a.Hours
					r.TotalHours += a.Hours
				}
			}
		}

		for _, a := range snap.EpicAssignments[epic.ID] {
			r := rowFor(a.PersonID)
			r.EpicOnlyHours += a.Hours
			r.TotalHours += a.Hours
		}
	}

	rows := make([]PersonRollupRow, 0, len(byPerson))
	for _, r := range byPerson {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PersonName != rows[j].PersonName {
			return rows[i].PersonName < rows[j].PersonName
		}
		return rows[i].PersonID < rows[j].PersonID
	})
	return rows
}
