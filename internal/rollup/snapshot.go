package rollup

import (
	"context"
	"fmt"
	"sync"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/repository"
	"golang.org/x/sync/errgroup"
)

// UnknownPersonLabel is substituted when a person id cannot be resolved.
const UnknownPersonLabel = "(unknown)"

// Snapshot is an immutable read-set of everything the rollup computations
// need for one project. Rollups never write, so a snapshot taken mid-flight
// can simply be discarded on cancellation.
type Snapshot struct {
	Epics     []*domain.Epic
	Sprints   map[string]*domain.Sprint
	WorkItems []*domain.WorkItem

	// Person assignments keyed by scope target.
	EpicAssignments map[string][]*domain.PersonAssignment
	ItemAssignments map[string][]*domain.PersonAssignment

	// Resolved cost entries keyed by scope target.
	EpicCosts map[string][]*domain.Cost
	ItemCosts map[string][]*domain.Cost

	Persons map[string]*domain.Person

	// Warnings records lookups that degraded to a fallback instead of
	// aborting the load.
	Warnings []string
}

// PersonName resolves a person id to a display name, falling back to
// UnknownPersonLabel when the person is missing from the snapshot.
func (s *Snapshot) PersonName(personID string) string {
	if p, ok := s.Persons[personID]; ok {
		return p.Name
	}
	return UnknownPersonLabel
}

// ItemsForEpic returns the snapshot's work items belonging to the epic.
func (s *Snapshot) ItemsForEpic(epicID string) []*domain.WorkItem {
	var out []*domain.WorkItem
	for _, w := range s.WorkItems {
		if w.InEpic(epicID) {
			out = append(out, w)
		}
	}
	return out
}

// SprintSpanDays returns the period length for a sprint id, falling back to
// the backlog default when the sprint is missing from the snapshot.
func (s *Snapshot) SprintSpanDays(sprintID string) float64 {
	if sp, ok := s.Sprints[sprintID]; ok {
		return sp.SpanDays()
	}
	return DefaultBacklogPeriodDays
}

// loaderConcurrency bounds the per-scope fan-out of batch reads.
const loaderConcurrency = 8

// Loader fetches rollup snapshots from the assignment store. Reads for
// independent scopes run in parallel; an individual failed list or lookup
// degrades that one slice of the snapshot to empty plus a warning rather
// than failing the whole load.
type Loader struct {
	epics      repository.EpicRepo
	sprints    repository.SprintRepo
	workItems  repository.WorkItemRepo
	persons    repository.PersonRepo
	costs      repository.CostRepo
	personAsgs repository.PersonAssignmentRepo
	costAsgs   repository.CostAssignmentRepo
}

// NewLoader creates a snapshot loader over the given repositories.
func NewLoader(
	epics repository.EpicRepo,
	sprints repository.SprintRepo,
	workItems repository.WorkItemRepo,
	persons repository.PersonRepo,
	costs repository.CostRepo,
	personAsgs repository.PersonAssignmentRepo,
	costAsgs repository.CostAssignmentRepo,
) *Loader {
	return &Loader{
		epics:      epics,
		sprints:    sprints,
		workItems:  workItems,
		persons:    persons,
		costs:      costs,
		personAsgs: personAsgs,
		costAsgs:   costAsgs,
	}
}

// Load fetches the full read-set for a project. The entity lists (epics,
// sprints, work items) are required; everything below them degrades
// per-scope on failure.
func (l *Loader) Load(ctx context.Context, projectID string) (*Snapshot, error) {
	snap := &Snapshot{
		Sprints:         make(map[string]*domain.Sprint),
		EpicAssignments: make(map[string][]*domain.PersonAssignment),
		ItemAssignments: make(map[string][]*domain.PersonAssignment),
		EpicCosts:       make(map[string][]*domain.Cost),
		ItemCosts:       make(map[string][]*domain.Cost),
		Persons:         make(map[string]*domain.Person),
	}

	var mu sync.Mutex
	warn := func(format string, args ...any) {
		mu.Lock()
		snap.Warnings = append(snap.Warnings, fmt.Sprintf(format, args...))
		mu.Unlock()
	}

	// Phase 1: the entity lists every computation hangs off.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		epics, err := l.epics.ListByProject(gctx, projectID)
		if err != nil {
			return fmt.Errorf("loading epics: %w", err)
		}
		snap.Epics = epics
		return nil
	})
	g.Go(func() error {
		sprints, err := l.sprints.ListByProject(gctx, projectID)
		if err != nil {
			return fmt.Errorf("loading sprints: %w", err)
		}
		mu.Lock()
		for _, s := range sprints {
			snap.Sprints[s.ID] = s
		}
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		items, err := l.workItems.ListByProject(gctx, projectID)
		if err != nil {
			return fmt.Errorf("loading work items: %w", err)
		}
		snap.WorkItems = items
		return nil
	})
	g.Go(func() error {
		// A failed person list degrades every name to the fallback label.
		persons, err := l.persons.List(gctx)
		if err != nil {
			warn("person directory unavailable: %v", err)
			return nil
		}
		mu.Lock()
		for _, p := range persons {
			snap.Persons[p.ID] = p
		}
		mu.Unlock()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Phase 2: per-scope assignment reads, fanned out and degraded per scope.
	g2, g2ctx := errgroup.WithContext(ctx)
	g2.SetLimit(loaderConcurrency)

	loadScope := func(scope domain.AssignmentScope, hours map[string][]*domain.PersonAssignment, costs map[string][]*domain.Cost) {
		g2.Go(func() error {
			asgs, err := l.personAsgs.ListByScope(g2ctx, scope)
			if err != nil {
				warn("person assignments for %s %s unavailable: %v", scope.Kind, scope.ID, err)
				return nil
			}
			mu.Lock()
			hours[scope.ID] = asgs
			mu.Unlock()
			return nil
		})
		g2.Go(func() error {
			links, err := l.costAsgs.ListByScope(g2ctx, scope)
			if err != nil {
				warn("cost assignments for %s %s unavailable: %v", scope.Kind, scope.ID, err)
				return nil
			}
			for _, link := range links {
				cost, err := l.costs.GetByID(g2ctx, link.CostID)
				if err != nil {
					warn("cost %s unresolved: %v", link.CostID, err)
					continue
				}
				mu.Lock()
				costs[scope.ID] = append(costs[scope.ID], cost)
				mu.Unlock()
			}
			return nil
		})
	}

	for _, e := range snap.Epics {
		loadScope(domain.EpicScope(e.ID), snap.EpicAssignments, snap.EpicCosts)
	}
	for _, w := range snap.WorkItems {
		loadScope(domain.WorkItemScope(w.ID), snap.ItemAssignments, snap.ItemCosts)
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	return snap, nil
}
