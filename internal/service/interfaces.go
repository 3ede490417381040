package service

import (
	"context"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/rollup"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type EpicService interface {
	Create(ctx context.Context, e *domain.Epic) error
	GetByID(ctx context.Context, id string) (*domain.Epic, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Epic, error)
	Update(ctx context.Context, e *domain.Epic) error
	Delete(ctx context.Context, id string) error
}

type SprintService interface {
	Create(ctx context.Context, s *domain.Sprint) error
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Sprint, error)
	Update(ctx context.Context, s *domain.Sprint) error
	Delete(ctx context.Context, id string) error
}

type WorkItemService interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WorkItem, error)
	ListByEpic(ctx context.Context, epicID string) ([]*domain.WorkItem, error)
	MoveToSprint(ctx context.Context, id string, sprintID *string) error
	MarkDone(ctx context.Context, id string) error
	Update(ctx context.Context, w *domain.WorkItem) error
	Delete(ctx context.Context, id string) error
}

type PersonService interface {
	Create(ctx context.Context, p *domain.Person) error
	GetByID(ctx context.Context, id string) (*domain.Person, error)
	List(ctx context.Context) ([]*domain.Person, error)
	Delete(ctx context.Context, id string) error
}

type CostService interface {
	Create(ctx context.Context, c *domain.Cost) error
	GetByID(ctx context.Context, id string) (*domain.Cost, error)
	List(ctx context.Context) ([]*domain.Cost, error)
	Delete(ctx context.Context, id string) error
}

// AssignmentService manages hour and cost links at either accounting scope.
// At most one PersonAssignment exists per (person, scope) pair; assigning
// hours to an existing pair increments it.
type AssignmentService interface {
	AssignHours(ctx context.Context, personID string, scope domain.AssignmentScope, hours float64, description string) (*domain.PersonAssignment, error)
	UpdateHours(ctx context.Context, assignmentID string, hours float64) error
	RemoveHours(ctx context.Context, assignmentID string) error
	ListHours(ctx context.Context, scope domain.AssignmentScope) ([]*domain.PersonAssignment, error)
	AssignCost(ctx context.Context, costID string, scope domain.AssignmentScope) (*domain.CostAssignment, error)
	RemoveCost(ctx context.Context, costAssignmentID string) error
}

// RollupService loads a consistent snapshot and computes the three dashboard
// tables. The returned warnings list any store lookups that degraded to a
// fallback value.
type RollupService interface {
	EpicSprintHours(ctx context.Context, projectID string, filter rollup.SprintFilter, basisHoursPerDay float64) ([]rollup.EpicRollupRow, []string, error)
	PersonSprintHours(ctx context.Context, projectID string, filter rollup.SprintFilter, basisHoursPerDay float64) ([]rollup.PersonRollupRow, []string, error)
	CostRollup(ctx context.Context, projectID string, filter rollup.SprintFilter) ([]rollup.EpicCostRow, []string, error)

	// DefaultFilter returns the saved selection for the project, or the
	// project's active sprints when nothing has been saved yet.
	DefaultFilter(ctx context.Context, projectID string) (rollup.SprintFilter, error)
	SaveFilter(ctx context.Context, projectID string, filter rollup.SprintFilter) error
}

// ReallocationPreview describes what a reallocation would do, so callers can
// warn before confirming an over-allocation.
type ReallocationPreview struct {
	SourceAssignmentID string
	SourceHours        float64
	RequestedHours     float64
	// Overdrawn is true when the request exceeds the source's remaining
	// hours; the transaction still proceeds and clamps the source to zero.
	Overdrawn bool
}

// ReallocationResult reports the applied transaction.
type ReallocationResult struct {
	MovedHours         float64
	SourceRemaining    float64
	SourceDeleted      bool
	TargetAssignmentID string
	Overdrawn          bool
}

// ReallocationService narrows an epic-level allocation onto a work item.
type ReallocationService interface {
	Preview(ctx context.Context, epicID, personID, targetWorkItemID string, hours float64) (*ReallocationPreview, error)
	Reallocate(ctx context.Context, epicID, personID, targetWorkItemID string, hours float64) (*ReallocationResult, error)
}
