package repository

import (
	"context"

	"github.com/avoronkov/trackdeck/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type EpicRepo interface {
	Create(ctx context.Context, e *domain.Epic) error
	GetByID(ctx context.Context, id string) (*domain.Epic, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Epic, error)
	Update(ctx context.Context, e *domain.Epic) error
	Delete(ctx context.Context, id string) error
}

type SprintRepo interface {
	Create(ctx context.Context, s *domain.Sprint) error
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Sprint, error)
	Update(ctx context.Context, s *domain.Sprint) error
	Delete(ctx context.Context, id string) error
}

type WorkItemRepo interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WorkItem, error)
	ListByEpic(ctx context.Context, epicID string) ([]*domain.WorkItem, error)
	ListBySprint(ctx context.Context, sprintID string) ([]*domain.WorkItem, error)
	Update(ctx context.Context, w *domain.WorkItem) error
	Delete(ctx context.Context, id string) error
}

type PersonRepo interface {
	Create(ctx context.Context, p *domain.Person) error
	GetByID(ctx context.Context, id string) (*domain.Person, error)
	List(ctx context.Context) ([]*domain.Person, error)
	Delete(ctx context.Context, id string) error
}

type CostRepo interface {
	Create(ctx context.Context, c *domain.Cost) error
	GetByID(ctx context.Context, id string) (*domain.Cost, error)
	List(ctx context.Context) ([]*domain.Cost, error)
	Delete(ctx context.Context, id string) error
}

type PersonAssignmentRepo interface {
	Create(ctx context.Context, a *domain.PersonAssignment) error
	GetByID(ctx context.Context, id string) (*domain.PersonAssignment, error)
	ListByScope(ctx context.Context, scope domain.AssignmentScope) ([]*domain.PersonAssignment, error)
	// FindByPersonAndScope returns the single assignment for a person at the
	// given scope, or ErrNotFound.
	FindByPersonAndScope(ctx context.Context, personID string, scope domain.AssignmentScope) (*domain.PersonAssignment, error)
	Update(ctx context.Context, a *domain.PersonAssignment) error
	// UpdateHoursIfMatch sets hours to newHours only if the stored hours still
	// equal expectedHours, reporting whether the row was updated. This is the
	// optimistic-concurrency check for reallocation.
	UpdateHoursIfMatch(ctx context.Context, id string, expectedHours, newHours float64) (bool, error)
	Delete(ctx context.Context, id string) error
}

type CostAssignmentRepo interface {
	Create(ctx context.Context, a *domain.CostAssignment) error
	ListByScope(ctx context.Context, scope domain.AssignmentScope) ([]*domain.CostAssignment, error)
	Delete(ctx context.Context, id string) error
}

// SprintPrefRepo persists the user's sprint-filter selection per project as
// an opaque blob.
type SprintPrefRepo interface {
	Get(ctx context.Context, projectID string) (string, error)
	Put(ctx context.Context, projectID, selection string) error
}
