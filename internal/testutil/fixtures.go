package testutil

import (
	"time"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/google/uuid"
)

// fixtureStart anchors all fixture date math so tests are deterministic.
var fixtureStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Epic options
type EpicOption func(*domain.Epic)

func WithEpicSpan(start time.Time, days int) EpicOption {
	return func(e *domain.Epic) {
		e.StartDate = start
		e.EndDate = start.AddDate(0, 0, days)
	}
}

func NewTestEpic(projectID, title string, opts ...EpicOption) *domain.Epic {
	now := time.Now().UTC()
	e := &domain.Epic{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		StartDate: fixtureStart,
		EndDate:   fixtureStart.AddDate(0, 0, 60),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sprint options
type SprintOption func(*domain.Sprint)

func WithSprintStatus(s domain.SprintStatus) SprintOption {
	return func(sp *domain.Sprint) {
		sp.Status = s
	}
}

func WithSprintSpan(start time.Time, days int) SprintOption {
	return func(sp *domain.Sprint) {
		sp.StartDate = start
		sp.EndDate = start.AddDate(0, 0, days)
	}
}

func NewTestSprint(projectID, name string, opts ...SprintOption) *domain.Sprint {
	now := time.Now().UTC()
	s := &domain.Sprint{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		StartDate: fixtureStart,
		EndDate:   fixtureStart.AddDate(0, 0, 14),
		Status:    domain.SprintActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WorkItem options
type WorkItemOption func(*domain.WorkItem)

func WithEpicID(id string) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.EpicID = &id
	}
}

func WithSprintID(id string) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.SprintID = &id
	}
}

func WithItemStatus(s domain.WorkItemStatus) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Status = s
	}
}

func NewTestWorkItem(projectID, title string, opts ...WorkItemOption) *domain.WorkItem {
	now := time.Now().UTC()
	w := &domain.WorkItem{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		Status:    domain.WorkItemTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func NewTestPerson(name string) *domain.Person {
	return &domain.Person{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Cost options
type CostOption func(*domain.Cost)

func WithCategory(c string) CostOption {
	return func(cost *domain.Cost) {
		cost.Category = c
	}
}

func NewTestCost(amount float64, opts ...CostOption) *domain.Cost {
	c := &domain.Cost{
		ID:        uuid.New().String(),
		Amount:    amount,
		Category:  "general",
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PersonAssignment options
type AssignmentOption func(*domain.PersonAssignment)

func WithDescription(d string) AssignmentOption {
	return func(a *domain.PersonAssignment) {
		a.Description = d
	}
}

func NewTestPersonAssignment(personID string, scope domain.AssignmentScope, hours float64, opts ...AssignmentOption) *domain.PersonAssignment {
	now := time.Now().UTC()
	a := &domain.PersonAssignment{
		ID:        uuid.New().String(),
		PersonID:  personID,
		Scope:     scope,
		Hours:     hours,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func NewTestCostAssignment(costID string, scope domain.AssignmentScope) *domain.CostAssignment {
	return &domain.CostAssignment{
		ID:        uuid.New().String(),
		CostID:    costID,
		Scope:     scope,
		CreatedAt: time.Now().UTC(),
	}
}
