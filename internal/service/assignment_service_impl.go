package service

import (
	"context"
	"errors"
	"time"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/repository"
	"github.com/google/uuid"
)

type assignmentService struct {
	personAsgs repository.PersonAssignmentRepo
	costAsgs   repository.CostAssignmentRepo
	persons    repository.PersonRepo
	costs      repository.CostRepo
}

func NewAssignmentService(
	personAsgs repository.PersonAssignmentRepo,
	costAsgs repository.CostAssignmentRepo,
	persons repository.PersonRepo,
	costs repository.CostRepo,
) AssignmentService {
	return &assignmentService{
		personAsgs: personAsgs,
		costAsgs:   costAsgs,
		persons:    persons,
		costs:      costs,
	}
}

func (s *assignmentService) AssignHours(ctx context.Context, personID string, scope domain.AssignmentScope, hours float64, description string) (*domain.PersonAssignment, error) {
	if hours <= 0 {
		return nil, validationf("assigned hours must be positive (got %g)", hours)
	}
	if err := scope.Validate(); err != nil {
		return nil, validationf("%v", err)
	}
	if _, err := s.persons.GetByID(ctx, personID); err != nil {
		return nil, notFound(err, "person "+personID)
	}

	// A (person, scope) pair holds at most one assignment; assigning to an
	// existing pair increments it.
	existing, err := s.personAsgs.FindByPersonAndScope(ctx, personID, scope)
	if err == nil {
		existing.Hours += hours
		if description != "" {
			existing.Description = appendNote(existing.Description, description)
		}
		existing.UpdatedAt = time.Now().UTC()
		if err := s.personAsgs.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	a := &domain.PersonAssignment{
		ID:          uuid.New().String(),
		PersonID:    personID,
		Scope:       scope,
		Hours:       hours,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.Validate(); err != nil {
		return nil, validationf("%v", err)
	}
	if err := s.personAsgs.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateHours sets an assignment's hours. Setting zero deletes the
// assignment: drained allocations are removed, never retained.
func (s *assignmentService) UpdateHours(ctx context.Context, assignmentID string, hours float64) error {
	if hours < 0 {
		return validationf("hours must not be negative (got %g)", hours)
	}
	a, err := s.personAsgs.GetByID(ctx, assignmentID)
	if err != nil {
		return notFound(err, "person assignment "+assignmentID)
	}
	if hours == 0 {
		return s.personAsgs.Delete(ctx, a.ID)
	}
	a.Hours = hours
	a.UpdatedAt = time.Now().UTC()
	return s.personAsgs.Update(ctx, a)
}

func (s *assignmentService) RemoveHours(ctx context.Context, assignmentID string) error {
	return notFound(s.personAsgs.Delete(ctx, assignmentID), "person assignment "+assignmentID)
}

func (s *assignmentService) ListHours(ctx context.Context, scope domain.AssignmentScope) ([]*domain.PersonAssignment, error) {
	if err := scope.Validate(); err != nil {
		return nil, validationf("%v", err)
	}
	return s.personAsgs.ListByScope(ctx, scope)
}

func (s *assignmentService) AssignCost(ctx context.Context, costID string, scope domain.AssignmentScope) (*domain.CostAssignment, error) {
	if err := scope.Validate(); err != nil {
		return nil, validationf("%v", err)
	}
	if _, err := s.costs.GetByID(ctx, costID); err != nil {
		return nil, notFound(err, "cost "+costID)
	}
	a := &domain.CostAssignment{
		ID:        uuid.New().String(),
		CostID:    costID,
		Scope:     scope,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.costAsgs.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) RemoveCost(ctx context.Context, costAssignmentID string) error {
	return notFound(s.costAsgs.Delete(ctx, costAssignmentID), "cost assignment "+costAssignmentID)
}

// appendNote joins provenance notes with a semicolon, skipping empty parts.
func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	if note == "" {
		return existing
	}
	return existing + "; " + note
}
