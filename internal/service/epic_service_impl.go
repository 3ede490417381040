package service

import (
	"context"
	"time"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/repository"
	"github.com/google/uuid"
)

type epicService struct {
	epics repository.EpicRepo
}

func NewEpicService(epics repository.EpicRepo) EpicService {
	return &epicService{epics: epics}
}

func (s *epicService) Create(ctx context.Context, e *domain.Epic) error {
	if e.Title == "" {
		return validationf("epic title is required")
	}
	if e.ProjectID == "" {
		return validationf("epic requires a project id")
	}
	if !e.EndDate.After(e.StartDate) {
		return validationf("epic end date must be after start date")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.epics.Create(ctx, e)
}

func (s *epicService) GetByID(ctx context.Context, id string) (*domain.Epic, error) {
	e, err := s.epics.GetByID(ctx, id)
	return e, notFound(err, "epic "+id)
}

func (s *epicService) ListByProject(ctx context.Context, projectID string) ([]*domain.Epic, error) {
	return s.epics.ListByProject(ctx, projectID)
}

func (s *epicService) Update(ctx context.Context, e *domain.Epic) error {
	if !e.EndDate.After(e.StartDate) {
		return validationf("epic end date must be after start date")
	}
	e.UpdatedAt = time.Now().UTC()
	return notFound(s.epics.Update(ctx, e), "epic "+e.ID)
}

func (s *epicService) Delete(ctx context.Context, id string) error {
	return notFound(s.epics.Delete(ctx, id), "epic "+id)
}
