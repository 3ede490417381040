package service

import (
	"context"
	"time"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/repository"
	"github.com/google/uuid"
)

type sprintService struct {
	sprints repository.SprintRepo
}

func NewSprintService(sprints repository.SprintRepo) SprintService {
	return &sprintService{sprints: sprints}
}

func (s *sprintService) Create(ctx context.Context, sp *domain.Sprint) error {
	if sp.Name == "" {
		return validationf("sprint name is required")
	}
	if sp.ProjectID == "" {
		return validationf("sprint requires a project id")
	}
	if !sp.EndDate.After(sp.StartDate) {
		return validationf("sprint end date must be after start date")
	}
	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	if sp.Status == "" {
		sp.Status = domain.SprintNotStarted
	}
	now := time.Now().UTC()
	sp.CreatedAt = now
	sp.UpdatedAt = now
	return s.sprints.Create(ctx, sp)
}

func (s *sprintService) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	sp, err := s.sprints.GetByID(ctx, id)
	return sp, notFound(err, "sprint "+id)
}

func (s *sprintService) ListByProject(ctx context.Context, projectID string) ([]*domain.Sprint, error) {
	return s.sprints.ListByProject(ctx, projectID)
}

func (s *sprintService) Update(ctx context.Context, sp *domain.Sprint) error {
	if !sp.EndDate.After(sp.StartDate) {
		return validationf("sprint end date must be after start date")
	}
	sp.UpdatedAt = time.Now().UTC()
	return notFound(s.sprints.Update(ctx, sp), "sprint "+sp.ID)
}

func (s *sprintService) Delete(ctx context.Context, id string) error {
	return notFound(s.sprints.Delete(ctx, id), "sprint "+id)
}
