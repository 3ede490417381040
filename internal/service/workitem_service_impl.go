package service

import (
	"context"
	"time"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/repository"
	"github.com/google/uuid"
)

type workItemService struct {
	workItems repository.WorkItemRepo
	epics     repository.EpicRepo
	sprints   repository.SprintRepo
}

func NewWorkItemService(workItems repository.WorkItemRepo, epics repository.EpicRepo, sprints repository.SprintRepo) WorkItemService {
	return &workItemService{workItems: workItems, epics: epics, sprints: sprints}
}

func (s *workItemService) Create(ctx context.Context, w *domain.WorkItem) error {
	if w.Title == "" {
		return validationf("work item title is required")
	}
	if w.ProjectID == "" {
		return validationf("work item requires a project id")
	}
	if w.EpicID != nil && *w.EpicID != "" {
		if _, err := s.epics.GetByID(ctx, *w.EpicID); err != nil {
			return notFound(err, "epic "+*w.EpicID)
		}
	}
	if w.SprintID != nil && *w.SprintID != "" {
		if _, err := s.sprints.GetByID(ctx, *w.SprintID); err != nil {
			return notFound(err, "sprint "+*w.SprintID)
		}
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.Status == "" {
		w.Status = domain.WorkItemTodo
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	return s.workItems.Create(ctx, w)
}

func (s *workItemService) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	w, err := s.workItems.GetByID(ctx, id)
	return w, notFound(err, "work item "+id)
}

func (s *workItemService) ListByProject(ctx context.Context, projectID string) ([]*domain.WorkItem, error) {
	return s.workItems.ListByProject(ctx, projectID)
}

func (s *workItemService) ListByEpic(ctx context.Context, epicID string) ([]*domain.WorkItem, error) {
	return s.workItems.ListByEpic(ctx, epicID)
}

func (s *workItemService) MoveToSprint(ctx context.Context, id string, sprintID *string) error {
	w, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sprintID != nil && *sprintID != "" {
		if _, err := s.sprints.GetByID(ctx, *sprintID); err != nil {
			return notFound(err, "sprint "+*sprintID)
		}
	}
	w.SprintID = sprintID
	w.UpdatedAt = time.Now().UTC()
	return s.workItems.Update(ctx, w)
}

func (s *workItemService) MarkDone(ctx context.Context, id string) error {
	w, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	w.Status = domain.WorkItemDone
	w.UpdatedAt = time.Now().UTC()
	return s.workItems.Update(ctx, w)
}

func (s *workItemService) Update(ctx context.Context, w *domain.WorkItem) error {
	w.UpdatedAt = time.Now().UTC()
	return notFound(s.workItems.Update(ctx, w), "work item "+w.ID)
}

func (s *workItemService) Delete(ctx context.Context, id string) error {
	return notFound(s.workItems.Delete(ctx, id), "work item "+id)
}
