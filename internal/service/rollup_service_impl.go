package service

import (
	"context"
	"errors"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/repository"
	"github.com/avoronkov/trackdeck/internal/rollup"
)

type rollupService struct {
	loader  *rollup.Loader
	sprints repository.SprintRepo
	prefs   repository.SprintPrefRepo
}

func NewRollupService(loader *rollup.Loader, sprints repository.SprintRepo, prefs repository.SprintPrefRepo) RollupService {
	return &rollupService{loader: loader, sprints: sprints, prefs: prefs}
}

func (s *rollupService) EpicSprintHours(ctx context.Context, projectID string, filter rollup.SprintFilter, basisHoursPerDay float64) ([]rollup.EpicRollupRow, []string, error) {
	snap, err := s.loader.Load(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	return rollup.EpicSprintHours(snap, filter, basisHoursPerDay), snap.Warnings, nil
}

func (s *rollupService) PersonSprintHours(ctx context.Context, projectID string, filter rollup.SprintFilter, basisHoursPerDay float64) ([]rollup.PersonRollupRow, []string, error) {
	snap, err := s.loader.Load(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	return rollup.PersonSprintHours(snap, filter, basisHoursPerDay), snap.Warnings, nil
}

func (s *rollupService) CostRollup(ctx context.Context, projectID string, filter rollup.SprintFilter) ([]rollup.EpicCostRow, []string, error) {
	snap, err := s.loader.Load(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	return rollup.CostRollup(snap, filter), snap.Warnings, nil
}

// DefaultFilter prefers the saved per-project selection; with nothing saved
// it scopes to the project's active sprints.
func (s *rollupService) DefaultFilter(ctx context.Context, projectID string) (rollup.SprintFilter, error) {
	selection, err := s.prefs.Get(ctx, projectID)
	if err == nil {
		return rollup.DecodeFilter(selection), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return rollup.SprintFilter{}, err
	}

	sprints, err := s.sprints.ListByProject(ctx, projectID)
	if err != nil {
		return rollup.SprintFilter{}, err
	}
	var active []string
	for _, sp := range sprints {
		if sp.Status == domain.SprintActive {
			active = append(active, sp.ID)
		}
	}
	return rollup.SelectSprints(active...), nil
}

func (s *rollupService) SaveFilter(ctx context.Context, projectID string, filter rollup.SprintFilter) error {
	return s.prefs.Put(ctx, projectID, filter.Encode())
}
