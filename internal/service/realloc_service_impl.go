package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avoronkov/trackdeck/internal/db"
	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/repository"
	"github.com/google/uuid"
)

type reallocService struct {
	workItems  repository.WorkItemRepo
	personAsgs repository.PersonAssignmentRepo
	uow        db.UnitOfWork

	// mu guards locks; each (personID, epicID) source key gets its own
	// mutex so concurrent reallocations against the same source serialize
	// instead of racing on the remaining hours.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewReallocationService(workItems repository.WorkItemRepo, personAsgs repository.PersonAssignmentRepo, uow db.UnitOfWork) ReallocationService {
	return &reallocService{
		workItems:  workItems,
		personAsgs: personAsgs,
		uow:        uow,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (s *reallocService) sourceLock(personID, epicID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := personID + "|" + epicID
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// Preview reports what Reallocate would do without applying it, so callers
// can warn before confirming a request that exceeds the source's hours.
func (s *reallocService) Preview(ctx context.Context, epicID, personID, targetWorkItemID string, hours float64) (*ReallocationPreview, error) {
	if err := s.validateRequest(ctx, epicID, targetWorkItemID, hours, s.workItems); err != nil {
		return nil, err
	}
	source, err := s.personAsgs.FindByPersonAndScope(ctx, personID, domain.EpicScope(epicID))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("epic-level assignment for person %s on epic %s", personID, epicID))
	}
	return &ReallocationPreview{
		SourceAssignmentID: source.ID,
		SourceHours:        source.Hours,
		RequestedHours:     hours,
		Overdrawn:          hours > source.Hours,
	}, nil
}

// Reallocate moves hours from the (personID, epicID) epic-level assignment
// onto the target work item. The target increment and the source decrement
// apply as one transaction; a conflicting concurrent write to the source
// triggers exactly one automatic retry against a freshly read source, and a
// second conflict surfaces to the caller.
func (s *reallocService) Reallocate(ctx context.Context, epicID, personID, targetWorkItemID string, hours float64) (*ReallocationResult, error) {
	if hours <= 0 {
		return nil, validationf("reallocation hours must be positive (got %g)", hours)
	}

	lock := s.sourceLock(personID, epicID)
	lock.Lock()
	defer lock.Unlock()

	result, err := s.reallocateOnce(ctx, epicID, personID, targetWorkItemID, hours)
	if errors.Is(err, ErrConflict) {
		result, err = s.reallocateOnce(ctx, epicID, personID, targetWorkItemID, hours)
	}
	return result, err
}

func (s *reallocService) reallocateOnce(ctx context.Context, epicID, personID, targetWorkItemID string, hours float64) (*ReallocationResult, error) {
	var result *ReallocationResult

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWorkItemRepo(tx)
		txAsgs := repository.NewSQLitePersonAssignmentRepo(tx)

		if err := s.validateRequest(ctx, epicID, targetWorkItemID, hours, txItems); err != nil {
			return err
		}

		source, err := txAsgs.FindByPersonAndScope(ctx, personID, domain.EpicScope(epicID))
		if err != nil {
			return notFound(err, fmt.Sprintf("epic-level assignment for person %s on epic %s", personID, epicID))
		}

		now := time.Now().UTC()
		note := fmt.Sprintf("moved %gh from epic allocation on %s", hours, now.Format("2006-01-02"))

		// Target first: increment an existing work-item assignment or
		// create one. A failure after this point rolls the whole
		// transaction back, so no half-applied state is observable.
		targetScope := domain.WorkItemScope(targetWorkItemID)
		target, err := txAsgs.FindByPersonAndScope(ctx, personID, targetScope)
		switch {
		case err == nil:
			target.Hours += hours
			target.Description = appendNote(target.Description, note)
			target.UpdatedAt = now
			if err := txAsgs.Update(ctx, target); err != nil {
				return err
			}
		case errors.Is(err, repository.ErrNotFound):
			target = &domain.PersonAssignment{
				ID:          uuid.New().String(),
				PersonID:    personID,
				Scope:       targetScope,
				Hours:       hours,
				Description: note,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := txAsgs.Create(ctx, target); err != nil {
				return err
			}
		default:
			return err
		}

		// Over-allocation clamps the source to zero rather than failing;
		// the caller was warned via Preview before confirming.
		newRemaining := source.Hours - hours
		overdrawn := newRemaining < 0
		if overdrawn {
			newRemaining = 0
		}

		// Hours double as the optimistic concurrency token: if another
		// writer changed the source since our read, the conditional
		// update misses and the transaction rolls back with ErrConflict.
		ok, err := txAsgs.UpdateHoursIfMatch(ctx, source.ID, source.Hours, newRemaining)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("source assignment %s changed concurrently: %w", source.ID, ErrConflict)
		}
		sourceDeleted := newRemaining == 0
		if sourceDeleted {
			if err := txAsgs.Delete(ctx, source.ID); err != nil {
				return err
			}
		}

		result = &ReallocationResult{
			MovedHours:         hours,
			SourceRemaining:    newRemaining,
			SourceDeleted:      sourceDeleted,
			TargetAssignmentID: target.ID,
			Overdrawn:          overdrawn,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// validateRequest checks the target work item against the source epic.
func (s *reallocService) validateRequest(ctx context.Context, epicID, targetWorkItemID string, hours float64, items repository.WorkItemRepo) error {
	if hours <= 0 {
		return validationf("reallocation hours must be positive (got %g)", hours)
	}
	item, err := items.GetByID(ctx, targetWorkItemID)
	if err != nil {
		return notFound(err, "work item "+targetWorkItemID)
	}
	if !item.InEpic(epicID) {
		return validationf("work item %s does not belong to epic %s", targetWorkItemID, epicID)
	}
	return nil
}
