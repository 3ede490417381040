package service

import (
	"context"
	"time"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/repository"
	"github.com/google/uuid"
)

type personService struct {
	persons repository.PersonRepo
}

func NewPersonService(persons repository.PersonRepo) PersonService {
	return &personService{persons: persons}
}

func (s *personService) Create(ctx context.Context, p *domain.Person) error {
	if p.Name == "" {
		return validationf("person name is required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now().UTC()
	return s.persons.Create(ctx, p)
}

func (s *personService) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	p, err := s.persons.GetByID(ctx, id)
	return p, notFound(err, "person "+id)
}

func (s *personService) List(ctx context.Context) ([]*domain.Person, error) {
	return s.persons.List(ctx)
}

func (s *personService) Delete(ctx context.Context, id string) error {
	return notFound(s.persons.Delete(ctx, id), "person "+id)
}

type costService struct {
	costs repository.CostRepo
}

func NewCostService(costs repository.CostRepo) CostService {
	return &costService{costs: costs}
}

func (s *costService) Create(ctx context.Context, c *domain.Cost) error {
	if c.Amount < 0 {
		return validationf("cost amount must not be negative")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC()
	return s.costs.Create(ctx, c)
}

func (s *costService) GetByID(ctx context.Context, id string) (*domain.Cost, error) {
	c, err := s.costs.GetByID(ctx, id)
	return c, notFound(err, "cost "+id)
}

func (s *costService) List(ctx context.Context) ([]*domain.Cost, error) {
	return s.costs.List(ctx)
}

func (s *costService) Delete(ctx context.Context, id string) error {
	return notFound(s.costs.Delete(ctx, id), "cost "+id)
}
