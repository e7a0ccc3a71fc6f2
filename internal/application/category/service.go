package category

import (
	"context"
	"time"

	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"github.com/bernardmuller/expense-tracker-sub000/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName           = "name"
	fieldAllocatedCents = "allocated_cents"
)

type Service interface {
	Create(ctx context.Context, userID, budgetID string, req domain.CreateCategoryRequest) (*domain.Category, error)
	List(ctx context.Context, userID, budgetID string) ([]domain.Category, error)
	Update(ctx context.Context, userID, categoryID string, req domain.UpdateCategoryRequest) (*domain.Category, error)
	Delete(ctx context.Context, userID, categoryID string) error
}

type categoryStore interface {
	Put(ctx context.Context, c *domain.Category) error
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
	ListByBudget(ctx context.Context, budgetID string) ([]domain.Category, error)
	Update(ctx context.Context, categoryID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, categoryID string) error
}

type budgetStore interface {
	Get(ctx context.Context, budgetID string) (*domain.Budget, error)
}

type service struct {
	repo       categoryStore
	budgetRepo budgetStore
}

func NewService(repo categoryStore, budgetRepo budgetStore) Service {
	return &service{repo: repo, budgetRepo: budgetRepo}
}

// requireBudget checks the budget exists and belongs to the caller.
func (s *service) requireBudget(ctx context.Context, userID, budgetID string) error {
	b, err := s.budgetRepo.Get(ctx, budgetID)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return domain.Wrap(domain.ErrForbidden, "budget %s", budgetID)
	}
	return nil
}

func (s *service) Create(ctx context.Context, userID, budgetID string, req domain.CreateCategoryRequest) (*domain.Category, error) {
	if err := s.requireBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &domain.Category{
		CategoryID:     id.New(),
		BudgetID:       budgetID,
		Name:           req.Name,
		AllocatedCents: req.AllocatedCents,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context, userID, budgetID string) ([]domain.Category, error) {
	if err := s.requireBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	return s.repo.ListByBudget(ctx, budgetID)
}

func (s *service) Update(ctx context.Context, userID, categoryID string, req domain.UpdateCategoryRequest) (*domain.Category, error) {
	c, err := s.repo.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireBudget(ctx, userID, c.BudgetID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.AllocatedCents != nil {
		updates[fieldAllocatedCents] = *req.AllocatedCents
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, categoryID, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, categoryID)
}

func (s *service) Delete(ctx context.Context, userID, categoryID string) error {
	c, err := s.repo.Get(ctx, categoryID)
	if err != nil {
		return err
	}
	if err := s.requireBudget(ctx, userID, c.BudgetID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, categoryID)
}
