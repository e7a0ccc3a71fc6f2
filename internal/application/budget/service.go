package budget

import (
	"context"

	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"github.com/bernardmuller/expense-tracker-sub000/internal/pkg/id"
	"time"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName        = "name"
	fieldAmountCents = "amount_cents"
	fieldStartDate   = "start_date"
	fieldEndDate     = "end_date"
	fieldActive      = "active"
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateBudgetRequest) (*domain.Budget, error)
	List(ctx context.Context, userID string) ([]domain.Budget, error)
	Get(ctx context.Context, userID, budgetID string) (*domain.Budget, error)
	Update(ctx context.Context, userID, budgetID string, req domain.UpdateBudgetRequest) (*domain.Budget, error)
	Archive(ctx context.Context, userID, budgetID string) error
}

type budgetStore interface {
	Put(ctx context.Context, b *domain.Budget) error
	Get(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Budget, error)
	Update(ctx context.Context, budgetID string, updates map[string]interface{}) error
	Archive(ctx context.Context, budgetID string) error
}

type service struct {
	repo budgetStore
}

func NewService(repo budgetStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateBudgetRequest) (*domain.Budget, error) {
	now := time.Now().UTC()
	b := &domain.Budget{
		BudgetID:    id.New(),
		UserID:      userID,
		Name:        req.Name,
		AmountCents: req.AmountCents,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Budget, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	b, err := s.repo.Get(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, domain.Wrap(domain.ErrForbidden, "budget %s", budgetID)
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, userID, budgetID string, req domain.UpdateBudgetRequest) (*domain.Budget, error) {
	if _, err := s.Get(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.AmountCents != nil {
		updates[fieldAmountCents] = *req.AmountCents
	}
	if req.StartDate != nil {
		updates[fieldStartDate] = *req.StartDate
	}
	if req.EndDate != nil {
		updates[fieldEndDate] = *req.EndDate
	}
	if req.Active != nil {
		updates[fieldActive] = *req.Active
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, budgetID, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, budgetID)
}

func (s *service) Archive(ctx context.Context, userID, budgetID string) error {
	if _, err := s.Get(ctx, userID, budgetID); err != nil {
		return err
	}
	return s.repo.Archive(ctx, budgetID)
}
