package user

import (
	"context"

	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName      = "name"
	fieldPhone     = "phone"
	fieldOnboarded = "onboarded"
)

type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	Deactivate(ctx context.Context, userID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, userID string) error
}

type service struct {
	repo userStore
}

func NewService(repo userStore) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Onboarded != nil {
		updates[fieldOnboarded] = *req.Onboarded
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, userID)
}

// Deactivate disables the user row instead of deleting it, so historical
// budgets and expenses stay attributable.
func (s *service) Deactivate(ctx context.Context, userID string) error {
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, userID)
}
