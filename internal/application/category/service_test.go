package category

import (
	"context"
	"errors"
	"testing"

	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCategoryStore struct{ mock.Mock }

func (m *mockCategoryStore) Put(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCategoryStore) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if c, _ := args.Get(0).(*domain.Category); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCategoryStore) ListByBudget(ctx context.Context, budgetID string) ([]domain.Category, error) {
	args := m.Called(ctx, budgetID)
	if cs, _ := args.Get(0).([]domain.Category); cs != nil {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCategoryStore) Update(ctx context.Context, categoryID string, updates map[string]interface{}) error {
	return m.Called(ctx, categoryID, updates).Error(0)
}
func (m *mockCategoryStore) HardDelete(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

type mockBudgetStore struct{ mock.Mock }

func (m *mockBudgetStore) Get(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if b, _ := args.Get(0).(*domain.Budget); b != nil {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreate_RejectsForeignBudget(t *testing.T) {
	repo := &mockCategoryStore{}
	budgets := &mockBudgetStore{}
	budgets.On("Get", mock.Anything, "b1").Return(&domain.Budget{BudgetID: "b1", UserID: "someone-else"}, nil)

	svc := NewService(repo, budgets)
	_, err := svc.Create(context.Background(), "u1", "b1", domain.CreateCategoryRequest{
		Name:           "Groceries",
		AllocatedCents: 50000,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreate_HappyPath(t *testing.T) {
	repo := &mockCategoryStore{}
	budgets := &mockBudgetStore{}
	budgets.On("Get", mock.Anything, "b1").Return(&domain.Budget{BudgetID: "b1", UserID: "u1"}, nil)

	var stored *domain.Category
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Category")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Category) }).
		Return(nil)

	svc := NewService(repo, budgets)
	c, err := svc.Create(context.Background(), "u1", "b1", domain.CreateCategoryRequest{
		Name:           "Groceries",
		AllocatedCents: 50000,
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "b1", c.BudgetID)
	assert.NotEmpty(t, c.CategoryID)
}

func TestDelete_ChecksOwnershipThroughBudget(t *testing.T) {
	repo := &mockCategoryStore{}
	budgets := &mockBudgetStore{}
	repo.On("Get", mock.Anything, "c1").Return(&domain.Category{CategoryID: "c1", BudgetID: "b1"}, nil)
	budgets.On("Get", mock.Anything, "b1").Return(&domain.Budget{BudgetID: "b1", UserID: "u1"}, nil)
	repo.On("HardDelete", mock.Anything, "c1").Return(nil)

	svc := NewService(repo, budgets)
	require.NoError(t, svc.Delete(context.Background(), "u1", "c1"))
	repo.AssertExpectations(t)
}
