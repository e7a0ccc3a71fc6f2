package expense

import (
	"context"
	"io"
	"time"

	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"github.com/bernardmuller/expense-tracker-sub000/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldCategoryID  = "category_id"
	fieldDescription = "description"
	fieldAmountCents = "amount_cents"
	fieldDate        = "date"
	fieldReceiptKey  = "receipt_key"
)

// receiptURLTTL bounds how long a presigned receipt link stays valid.
const receiptURLTTL = 15 * time.Minute

type Service interface {
	Create(ctx context.Context, userID, budgetID string, req domain.CreateExpenseRequest) (*domain.Expense, error)
	List(ctx context.Context, userID, budgetID string) ([]domain.Expense, error)
	Get(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	Update(ctx context.Context, userID, expenseID string, req domain.UpdateExpenseRequest) (*domain.Expense, error)
	Delete(ctx context.Context, userID, expenseID string) error
	AttachReceipt(ctx context.Context, userID, expenseID, filename string, r io.Reader) (*domain.Expense, error)
	ReceiptURL(ctx context.Context, userID, expenseID string) (string, error)
}

type expenseStore interface {
	Put(ctx context.Context, e *domain.Expense) error
	Get(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListByBudget(ctx context.Context, budgetID string) ([]domain.Expense, error)
	Update(ctx context.Context, expenseID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, expenseID string) error
}

type budgetStore interface {
	Get(ctx context.Context, budgetID string) (*domain.Budget, error)
}

type categoryStore interface {
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type contentTypeFunc func(filename string) string

type service struct {
	repo         expenseStore
	budgetRepo   budgetStore
	categoryRepo categoryStore
	receipts     objectStore
	contentType  contentTypeFunc
}

type ServiceDeps struct {
	ExpenseRepo  expenseStore
	BudgetRepo   budgetStore
	CategoryRepo categoryStore
	Receipts     objectStore
	ContentType  contentTypeFunc
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:         deps.ExpenseRepo,
		budgetRepo:   deps.BudgetRepo,
		categoryRepo: deps.CategoryRepo,
		receipts:     deps.Receipts,
		contentType:  deps.ContentType,
	}
}

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

func (s *service) Create(ctx context.Context, userID, budgetID string, req domain.CreateExpenseRequest) (*domain.Expense, error) {
	if err := s.requireBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	c, err := s.categoryRepo.Get(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if c.BudgetID != budgetID {
		return nil, domain.Wrap(domain.ErrBadRequest, "category %s not in budget %s", req.CategoryID, budgetID)
	}
	now := time.Now().UTC()
	e := &domain.Expense{
		ExpenseID:   id.New(),
		BudgetID:    budgetID,
		CategoryID:  req.CategoryID,
		UserID:      userID,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Date:        req.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) List(ctx context.Context, userID, budgetID string) ([]domain.Expense, error) {
	if err := s.requireBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	return s.repo.ListByBudget(ctx, budgetID)
}

func (s *service) Get(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	e, err := s.repo.Get(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if e.UserID != userID {
		return nil, domain.Wrap(domain.ErrForbidden, "expense %s", expenseID)
	}
	return e, nil
}

func (s *service) Update(ctx context.Context, userID, expenseID string, req domain.UpdateExpenseRequest) (*domain.Expense, error) {
	e, err := s.Get(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.CategoryID != nil {
		c, err := s.categoryRepo.Get(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if c.BudgetID != e.BudgetID {
			return nil, domain.Wrap(domain.ErrBadRequest, "category %s not in budget %s", *req.CategoryID, e.BudgetID)
		}
		updates[fieldCategoryID] = *req.CategoryID
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.AmountCents != nil {
		updates[fieldAmountCents] = *req.AmountCents
	}
	if req.Date != nil {
		updates[fieldDate] = *req.Date
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, expenseID, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, expenseID)
}

func (s *service) Delete(ctx context.Context, userID, expenseID string) error {
	e, err := s.Get(ctx, userID, expenseID)
	if err != nil {
		return err
	}
	if e.ReceiptKey != "" {
		if err := s.receipts.Delete(ctx, e.ReceiptKey); err != nil {
			return err
		}
	}
	return s.repo.HardDelete(ctx, expenseID)
}

// AttachReceipt uploads a receipt under a key derived from the expense id and
// records the key on the expense row. Re-attaching replaces the object.
func (s *service) AttachReceipt(ctx context.Context, userID, expenseID, filename string, r io.Reader) (*domain.Expense, error) {
	e, err := s.Get(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	key := "receipts/" + e.ExpenseID + "/" + filename
	if _, err := s.receipts.Upload(ctx, key, r, s.contentType(filename)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, expenseID, map[string]interface{}{fieldReceiptKey: key}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, expenseID)
}

func (s *service) ReceiptURL(ctx context.Context, userID, expenseID string) (string, error) {
	e, err := s.Get(ctx, userID, expenseID)
	if err != nil {
		return "", err
	}
	if e.ReceiptKey == "" {
		return "", domain.Wrap(domain.ErrEntityNotFound, "no receipt on expense %s", expenseID)
	}
	return s.receipts.PresignedURL(ctx, e.ReceiptKey, receiptURLTTL)
}
