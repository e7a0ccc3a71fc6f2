package domain

import "time"

// Budget is a spending plan owned by a single user. Amounts are integer cents.
type Budget struct {
	BudgetID    string     `json:"id" dynamodbav:"budget_id"`
	UserID      string     `json:"user_id" dynamodbav:"user_id"`
	Name        string     `json:"name" dynamodbav:"name"`
	AmountCents int64      `json:"amount_cents" dynamodbav:"amount_cents"`
	StartDate   string     `json:"start_date" dynamodbav:"start_date"` // YYYY-MM-DD
	EndDate     string     `json:"end_date" dynamodbav:"end_date"`     // YYYY-MM-DD
	Active      bool       `json:"active" dynamodbav:"active"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty" dynamodbav:"archived_at"`
	CreatedAt   time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateBudgetRequest struct {
	Name        string `json:"name" validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
}

type UpdateBudgetRequest struct {
	Name        *string `json:"name"`
	AmountCents *int64  `json:"amount_cents" validate:"omitempty,gt=0"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Active      *bool   `json:"active"`
}
