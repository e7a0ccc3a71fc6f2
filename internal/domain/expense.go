package domain

import "time"

// Expense is a logged spend against a budget and category.
// ReceiptKey is the S3 object key of an uploaded receipt, empty when none.
type Expense struct {
	ExpenseID   string    `json:"id" dynamodbav:"expense_id"`
	BudgetID    string    `json:"budget_id" dynamodbav:"budget_id"`
	CategoryID  string    `json:"category_id" dynamodbav:"category_id"`
	UserID      string    `json:"user_id" dynamodbav:"user_id"`
	Description string    `json:"description" dynamodbav:"description"`
	AmountCents int64     `json:"amount_cents" dynamodbav:"amount_cents"`
	Date        string    `json:"date" dynamodbav:"date"` // YYYY-MM-DD
	ReceiptKey  string    `json:"-" dynamodbav:"receipt_key"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateExpenseRequest struct {
	CategoryID  string `json:"category_id" validate:"required"`
	Description string `json:"description" validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required"`
}

type UpdateExpenseRequest struct {
	CategoryID  *string `json:"category_id"`
	Description *string `json:"description"`
	AmountCents *int64  `json:"amount_cents" validate:"omitempty,gt=0"`
	Date        *string `json:"date"`
}
