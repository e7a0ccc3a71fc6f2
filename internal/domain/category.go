package domain

import "time"

// Category is an allocation envelope inside a budget. Amounts are integer cents.
type Category struct {
	CategoryID     string    `json:"id" dynamodbav:"category_id"`
	BudgetID       string    `json:"budget_id" dynamodbav:"budget_id"`
	Name           string    `json:"name" dynamodbav:"name"`
	AllocatedCents int64     `json:"allocated_cents" dynamodbav:"allocated_cents"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateCategoryRequest struct {
	Name           string `json:"name" validate:"required"`
	AllocatedCents int64  `json:"allocated_cents" validate:"gte=0"`
}

type UpdateCategoryRequest struct {
	Name           *string `json:"name"`
	AllocatedCents *int64  `json:"allocated_cents" validate:"omitempty,gte=0"`
}
