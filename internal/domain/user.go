package domain

import "time"

type User struct {
	UserID        string    `json:"id" dynamodbav:"user_id"`
	Name          string    `json:"name" dynamodbav:"name"`
	Email         string    `json:"email" dynamodbav:"email"`
	EmailVerified bool      `json:"email_verified" dynamodbav:"email_verified"`
	Onboarded     bool      `json:"onboarded" dynamodbav:"onboarded"`
	Phone         *string   `json:"phone,omitempty" dynamodbav:"phone"`
	Enable        bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt     time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Onboarded *bool   `json:"onboarded"`
}
