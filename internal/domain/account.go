package domain

import "time"

// Account holds the credential record for the legacy password flow.
// One per user; the OTP flows never create or read one.
type Account struct {
	AccountID    string    `json:"id" dynamodbav:"account_id"`
	UserID       string    `json:"user_id" dynamodbav:"user_id"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" dynamodbav:"updated_at"`
}
