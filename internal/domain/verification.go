package domain

// Verification is a single-use OTP challenge record.
// PK: verification_id. ExpiresAt is a Unix timestamp used as DynamoDB TTL,
// so expired records are reaped by the table without an explicit delete.
//
// Subject identifies what is being verified: an existing user id for login,
// or a JSON-encoded {email, name} payload for a pending registration.
// SecretHash is the bcrypt hash of the zero-padded 6-digit OTP; the plain
// code is never stored.
type Verification struct {
	VerificationID string `json:"id" dynamodbav:"verification_id"`
	Subject        string `json:"subject" dynamodbav:"subject"`
	SecretHash     string `json:"-" dynamodbav:"secret_hash"`
	ExpiresAt      int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// PendingRegistration is the payload carried in Verification.Subject while
// no user exists yet.
type PendingRegistration struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PendingSubjectID is the subject id embedded in verification-session tokens
// minted for registration flows, where no user id exists yet.
const PendingSubjectID = "pending"
