package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Length is the fixed width of every generated code.
const Length = 6

// Generate returns a random 6-character decimal code, zero-padded.
// A draw of 42 yields "000042".
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Hash derives a salted one-way hash of the code. bcrypt's built-in salt
// blocks precomputation; the code's entropy is inherently low, so this
// bounds rather than eliminates brute force within the validity window.
func Hash(code string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.Wrap(domain.ErrOTPHash, "hash otp")
	}
	return string(h), nil
}

// Compare checks candidate against a stored hash in constant time.
// A clean mismatch returns (false, nil); only hash-format corruption
// returns an error.
func Compare(candidate, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(candidate))
	if err == nil {
		return true, nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, domain.Wrap(domain.ErrOTPCompare, "compare otp")
}
