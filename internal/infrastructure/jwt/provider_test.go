package jwtinfra

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, accessExpiry, refreshExpiry time.Duration) *Provider {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewProviderFromKeys(key, accessExpiry, refreshExpiry)
}

func TestVerificationToken_RoundTrip(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute, 24*time.Hour)

	tok, err := p.GenerateVerificationToken("user-1", "ver-1")
	require.NoError(t, err)

	claims, err := p.DecodeVerificationToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID)
	assert.Equal(t, "ver-1", claims.VerificationID)
}

func TestVerificationToken_PendingSubject(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute, 24*time.Hour)

	tok, err := p.GenerateVerificationToken(domain.PendingSubjectID, "ver-2")
	require.NoError(t, err)

	claims, err := p.DecodeVerificationToken(tok)
	require.NoError(t, err)
	assert.Equal(t, domain.PendingSubjectID, claims.SubjectID)
}

func TestDecodeVerificationToken_Tampered(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute, 24*time.Hour)
	other := newTestProvider(t, 15*time.Minute, 24*time.Hour)

	// Token signed by a different key must fail closed.
	tok, err := other.GenerateVerificationToken("user-1", "ver-1")
	require.NoError(t, err)

	_, err = p.DecodeVerificationToken(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidVerificationToken))
}

func TestDecodeVerificationToken_Garbage(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute, 24*time.Hour)

	_, err := p.DecodeVerificationToken("not.a.token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidVerificationToken))
}

func TestDecodeVerificationToken_WrongPurpose(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute, 24*time.Hour)

	access, err := p.GenerateAccessToken("user-1", "a@b.com", "A")
	require.NoError(t, err)

	_, err = p.DecodeVerificationToken(access)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidVerificationToken))
}

func TestAccessToken_RoundTrip(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute, 24*time.Hour)

	tok, err := p.GenerateAccessToken("user-1", "a@b.com", "Alice")
	require.NoError(t, err)

	claims, err := p.DecodeAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
}

func TestDecodeAccessToken_RejectsRefreshToken(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute, 24*time.Hour)

	refresh, err := p.GenerateRefreshToken("user-1", "a@b.com", "Alice")
	require.NoError(t, err)

	_, err = p.DecodeAccessToken(refresh)
	require.Error(t, err)
}

func TestDecodeRefreshToken_Expired(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute, -time.Minute)

	tok, err := p.GenerateRefreshToken("user-1", "a@b.com", "Alice")
	require.NoError(t, err)

	_, err = p.DecodeRefreshToken(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExpiredRefreshToken))
	assert.False(t, errors.Is(err, domain.ErrRefreshTokenDecode))
}

func TestDecodeRefreshToken_Malformed(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute, 24*time.Hour)

	_, err := p.DecodeRefreshToken("garbage")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRefreshTokenDecode))
}

func TestDecodeRefreshToken_RejectsAccessToken(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute, 24*time.Hour)

	access, err := p.GenerateAccessToken("user-1", "a@b.com", "Alice")
	require.NoError(t, err)

	_, err = p.DecodeRefreshToken(access)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRefreshTokenDecode))
}
