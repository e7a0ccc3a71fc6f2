package jwtinfra

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bernardmuller/expense-tracker-sub000/internal/config"
	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. Every token carries one and decoding enforces it, so an
// access token can never pass as a refresh or verification-session token.
const (
	PurposeVerification = "verification"
	PurposeAccess       = "access"
	PurposeRefresh      = "refresh"
)

// verificationTokenExpiry bounds the verification-session token itself.
// The Verification record carries its own independent expiry; both are checked.
const verificationTokenExpiry = 10 * time.Minute

// VerificationClaims is the payload of a verification-session token.
// SubjectID is an existing user id for login flows and the literal
// "pending" for registration flows.
type VerificationClaims struct {
	SubjectID      string `json:"subject_id"`
	VerificationID string `json:"verification_id"`
	Purpose        string `json:"purpose"`
	jwt.RegisteredClaims
}

// UserClaims is the payload of access and refresh tokens.
type UserClaims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Provider signs and verifies RS256 JWTs for the three token purposes.
type Provider struct {
	privateKey    *rsa.PrivateKey
	publicKey     *rsa.PublicKey
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	privBytes, err := os.ReadFile(cfg.JWTPrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privBytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	pubBytes, err := os.ReadFile(cfg.JWTPublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return &Provider{
		privateKey:    privKey,
		publicKey:     pubKey,
		accessExpiry:  time.Duration(cfg.AccessTokenExpiryMin) * time.Minute,
		refreshExpiry: time.Duration(cfg.RefreshTokenExpiryDays) * 24 * time.Hour,
	}, nil
}

// NewProviderFromKeys builds a provider from in-memory keys. Used by tests.
func NewProviderFromKeys(priv *rsa.PrivateKey, accessExpiry, refreshExpiry time.Duration) *Provider {
	return &Provider{
		privateKey:    priv,
		publicKey:     &priv.PublicKey,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// GenerateVerificationToken mints the short-lived token a client holds
// between requesting and completing an OTP challenge.
func (p *Provider) GenerateVerificationToken(subjectID, verificationID string) (string, error) {
	now := time.Now()
	claims := VerificationClaims{
		SubjectID:      subjectID,
		VerificationID: verificationID,
		Purpose:        PurposeVerification,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(verificationTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(p.privateKey)
	if err != nil {
		return "", domain.Wrap(domain.ErrTokenGeneration, "sign verification token")
	}
	return signed, nil
}

// DecodeVerificationToken verifies signature, expiry and purpose.
// An expired token fails with VERIFICATION_EXPIRED; anything else
// malformed fails closed with INVALID_VERIFICATION_TOKEN.
func (p *Provider) DecodeVerificationToken(tokenStr string) (*VerificationClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &VerificationClaims{}, p.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.Wrap(domain.ErrVerificationExpired, "verification token expired")
		}
		return nil, domain.Wrap(domain.ErrInvalidVerificationToken, "parse verification token")
	}
	claims, ok := token.Claims.(*VerificationClaims)
	if !ok || !token.Valid || claims.Purpose != PurposeVerification {
		return nil, domain.Wrap(domain.ErrInvalidVerificationToken, "verification token claims")
	}
	return claims, nil
}

// GenerateAccessToken mints a short-lived bearer token.
func (p *Provider) GenerateAccessToken(userID, email, name string) (string, error) {
	return p.signUserToken(userID, email, name, PurposeAccess, p.accessExpiry)
}

// GenerateRefreshToken mints the long-lived renewal token.
func (p *Provider) GenerateRefreshToken(userID, email, name string) (string, error) {
	return p.signUserToken(userID, email, name, PurposeRefresh, p.refreshExpiry)
}

func (p *Provider) signUserToken(userID, email, name, purpose string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := UserClaims{
		UserID:  userID,
		Email:   email,
		Name:    name,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(p.privateKey)
	if err != nil {
		return "", domain.Wrap(domain.ErrTokenGeneration, "sign %s token", purpose)
	}
	return signed, nil
}

// DecodeAccessToken verifies a bearer access token for the auth middleware.
func (p *Provider) DecodeAccessToken(tokenStr string) (*UserClaims, error) {
	claims, err := p.parseUserToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != PurposeAccess {
		return nil, errors.New("not an access token")
	}
	return claims, nil
}

// DecodeRefreshToken verifies a refresh token. An expired-but-well-formed
// token fails with EXPIRED_REFRESH_TOKEN so callers can prompt a re-login;
// malformed or mispurposed tokens fail with REFRESH_TOKEN_DECODE_FAILED.
func (p *Provider) DecodeRefreshToken(tokenStr string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &UserClaims{}, p.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.Wrap(domain.ErrExpiredRefreshToken, "refresh token expired")
		}
		return nil, domain.Wrap(domain.ErrRefreshTokenDecode, "parse refresh token")
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid || claims.Purpose != PurposeRefresh {
		return nil, domain.Wrap(domain.ErrRefreshTokenDecode, "refresh token claims")
	}
	return claims, nil
}

func (p *Provider) parseUserToken(tokenStr string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &UserClaims{}, p.keyFunc)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (p *Provider) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return p.publicKey, nil
}
