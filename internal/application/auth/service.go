package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	jwtinfra "github.com/bernardmuller/expense-tracker-sub000/internal/infrastructure/jwt"
	"github.com/bernardmuller/expense-tracker-sub000/internal/pkg/id"
	"github.com/bernardmuller/expense-tracker-sub000/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// verificationWindow bounds how long a stored OTP challenge stays valid.
const verificationWindow = 10 * time.Minute

// TokenPair is the result of a successful authentication.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// VerificationStore persists single-use OTP challenge records.
type VerificationStore interface {
	Put(ctx context.Context, v *domain.Verification) error
	GetByID(ctx context.Context, verificationID string) (*domain.Verification, error)
}

// UserStore is the narrow read/create contract the flows need from the
// user directory.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
}

// AccountStore persists credential accounts for the legacy password flows.
type AccountStore interface {
	Put(ctx context.Context, a *domain.Account) error
	GetByUser(ctx context.Context, userID string) (*domain.Account, error)
}

// TokenCodec signs and decodes the three token purposes.
type TokenCodec interface {
	GenerateVerificationToken(subjectID, verificationID string) (string, error)
	DecodeVerificationToken(token string) (*jwtinfra.VerificationClaims, error)
	GenerateAccessToken(userID, email, name string) (string, error)
	GenerateRefreshToken(userID, email, name string) (string, error)
	DecodeRefreshToken(token string) (*jwtinfra.UserClaims, error)
}

// Mailer dispatches the OTP out-of-band.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// SMSSender is the optional second dispatch channel.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type Service interface {
	LoginRequest(ctx context.Context, email string) (verificationToken string, err error)
	LoginAttempt(ctx context.Context, verificationToken, code string) (*TokenPair, error)
	RegisterRequest(ctx context.Context, name, email string) (verificationToken string, err error)
	RegisterVerify(ctx context.Context, verificationToken, code string) (*domain.User, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
	PasswordLogin(ctx context.Context, email, password string) (*TokenPair, error)
	PasswordRegister(ctx context.Context, name, email, password string) (*TokenPair, error)
}

// ServiceDeps bundles the collaborators the orchestrator composes.
type ServiceDeps struct {
	VerificationRepo VerificationStore
	UserRepo         UserStore
	AccountRepo      AccountStore
	Codec            TokenCodec
	Mailer           Mailer
	SMSSender        SMSSender
}

type service struct {
	verificationRepo VerificationStore
	userRepo         UserStore
	accountRepo      AccountStore
	codec            TokenCodec
	mailer           Mailer
	smsSender        SMSSender
}

func NewService(deps ServiceDeps) Service {
	return &service{
		verificationRepo: deps.VerificationRepo,
		userRepo:         deps.UserRepo,
		accountRepo:      deps.AccountRepo,
		codec:            deps.Codec,
		mailer:           deps.Mailer,
		smsSender:        deps.SMSSender,
	}
}

// LoginRequest starts a passwordless login: generates an OTP challenge for an
// existing user, stores its hash, and mails the code. The returned
// verification-session token is the handle the client presents to LoginAttempt.
func (s *service) LoginRequest(ctx context.Context, email string) (string, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		slog.Info("login request for unknown email", "email", email)
		return "", err
	}

	code, err := otp.Generate()
	if err != nil {
		return "", err
	}
	hash, err := otp.Hash(code)
	if err != nil {
		slog.Error("otp hash failed", "email", email, "err", err)
		return "", err
	}

	v := &domain.Verification{
		VerificationID: id.New(),
		Subject:        u.UserID,
		SecretHash:     hash,
		ExpiresAt:      time.Now().Add(verificationWindow).Unix(),
	}
	if err := s.verificationRepo.Put(ctx, v); err != nil {
		slog.Error("verification create failed", "email", email, "err", err)
		return "", err
	}

	token, err := s.codec.GenerateVerificationToken(u.UserID, v.VerificationID)
	if err != nil {
		slog.Error("verification token mint failed", "email", email, "err", err)
		return "", err
	}

	if err := s.mailer.SendEmail(u.Email, "Your login code", "Your one-time code is "+code+". It expires in 10 minutes."); err != nil {
		slog.Error("otp email dispatch failed", "email", email, "err", err)
		return "", err
	}
	// Best-effort second channel; never alters the outcome of the flow.
	if u.Phone != nil && s.smsSender != nil {
		if err := s.smsSender.SendSMS(ctx, *u.Phone, "Your one-time code is "+code); err != nil {
			slog.Warn("otp sms dispatch failed", "user_id", u.UserID, "err", err)
		}
	}
	return token, nil
}

// LoginAttempt completes a login. Expiry of the Verification record is
// checked against a single clock read before the secret is compared, so an
// expired challenge never reaches the OTP comparison.
func (s *service) LoginAttempt(ctx context.Context, verificationToken, code string) (*TokenPair, error) {
	claims, err := s.codec.DecodeVerificationToken(verificationToken)
	if err != nil {
		slog.Info("login attempt with undecodable token", "err", err)
		return nil, err
	}

	v, err := s.verificationRepo.GetByID(ctx, claims.VerificationID)
	if err != nil {
		slog.Info("login attempt for missing verification", "verification_id", claims.VerificationID)
		return nil, err
	}
	if time.Now().Unix() > v.ExpiresAt {
		return nil, domain.Wrap(domain.ErrVerificationExpired, "verification %s", v.VerificationID)
	}

	ok, err := otp.Compare(code, v.SecretHash)
	if err != nil {
		slog.Error("otp compare failed", "verification_id", v.VerificationID, "err", err)
		return nil, err
	}
	if !ok {
		slog.Info("otp mismatch", "verification_id", v.VerificationID)
		return nil, domain.Wrap(domain.ErrInvalidOTP, "verification %s", v.VerificationID)
	}

	u, err := s.userRepo.Get(ctx, claims.SubjectID)
	if err != nil {
		return nil, err
	}
	return s.mintPair(u)
}

// RegisterRequest starts a passwordless registration. The subject lookup is
// inverted relative to LoginRequest: an existing user with the email is the
// failure. No user row exists yet, so the pending {email, name} payload rides
// inside the Verification record itself.
func (s *service) RegisterRequest(ctx context.Context, name, email string) (string, error) {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		slog.Info("register request for taken email", "email", email)
		return "", domain.Wrap(domain.ErrEmailAlreadyInUse, "email %s", email)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	subject, err := json.Marshal(domain.PendingRegistration{Email: email, Name: name})
	if err != nil {
		return "", err
	}

	code, err := otp.Generate()
	if err != nil {
		return "", err
	}
	hash, err := otp.Hash(code)
	if err != nil {
		slog.Error("otp hash failed", "email", email, "err", err)
		return "", err
	}

	v := &domain.Verification{
		VerificationID: id.New(),
		Subject:        string(subject),
		SecretHash:     hash,
		ExpiresAt:      time.Now().Add(verificationWindow).Unix(),
	}
	if err := s.verificationRepo.Put(ctx, v); err != nil {
		slog.Error("verification create failed", "email", email, "err", err)
		return "", err
	}

	token, err := s.codec.GenerateVerificationToken(domain.PendingSubjectID, v.VerificationID)
	if err != nil {
		slog.Error("verification token mint failed", "email", email, "err", err)
		return "", err
	}

	if err := s.mailer.SendEmail(email, "Confirm your registration", "Your one-time code is "+code+". It expires in 10 minutes."); err != nil {
		slog.Error("otp email dispatch failed", "email", email, "err", err)
		return "", err
	}
	return token, nil
}

// RegisterVerify completes a registration: on OTP match it materializes the
// pending payload into a verified user. No tokens are minted here; the client
// performs a normal login afterwards.
func (s *service) RegisterVerify(ctx context.Context, verificationToken, code string) (*domain.User, error) {
	claims, err := s.codec.DecodeVerificationToken(verificationToken)
	if err != nil {
		slog.Info("register verify with undecodable token", "err", err)
		return nil, err
	}

	v, err := s.verificationRepo.GetByID(ctx, claims.VerificationID)
	if err != nil {
		slog.Info("register verify for missing verification", "verification_id", claims.VerificationID)
		return nil, err
	}
	if time.Now().Unix() > v.ExpiresAt {
		return nil, domain.Wrap(domain.ErrVerificationExpired, "verification %s", v.VerificationID)
	}

	ok, err := otp.Compare(code, v.SecretHash)
	if err != nil {
		slog.Error("otp compare failed", "verification_id", v.VerificationID, "err", err)
		return nil, err
	}
	if !ok {
		slog.Info("otp mismatch", "verification_id", v.VerificationID)
		return nil, domain.Wrap(domain.ErrInvalidOTP, "verification %s", v.VerificationID)
	}

	var pending domain.PendingRegistration
	if err := json.Unmarshal([]byte(v.Subject), &pending); err != nil {
		slog.Error("malformed pending registration subject", "verification_id", v.VerificationID, "err", err)
		return nil, domain.Wrap(domain.ErrInvalidVerificationToken, "pending subject")
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:        id.New(),
		Name:          pending.Name,
		Email:         pending.Email,
		EmailVerified: true,
		Onboarded:     false,
		Enable:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.userRepo.Put(ctx, u); err != nil {
		slog.Error("user create failed", "email", pending.Email, "err", err)
		return nil, err
	}
	return u, nil
}

// RefreshTokens exchanges a valid refresh token for a fresh pair. Rotation is
// full but stateless — the old refresh token is not invalidated server-side.
func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.DecodeRefreshToken(refreshToken)
	if err != nil {
		slog.Info("refresh token rejected", "err", err)
		return nil, err
	}
	u, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.mintPair(u)
}

// PasswordLogin is the legacy credential flow. All failure shapes collapse to
// invalid-credentials so it leaks nothing about which part failed.
func (s *service) PasswordLogin(ctx context.Context, email, password string) (*TokenPair, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.Wrap(domain.ErrInvalidCredentials, "password login")
	}
	acct, err := s.accountRepo.GetByUser(ctx, u.UserID)
	if err != nil {
		return nil, domain.Wrap(domain.ErrInvalidCredentials, "password login")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		slog.Info("password mismatch", "user_id", u.UserID)
		return nil, domain.Wrap(domain.ErrInvalidCredentials, "password login")
	}
	return s.mintPair(u)
}

// PasswordRegister is the legacy credential signup: it creates the user and
// its Account row in one step and signs the user in. The email stays
// unverified; the OTP flows are the only path that verifies it.
func (s *service) PasswordRegister(ctx context.Context, name, email, password string) (*TokenPair, error) {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		slog.Info("password register for taken email", "email", email)
		return nil, domain.Wrap(domain.ErrEmailAlreadyInUse, "email %s", email)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("password hash failed", "email", email, "err", err)
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:    id.New(),
		Name:      name,
		Email:     email,
		Enable:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Put(ctx, u); err != nil {
		slog.Error("user create failed", "email", email, "err", err)
		return nil, err
	}
	acct := &domain.Account{
		AccountID:    id.New(),
		UserID:       u.UserID,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accountRepo.Put(ctx, acct); err != nil {
		slog.Error("account create failed", "user_id", u.UserID, "err", err)
		return nil, err
	}
	return s.mintPair(u)
}

func (s *service) mintPair(u *domain.User) (*TokenPair, error) {
	access, err := s.codec.GenerateAccessToken(u.UserID, u.Email, u.Name)
	if err != nil {
		slog.Error("access token mint failed", "user_id", u.UserID, "err", err)
		return nil, err
	}
	refresh, err := s.codec.GenerateRefreshToken(u.UserID, u.Email, u.Name)
	if err != nil {
		slog.Error("refresh token mint failed", "user_id", u.UserID, "err", err)
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
