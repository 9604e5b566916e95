package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, sess *auth.Session) (*User, error)
	UpdateProfile(ctx context.Context, sess *auth.Session, in UpdateProfileInput) (*User, error)
	ListCustomers(ctx context.Context, sess *auth.Session, search string) ([]*User, error)
}

type service struct {
	repo      Repository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, jwtSecret: jwtSecret, tokenTTL: auth.DefaultTokenTTL}
}

// normalizeUsername lower-cases and trims the requested username.
func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	log := logger.For(ctx, "service", "Register").With(zap.String("email", in.Email))
	log.Info("Register started")

	email := strings.TrimSpace(in.Email)
	username := normalizeUsername(in.Username)

	switch {
	case email == "":
		return nil, ErrEmailRequired
	case len(username) < minUsernameLength:
		return nil, ErrUsernameTooShort
	case len(in.Password) < minPasswordLength:
		return nil, ErrPasswordTooShort
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		displayName = username
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		DisplayName:  displayName,
		Role:         auth.RoleCustomer,
		PasswordHash: hashed,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.Warn("failed to create user", zap.Error(err))
		return nil, err
	}

	token, err := auth.GenerateJWT(s.jwtSecret, u.Session(), s.tokenTTL)
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return nil, err
	}

	log.Info("Register success", zap.String("user_id", u.ID.String()))
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.For(ctx, "service", "Login").With(zap.String("email", email))

	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, ErrUserNotFound) {
		log.Info("email not found")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPasswordHash(password, u.PasswordHash) {
		log.Info("password not match")
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(s.jwtSecret, u.Session(), s.tokenTTL)
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return nil, err
	}

	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) Profile(ctx context.Context, sess *auth.Session) (*User, error) {
	if err := sess.Authorize(); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, sess.UserID)
}

func (s *service) UpdateProfile(ctx context.Context, sess *auth.Session, in UpdateProfileInput) (*User, error) {
	if err := sess.Authorize(); err != nil {
		return nil, err
	}

	log := logger.For(ctx, "service", "UpdateProfile").With(zap.String("user_id", sess.UserID.String()))
	u, err := s.repo.UpdateProfile(ctx, sess.UserID, in)
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}
	return u, nil
}

// ListCustomers lets the cashier pick the customer of a counter order.
func (s *service) ListCustomers(ctx context.Context, sess *auth.Session, search string) ([]*User, error) {
	if err := sess.Authorize(auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.ListCustomers(ctx, strings.TrimSpace(search))
}
