package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/songguessr/songguessr-go/internal/dependencies/clock"
	"github.com/songguessr/songguessr-go/internal/dependencies/random"
	"github.com/songguessr/songguessr-go/internal/model"
	"github.com/songguessr/songguessr-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSigningKeyMissing  = errors.New("token signing key not configured")
)

// Identity is the resolved user reference derived from a verified credential
type Identity struct {
	UserID model.UserID
	User   model.User
}

// Config holds configuration for the auth service
type Config struct {
	SigningKey    []byte
	TokenDuration time.Duration
	Issuer        string
}

// DefaultConfig returns default auth configuration.
// The signing key has no default; it must come from the environment.
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
		Issuer:        "songguessr",
	}
}

// Service handles signup, login, and bearer credential resolution
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	cfg     Config
	logger  *slog.Logger
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultConfig().Issuer
	}
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		cfg:     cfg,
		logger:  logger,
	}
}

// Signup creates a user account and issues a token for it.
// Username and email are each unique across all users.
func (s *Service) Signup(ctx context.Context, username, email, password string) (*model.User, string, error) {
	if _, err := s.storage.GetUserByUsername(ctx, username); err == nil {
		return nil, "", model.ErrUsernameExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, "", err
	}

	if _, err := s.storage.GetUserByEmail(ctx, email); err == nil {
		return nil, "", model.ErrEmailExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:           model.UserID(s.random.ID("u_")),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user signed up", slog.String("user_id", string(user.ID)))

	return user, token, nil
}

// Login authenticates a user by email and issues a token.
// An unknown email surfaces as ErrUserNotFound; a wrong password as
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetUser retrieves a user by ID
func (s *Service) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// IssueToken signs a bearer token carrying the user's ID
func (s *Service) IssueToken(user *model.User) (string, error) {
	if len(s.cfg.SigningKey) == 0 {
		return "", ErrSigningKeyMissing
	}

	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   string(user.ID),
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.SigningKey)
}

// Resolve verifies a bearer credential and returns the identity it carries.
// A missing, malformed, expired, or mis-signed credential resolves to
// (nil, nil): callers treat that as unauthenticated, never as a failure.
// Errors are reserved for internal problems (unset signing key, storage).
func (s *Service) Resolve(ctx context.Context, credential string) (*Identity, error) {
	if len(s.cfg.SigningKey) == 0 {
		return nil, ErrSigningKeyMissing
	}
	if credential == "" {
		return nil, nil
	}

	token, err := jwt.ParseWithClaims(credential, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.cfg.SigningKey, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return nil, nil
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, nil
	}

	user, err := s.storage.GetUser(ctx, model.UserID(claims.Subject))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Token outlived its account
			return nil, nil
		}
		return nil, err
	}

	return &Identity{UserID: user.ID, User: *user}, nil
}
