package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kmod24/moodboard/internal/core/domain"
	"github.com/kmod24/moodboard/internal/core/ports"
)

// Auth registers users, checks passwords and hands out access tokens.
type Auth struct {
	users    ports.UserRepository
	tokens   ports.TokenIssuer
	hashCost int
	now      func() time.Time
	logger   *zap.Logger
}

func NewAuth(users ports.UserRepository, tokens ports.TokenIssuer, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{
		users:    users,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
		logger:   logger,
	}
}

// Register creates a user and returns an access token for it.
func (a *Auth) Register(ctx context.Context, email, password string) (string, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return "", err
	}
	if len(password) < domain.MinPasswordLength || len(password) > domain.MaxPasswordLength {
		return "", domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.hashCost)
	if err != nil {
		return "", fmt.Errorf("service: failed to hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    a.now().UTC(),
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return "", domain.ErrEmailTaken
		}
		return "", fmt.Errorf("service: failed to create user: %w", err)
	}

	a.logger.Info("user registered", zap.String("user_id", user.ID))
	return a.issue(user.ID)
}

// Login checks credentials and returns a fresh access token.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("service: failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return a.issue(user.ID)
}

// Authenticate resolves an access token to a user ID.
func (a *Auth) Authenticate(token string) (string, error) {
	return a.tokens.Verify(token)
}

func (a *Auth) issue(userID string) (string, error) {
	token, err := a.tokens.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("service: failed to issue token: %w", err)
	}
	return token, nil
}
