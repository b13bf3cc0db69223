package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/redis"
	"github.com/aqabadeal-png/canroad/internal/repository"
)

// loginSessionTTL is how long a bearer token stays valid.
const loginSessionTTL = 24 * time.Hour

// AuthService handles the back-office login flow: a plain credential
// check against the seeded accounts, with uuid bearer tokens kept in the
// session store.
type AuthService struct {
	users    repository.UserRepository
	sessions redis.SessionStoreInterface
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, sessions redis.SessionStoreInterface) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login checks credentials and issues a bearer token. Every failure mode
// collapses to ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsActive || user.Password != password {
		return "", nil, ErrInvalidCredentials
	}

	token := uuid.New().String()
	if err := s.sessions.SaveSession(ctx, token, user.ID, loginSessionTTL); err != nil {
		return "", nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user logged in")
	return token, user, nil
}

// Logout invalidates a bearer token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// UserForToken resolves a bearer token to an active user.
func (s *AuthService) UserForToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	userID, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, ErrUnauthorized
	}
	return user, nil
}
