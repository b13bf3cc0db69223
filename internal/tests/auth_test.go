package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/service"
)

func newAuthFixture() (*service.AuthService, *MockUserRepository, *MockSessionStore) {
	users := NewMockUserRepository()
	users.AddUser(&domain.User{
		ID:       "admin-01",
		Role:     domain.RoleAdmin,
		Name:     "Admin User",
		Email:    "admin@canroad.example.com",
		IsActive: true,
		Password: "password123",
	})
	users.AddUser(&domain.User{
		ID:       "mech-03",
		Role:     domain.RoleMechanic,
		Name:     "Leo Martin",
		Email:    "leo@canroad.example.com",
		IsActive: false,
		Password: "password123",
	})
	sessions := NewMockSessionStore()
	return service.NewAuthService(users, sessions), users, sessions
}

func TestLogin_Succeeds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, _, _ := newAuthFixture()

	token, user, err := auth.Login(ctx, "admin@canroad.example.com", "password123")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if user == nil || user.ID != "admin-01" {
		t.Errorf("expected admin-01, got %+v", user)
	}

	resolved, err := auth.UserForToken(ctx, token)
	if err != nil {
		t.Fatalf("expected the token to resolve, got: %v", err)
	}
	if resolved.ID != "admin-01" {
		t.Errorf("expected admin-01 for the token, got %q", resolved.ID)
	}
}

func TestLogin_Failures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, _, _ := newAuthFixture()

	testCases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "ghost@canroad.example.com", "password123"},
		{"wrong password", "admin@canroad.example.com", "wrong"},
		{"inactive account", "leo@canroad.example.com", "password123"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := auth.Login(ctx, tc.email, tc.password)
			if !errors.Is(err, service.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got: %v", err)
			}
		})
	}
}

func TestLogout_InvalidatesToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, _, _ := newAuthFixture()

	token, _, err := auth.Login(ctx, "admin@canroad.example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := auth.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := auth.UserForToken(ctx, token); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized after logout, got: %v", err)
	}
}

func TestUserForToken_Guards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, users, _ := newAuthFixture()

	if _, err := auth.UserForToken(ctx, ""); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for an empty token, got: %v", err)
	}
	if _, err := auth.UserForToken(ctx, "stale-token"); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for an unknown token, got: %v", err)
	}

	// Deactivating a user invalidates their live tokens.
	token, _, err := auth.Login(ctx, "admin@canroad.example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	admin, _ := users.GetByID(ctx, "admin-01")
	admin.IsActive = false
	users.Update(ctx, admin)

	if _, err := auth.UserForToken(ctx, token); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized after deactivation, got: %v", err)
	}
}
