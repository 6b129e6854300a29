package services

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"time"

	"tasku/internal/config"
	"tasku/internal/domain"
	"tasku/internal/errors"
	"tasku/internal/identity"
)

// MockAuthenticator accepts any credentials that reached it and issues an
// opaque token of the form mock.<base64(email)>.<unix millis>.
type MockAuthenticator struct {
	latency time.Duration
	role    domain.Role
	now     Clock
}

// NewMockAuthenticator creates an authenticator that waits latency before
// answering. A nil clock means time.Now.
func NewMockAuthenticator(latency time.Duration, clock Clock) *MockAuthenticator {
	if clock == nil {
		clock = time.Now
	}
	return &MockAuthenticator{
		latency: latency,
		role:    domain.RoleStudent,
		now:     clock,
	}
}

// NewMockAuthenticatorWithConfig uses the configured latency and default role.
func NewMockAuthenticatorWithConfig(cfg *config.Config, clock Clock) *MockAuthenticator {
	auth := NewMockAuthenticator(cfg.Session.SimulatedLatency, clock)
	if cfg.Session.DefaultRole != "" {
		auth.role = domain.Role(cfg.Session.DefaultRole)
	}
	return auth
}

// Authenticate derives the user's display identity from email and issues a token.
func (a *MockAuthenticator) Authenticate(ctx context.Context, email, password string) (*domain.Session, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}

	id, err := identity.Derive(email)
	if err != nil {
		return nil, err
	}

	token := fmt.Sprintf("mock.%s.%d",
		base64.StdEncoding.EncodeToString([]byte(email)), a.now().UnixMilli())

	return &domain.Session{
		User: domain.User{
			Email:    email,
			Name:     id.Name,
			Initials: id.Initials,
			Role:     a.role,
		},
		Token: token,
	}, nil
}

// Revoke has nothing to invalidate for mock tokens.
func (a *MockAuthenticator) Revoke(ctx context.Context, token string) error {
	return ctx.Err()
}

func (a *MockAuthenticator) wait(ctx context.Context) error {
	if a.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(a.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.NewTimeoutError("authenticate", a.latency)
		}
		return ctx.Err()
	}
}
