// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"baito/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// RegisterInput defines the data required to register an account.
type RegisterInput struct {
	Email    string          `validate:"required,email"`
	Password string          `validate:"required,min=8"`
	UserType entity.UserType `validate:"required"`
	Name     string          `validate:"required"`
}

// --- Output DTOs ---

// BootstrapOutput is the result of the cold-start session check.
type BootstrapOutput struct {
	State    entity.BootstrapState
	Identity *entity.Identity // Set only when State is BootstrapAuthenticated.
}

// SessionUsecase owns the access/refresh token pair: it validates or renews
// the pair against the backend and keeps the cached identity fields in sync
// with the server's view of the user.
type SessionUsecase interface {
	// Bootstrap runs the cold-start policy: no pair -> unauthenticated;
	// otherwise Validate, then Refresh, then clear-and-report, each step
	// attempted exactly once.
	Bootstrap(ctx context.Context) (*BootstrapOutput, error)

	// Validate introspects the access token and persists the returned
	// identity fields. Any failure reports invalid without propagating.
	Validate(ctx context.Context, accessToken string) bool

	// Refresh exchanges the refresh token for a new pair, persists it, and
	// re-validates with the new access token.
	Refresh(ctx context.Context, refreshToken string) bool

	// Login authenticates and persists the session.
	Login(ctx context.Context, input *LoginInput) (*entity.Identity, error)

	// Register creates an account and persists its first session.
	Register(ctx context.Context, input *RegisterInput) (*entity.Identity, error)

	// Logout tears the session down, best-effort revoking it server-side.
	Logout(ctx context.Context) error

	// ClearSession removes all persisted auth and identity keys. Idempotent.
	ClearSession(ctx context.Context) error

	// CurrentIdentity returns the locally cached identity, or
	// ErrSessionInactive when the device holds no session.
	CurrentIdentity(ctx context.Context) (*entity.Identity, error)
}
