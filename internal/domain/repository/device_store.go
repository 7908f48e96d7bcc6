// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"github.com/pkg/errors"
)

// Domain-specific errors for the device store.
var (
	// ErrKeyNotFound is returned when a key is not present in the store.
	ErrKeyNotFound = errors.New("key not found")
)

// Keys of the persisted session state. All auth flows must keep these six
// keys mutually consistent; ClearAuth removes all of them as one logical
// operation.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyIsLoggedIn   = "isLoggedIn"
	KeyUserEmail    = "userEmail"
	KeyUserID       = "userId"
	KeyUserType     = "userType"
)

// AuthKeys lists every key ClearAuth removes.
var AuthKeys = []string{
	KeyAccessToken,
	KeyRefreshToken,
	KeyIsLoggedIn,
	KeyUserEmail,
	KeyUserID,
	KeyUserType,
}

// DeviceStore is the dumb key-value store on the device. Writes are
// last-writer-wins; the store provides no locking because writes are rare and
// user-paced.
type DeviceStore interface {
	// Get retrieves the value for a key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value under a key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are not an error, which
	// makes session teardown idempotent.
	Delete(ctx context.Context, keys ...string) error

	// ClearAuth removes every session and identity key.
	ClearAuth(ctx context.Context) error
}
