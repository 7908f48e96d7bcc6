package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Domain-specific errors for the entity cache.
var (
	// ErrCacheMiss is returned when no fresh entry exists for a key.
	ErrCacheMiss = errors.New("cache miss")
)

// Cache entity kinds. The cache is keyed by (kind, id).
const (
	CacheKindJobOffer = "job_offer"
	CacheKindCompany  = "company"
	CacheKindWorker   = "worker"
)

// EntityCache is the one data-access layer that owns "already loaded" state,
// replacing per-screen ad hoc memoization. Entries carry the JSON payload the
// backend returned; staleness is the caller's policy via maxAge.
type EntityCache interface {
	// GetEntity returns the cached payload for (kind, id) if it is younger
	// than maxAge, otherwise ErrCacheMiss.
	GetEntity(ctx context.Context, kind string, id int64, maxAge time.Duration) ([]byte, error)

	// PutEntity stores or replaces the payload for (kind, id).
	PutEntity(ctx context.Context, kind string, id int64, payload []byte) error

	// InvalidateEntity drops the entry for (kind, id). Missing entries are
	// not an error.
	InvalidateEntity(ctx context.Context, kind string, id int64) error

	// PurgeOlderThan removes entries last fetched before the cutoff.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
