package sqlite

import (
	"context"
	"time"

	"baito/internal/domain/repository"
	"baito/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// entityCache implements the repository.EntityCache interface.
type entityCache struct {
	db *gorm.DB
}

// NewEntityCache is the constructor for entityCache.
func NewEntityCache(db *gorm.DB) repository.EntityCache {
	return &entityCache{
		db: db,
	}
}

// GetEntity returns the cached payload for (kind, id) if fresh enough.
func (repo *entityCache) GetEntity(ctx context.Context, kind string, id int64, maxAge time.Duration) ([]byte, error) {
	var cached model.CachedEntityModel

	if err := repo.db.WithContext(ctx).
		Where("kind = ? AND entity_id = ?", kind, id).
		First(&cached).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCacheMiss
		}

		return nil, errors.Wrap(err, "failed to read cached entity")
	}

	if maxAge > 0 && time.Since(cached.FetchedAt) > maxAge {
		return nil, repository.ErrCacheMiss
	}

	return cached.Payload, nil
}

// PutEntity stores or replaces the payload for (kind, id).
func (repo *entityCache) PutEntity(ctx context.Context, kind string, id int64, payload []byte) error {
	cached := model.CachedEntityModel{
		Kind:      kind,
		EntityID:  id,
		Payload:   payload,
		FetchedAt: time.Now(),
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}, {Name: "entity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "fetched_at"}),
		}).
		Create(&cached).Error; err != nil {
		return errors.Wrap(err, "failed to write cached entity")
	}

	return nil
}

// InvalidateEntity drops the entry for (kind, id).
func (repo *entityCache) InvalidateEntity(ctx context.Context, kind string, id int64) error {
	if err := repo.db.WithContext(ctx).
		Where("kind = ? AND entity_id = ?", kind, id).
		Delete(&model.CachedEntityModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to invalidate cached entity")
	}

	return nil
}

// PurgeOlderThan removes entries last fetched before the cutoff.
func (repo *entityCache) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("fetched_at < ?", cutoff).
		Delete(&model.CachedEntityModel{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to purge cached entities")
	}

	return result.RowsAffected, nil
}
