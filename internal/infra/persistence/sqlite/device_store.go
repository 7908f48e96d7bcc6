package sqlite

import (
	"context"

	"baito/internal/domain/repository"
	"baito/internal/domain/service"
	"baito/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// deviceStore implements the repository.DeviceStore interface. Values are
// sealed before they hit disk so tokens never land in the file in the clear.
type deviceStore struct {
	db     *gorm.DB
	sealer service.Sealer
}

// NewDeviceStore is the constructor for deviceStore.
func NewDeviceStore(db *gorm.DB, sealer service.Sealer) repository.DeviceStore {
	return &deviceStore{
		db:     db,
		sealer: sealer,
	}
}

// Get retrieves the value for a key, or repository.ErrKeyNotFound.
func (repo *deviceStore) Get(ctx context.Context, key string) (string, error) {
	var kv model.KeyValueModel

	if err := repo.db.WithContext(ctx).
		Where("key = ?", key).
		First(&kv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrKeyNotFound
		}

		return "", errors.Wrap(err, "failed to read key")
	}

	plaintext, err := repo.sealer.Open(kv.Value)
	if err != nil {
		return "", errors.Wrapf(err, "failed to unseal value for %s", key)
	}

	return string(plaintext), nil
}

// Set stores a value under a key, replacing any previous value.
func (repo *deviceStore) Set(ctx context.Context, key, value string) error {
	sealed, err := repo.sealer.Seal([]byte(value))
	if err != nil {
		return errors.Wrapf(err, "failed to seal value for %s", key)
	}

	kv := model.KeyValueModel{Key: key, Value: sealed}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&kv).Error; err != nil {
		return errors.Wrap(err, "failed to write key")
	}

	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (repo *deviceStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := repo.db.WithContext(ctx).
		Where("key IN ?", keys).
		Delete(&model.KeyValueModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete keys")
	}

	return nil
}

// ClearAuth removes every session and identity key as one logical operation.
func (repo *deviceStore) ClearAuth(ctx context.Context) error {
	return repo.Delete(ctx, repository.AuthKeys...)
}
