// Package sqlite contains the concrete implementation of the device store
// using GORM over an embedded sqlite file.
package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"baito/config"
	"baito/internal/errors"
	"baito/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the device store database, creating the storage directory and the
// schema on first use.
func New(params Params) (*gorm.DB, error) {
	if err := os.MkdirAll(params.Config.Storage.Dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create storage directory")
	}

	dbPath := filepath.Join(params.Config.Storage.Dir, params.Config.Storage.File)

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		// A single-user device store has no use for per-statement
		// implicit transactions.
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open device store")
	}

	if err := db.AutoMigrate(&model.KeyValueModel{}, &model.CachedEntityModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate device store schema")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get device store sql.DB")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	params.Logger.Debug("Device store opened", slog.String("path", dbPath))

	return db, nil
}
