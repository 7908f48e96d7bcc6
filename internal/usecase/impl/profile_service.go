package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"baito/internal/domain/entity"
	"baito/internal/domain/repository"
	"baito/internal/domain/service"
	"baito/internal/usecase"

	"github.com/pkg/errors"
)

// Profiles change rarely; a longer TTL than offers keeps repeat lookups off
// the network.
const profileCacheTTL = 30 * time.Minute

// profileService implements the ProfileUsecase interface.
type profileService struct {
	profileAPI service.ProfileAPI
	cache      repository.EntityCache
	logger     *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	profileAPI service.ProfileAPI,
	cache repository.EntityCache,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		profileAPI: profileAPI,
		cache:      cache,
		logger:     logger,
	}
}

// GetCompany returns a company profile, serving repeat reads from the cache.
func (srv *profileService) GetCompany(ctx context.Context, id int64) (*entity.CompanyProfile, error) {
	var cached entity.CompanyProfile
	if srv.fromCache(ctx, repository.CacheKindCompany, id, &cached) {
		return &cached, nil
	}

	profile, err := srv.profileAPI.GetCompany(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load company profile")
	}

	srv.toCache(ctx, repository.CacheKindCompany, id, profile)

	return profile, nil
}

// GetWorker returns a worker profile, serving repeat reads from the cache.
func (srv *profileService) GetWorker(ctx context.Context, id int64) (*entity.WorkerProfile, error) {
	var cached entity.WorkerProfile
	if srv.fromCache(ctx, repository.CacheKindWorker, id, &cached) {
		return &cached, nil
	}

	profile, err := srv.profileAPI.GetWorker(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load worker profile")
	}

	srv.toCache(ctx, repository.CacheKindWorker, id, profile)

	return profile, nil
}

func (srv *profileService) fromCache(ctx context.Context, kind string, id int64, out any) bool {
	payload, err := srv.cache.GetEntity(ctx, kind, id, profileCacheTTL)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		srv.logger.Warn("Dropping unreadable cached profile", slog.String("kind", kind), slog.Int64("id", id))

		return false
	}

	return true
}

func (srv *profileService) toCache(ctx context.Context, kind string, id int64, profile any) {
	payload, err := json.Marshal(profile)
	if err != nil {
		srv.logger.Warn("Could not encode profile for cache", slog.Any("error", err))

		return
	}
	if err := srv.cache.PutEntity(ctx, kind, id, payload); err != nil {
		srv.logger.Warn("Could not cache profile", slog.Any("error", err))
	}
}
