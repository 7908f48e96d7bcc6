package usecase

import (
	"context"

	"baito/internal/domain/entity"
)

// ProfileUsecase reads company and worker profiles, serving repeat lookups
// from the entity cache instead of re-fetching per screen.
type ProfileUsecase interface {
	GetCompany(ctx context.Context, id int64) (*entity.CompanyProfile, error)
	GetWorker(ctx context.Context, id int64) (*entity.WorkerProfile, error)
}
