package usecase

import (
	"context"

	"baito/internal/domain/entity"
)

// JobView pairs a job with its offer's schedule window and derived payout,
// ready for display.
type JobView struct {
	Job   *entity.Job
	Offer *entity.JobOffer
}

// JobUsecase keeps a worker's jobs consistent with wall-clock time relative
// to each offer's scheduled window.
type JobUsecase interface {
	// ListMine returns the worker's jobs joined with their offers,
	// reconciling each non-terminal job's status on the way through.
	ListMine(ctx context.Context) ([]*JobView, error)

	// Reconcile runs the date-driven derivation for one job: at most one
	// update per observed (id, status, window) tuple per client session.
	// Returns the job as the server reports it after any transition.
	Reconcile(ctx context.Context, job *entity.Job, offer *entity.JobOffer) (*entity.Job, error)

	// Cancel cancels a pending or running job after explicit confirmation.
	Cancel(ctx context.Context, jobID int64) error
}
