package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"baito/internal/domain/entity"
	domainerrors "baito/internal/domain/errors"
	"baito/internal/domain/service"
	"baito/internal/usecase"

	"github.com/pkg/errors"
)

// jobService implements the JobUsecase interface. It holds the deriver's
// per-session memo: each observed (id, status, window) tuple is settled at
// most once for the lifetime of this service instance.
type jobService struct {
	session   usecase.SessionUsecase
	jobAPI    service.JobAPI
	offerAPI  service.OfferAPI
	confirmer service.Confirmer
	logger    *slog.Logger
	now       func() time.Time

	mu        sync.Mutex
	processed map[string]struct{}
}

// NewJobService is the constructor for jobService.
func NewJobService(
	session usecase.SessionUsecase,
	jobAPI service.JobAPI,
	offerAPI service.OfferAPI,
	confirmer service.Confirmer,
	logger *slog.Logger,
) usecase.JobUsecase {
	return &jobService{
		session:   session,
		jobAPI:    jobAPI,
		offerAPI:  offerAPI,
		confirmer: confirmer,
		logger:    logger,
		now:       time.Now,
		processed: make(map[string]struct{}),
	}
}

// ListMine returns the worker's jobs joined with their offers, reconciling
// each non-terminal job on the way through. A job whose offer cannot be
// loaded is still listed, unreconciled and without schedule data.
func (srv *jobService) ListMine(ctx context.Context) ([]*usecase.JobView, error) {
	identity, err := srv.session.CurrentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	jobs, err := srv.jobAPI.ListWorkerJobs(ctx, identity.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}

	offers := make(map[int64]*entity.JobOffer, len(jobs))
	views := make([]*usecase.JobView, 0, len(jobs))
	for _, job := range jobs {
		offer, ok := offers[job.JobOfferID]
		if !ok {
			offer, err = srv.offerAPI.GetOffer(ctx, job.JobOfferID)
			if err != nil {
				srv.logger.Warn("Could not load offer for job",
					slog.Int64("jobID", job.ID),
					slog.Int64("offerID", job.JobOfferID),
					slog.Any("error", err),
				)
				views = append(views, &usecase.JobView{Job: job})

				continue
			}
			offers[job.JobOfferID] = offer
		}

		reconciled, err := srv.Reconcile(ctx, job, offer)
		if err != nil {
			return nil, err
		}

		views = append(views, &usecase.JobView{Job: reconciled, Offer: offer})
	}

	return views, nil
}

// Reconcile runs the date-driven derivation for one job against its offer's
// scheduled window. Each (id, status, window) tuple is evaluated at most once
// per session, no-change evaluations included; a later session, or a changed
// status or window, produces a fresh tuple and is evaluated again. A failed
// update does not consume the tuple, so the next reconciliation retries it.
// The server's response is the authoritative post-transition state.
func (srv *jobService) Reconcile(ctx context.Context, job *entity.Job, offer *entity.JobOffer) (*entity.Job, error) {
	if job.Status.Terminal() {
		return job, nil
	}

	start, end := offer.ScheduleWindow()
	key := job.ReconcileKey(start, end)
	if !srv.markProcessed(key) {
		return job, nil
	}

	target := job.DeriveStatus(start, end, srv.now())
	if target == job.Status {
		return job, nil
	}

	updated, err := srv.jobAPI.UpdateJobStatus(ctx, job.ID, target)
	if err != nil {
		// The derivation is a convenience, not a transaction: a failed update
		// is logged and the job is shown as the server last reported it. The
		// tuple stays unconsumed so the next reconciliation tries again.
		srv.forget(key)
		srv.logger.Warn("Job status update failed",
			slog.Int64("jobID", job.ID),
			slog.String("from", job.Status.String()),
			slog.String("to", target.String()),
			slog.Any("error", err),
		)

		return job, nil
	}

	srv.logger.Info("Job status reconciled",
		slog.Int64("jobID", job.ID),
		slog.String("from", job.Status.String()),
		slog.String("to", updated.Status.String()),
	)

	return updated, nil
}

// Cancel cancels a pending or running job after explicit confirmation. A
// dismissed confirmation returns ErrCancelled without any network call.
func (srv *jobService) Cancel(ctx context.Context, jobID int64) error {
	confirmed, err := srv.confirmer.Confirm(ctx, "Cancel this job?")
	if err != nil {
		return errors.Wrap(err, "confirmation failed")
	}
	if !confirmed {
		return domainerrors.ErrCancelled
	}

	job, err := srv.jobAPI.GetJob(ctx, jobID)
	if err != nil {
		return errors.Wrap(err, "failed to load job")
	}
	if job.Status.Terminal() {
		return domainerrors.ErrConflict.WrapMessage("job already finished")
	}

	if _, err := srv.jobAPI.UpdateJobStatus(ctx, jobID, entity.JobCancelled); err != nil {
		return errors.Wrap(err, "failed to cancel job")
	}

	srv.logger.Info("Job cancelled", slog.Int64("jobID", jobID))

	return nil
}

// markProcessed records the tuple and reports whether this was its first
// observation this session.
func (srv *jobService) markProcessed(key string) bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if _, seen := srv.processed[key]; seen {
		return false
	}
	srv.processed[key] = struct{}{}

	return true
}

// forget releases a tuple whose update did not land.
func (srv *jobService) forget(key string) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	delete(srv.processed, key)
}
