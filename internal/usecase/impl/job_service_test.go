package impl

import (
	"context"
	"testing"
	"time"

	"baito/internal/domain/entity"
	domainerrors "baito/internal/domain/errors"
	"baito/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	windowStart = time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)
)

func scheduledOffer() *entity.JobOffer {
	return &entity.JobOffer{
		ID:        3,
		CompanyID: 8,
		Title:     "Festival crew",
		StartDate: windowStart,
		EndDate:   windowEnd,
		Status:    entity.OfferInProgress,
	}
}

func pendingJob() *entity.Job {
	return &entity.Job{ID: 99, JobOfferID: 3, WorkerID: 42, ApplicationID: 7, Status: entity.JobPending}
}

func newJobServiceAt(now time.Time, jobAPI *fakeJobAPI, offerAPI *fakeOfferAPI, confirmer *fakeConfirmer) usecase.JobUsecase {
	svc := NewJobService(&fakeSession{identity: testIdentity()}, jobAPI, offerAPI, confirmer, testLogger())
	svc.(*jobService).now = func() time.Time { return now }

	return svc
}

func TestJobService_Reconcile_PendingToRunning(t *testing.T) {
	jobAPI := &fakeJobAPI{
		updateFn: func(id int64, status entity.JobStatus) (*entity.Job, error) {
			assert.Equal(t, int64(99), id)
			assert.Equal(t, entity.JobRunning, status)

			job := pendingJob()
			job.Status = entity.JobRunning

			return job, nil
		},
	}
	svc := newJobServiceAt(windowStart.Add(24*time.Hour), jobAPI, &fakeOfferAPI{}, &fakeConfirmer{})

	reconciled, err := svc.Reconcile(context.Background(), pendingJob(), scheduledOffer())

	require.NoError(t, err)
	assert.Equal(t, entity.JobRunning, reconciled.Status)
	assert.Equal(t, 1, jobAPI.updateCalls)
}

func TestJobService_Reconcile_RunningToCompletedPastWindow(t *testing.T) {
	jobAPI := &fakeJobAPI{
		updateFn: func(_ int64, status entity.JobStatus) (*entity.Job, error) {
			assert.Equal(t, entity.JobCompleted, status)

			job := pendingJob()
			job.Status = entity.JobCompleted

			return job, nil
		},
	}
	svc := newJobServiceAt(windowEnd.Add(24*time.Hour), jobAPI, &fakeOfferAPI{}, &fakeConfirmer{})

	running := pendingJob()
	running.Status = entity.JobRunning

	reconciled, err := svc.Reconcile(context.Background(), running, scheduledOffer())

	require.NoError(t, err)
	assert.Equal(t, entity.JobCompleted, reconciled.Status)
}

func TestJobService_Reconcile_PendingSkipsStraightToCompleted(t *testing.T) {
	jobAPI := &fakeJobAPI{
		updateFn: func(_ int64, status entity.JobStatus) (*entity.Job, error) {
			assert.Equal(t, entity.JobCompleted, status)

			job := pendingJob()
			job.Status = entity.JobCompleted

			return job, nil
		},
	}
	svc := newJobServiceAt(windowEnd.Add(24*time.Hour), jobAPI, &fakeOfferAPI{}, &fakeConfirmer{})

	reconciled, err := svc.Reconcile(context.Background(), pendingJob(), scheduledOffer())

	require.NoError(t, err)
	assert.Equal(t, entity.JobCompleted, reconciled.Status)
	assert.Equal(t, 1, jobAPI.updateCalls, "a job past its window completes in a single transition")
}

func TestJobService_Reconcile_BeforeWindowIsNoOp(t *testing.T) {
	jobAPI := &fakeJobAPI{}
	svc := newJobServiceAt(windowStart.Add(-24*time.Hour), jobAPI, &fakeOfferAPI{}, &fakeConfirmer{})

	reconciled, err := svc.Reconcile(context.Background(), pendingJob(), scheduledOffer())

	require.NoError(t, err)
	assert.Equal(t, entity.JobPending, reconciled.Status)
	assert.Equal(t, 0, jobAPI.updateCalls)
}

func TestJobService_Reconcile_TerminalNeverUpdated(t *testing.T) {
	jobAPI := &fakeJobAPI{}
	svc := newJobServiceAt(windowEnd.Add(24*time.Hour), jobAPI, &fakeOfferAPI{}, &fakeConfirmer{})

	for _, status := range []entity.JobStatus{entity.JobCompleted, entity.JobCancelled} {
		job := pendingJob()
		job.Status = status

		reconciled, err := svc.Reconcile(context.Background(), job, scheduledOffer())

		require.NoError(t, err)
		assert.Equal(t, status, reconciled.Status)
	}
	assert.Equal(t, 0, jobAPI.updateCalls, "terminal statuses are never re-derived")
}

func TestJobService_Reconcile_SameTupleUpdatesOnce(t *testing.T) {
	jobAPI := &fakeJobAPI{
		updateFn: func(int64, entity.JobStatus) (*entity.Job, error) {
			job := pendingJob()
			job.Status = entity.JobRunning

			return job, nil
		},
	}
	svc := newJobServiceAt(windowStart.Add(24*time.Hour), jobAPI, &fakeOfferAPI{}, &fakeConfirmer{})

	_, err := svc.Reconcile(context.Background(), pendingJob(), scheduledOffer())
	require.NoError(t, err)

	// Re-observing the identical (id, status, window) tuple this session.
	again, err := svc.Reconcile(context.Background(), pendingJob(), scheduledOffer())
	require.NoError(t, err)

	assert.Equal(t, entity.JobPending, again.Status, "the second observation is left as reported")
	assert.Equal(t, 1, jobAPI.updateCalls, "one update per observed tuple per session")
}

func TestJobService_Reconcile_NewStatusTupleIsEvaluatedAgain(t *testing.T) {
	jobAPI := &fakeJobAPI{
		updateFn: func(_ int64, status entity.JobStatus) (*entity.Job, error) {
			job := pendingJob()
			job.Status = status

			return job, nil
		},
	}
	svc := newJobServiceAt(windowEnd.Add(24*time.Hour), jobAPI, &fakeOfferAPI{}, &fakeConfirmer{})

	first, err := svc.Reconcile(context.Background(), pendingJob(), scheduledOffer())
	require.NoError(t, err)
	require.Equal(t, entity.JobCompleted, first.Status)

	// The server reports running; that is a different tuple.
	running := pendingJob()
	running.Status = entity.JobRunning

	second, err := svc.Reconcile(context.Background(), running, scheduledOffer())
	require.NoError(t, err)

	assert.Equal(t, entity.JobCompleted, second.Status)
	assert.Equal(t, 2, jobAPI.updateCalls)
}

func TestJobService_Reconcile_UpdateFailureIsNotFatal(t *testing.T) {
	jobAPI := &fakeJobAPI{
		updateFn: func(int64, entity.JobStatus) (*entity.Job, error) {
			return nil, domainerrors.ErrTransport
		},
	}
	svc := newJobServiceAt(windowStart.Add(24*time.Hour), jobAPI, &fakeOfferAPI{}, &fakeConfirmer{})

	reconciled, err := svc.Reconcile(context.Background(), pendingJob(), scheduledOffer())

	require.NoError(t, err, "a failed derivation update is logged, not surfaced")
	assert.Equal(t, entity.JobPending, reconciled.Status)
}

func TestJobService_Reconcile_FailedUpdateRetriesNextReconciliation(t *testing.T) {
	jobAPI := &fakeJobAPI{
		updateFn: func(int64, entity.JobStatus) (*entity.Job, error) {
			return nil, domainerrors.ErrTransport
		},
	}
	svc := newJobServiceAt(windowStart.Add(24*time.Hour), jobAPI, &fakeOfferAPI{}, &fakeConfirmer{})

	first, err := svc.Reconcile(context.Background(), pendingJob(), scheduledOffer())
	require.NoError(t, err)
	require.Equal(t, entity.JobPending, first.Status)

	// The backend is healthy again; the same tuple must be retried, not
	// remembered as already handled.
	jobAPI.updateFn = func(_ int64, status entity.JobStatus) (*entity.Job, error) {
		job := pendingJob()
		job.Status = status

		return job, nil
	}

	second, err := svc.Reconcile(context.Background(), pendingJob(), scheduledOffer())
	require.NoError(t, err)

	assert.Equal(t, entity.JobRunning, second.Status)
	assert.Equal(t, 2, jobAPI.updateCalls, "a failed update does not consume the tuple")
}

func TestJobService_ListMine_JoinsOffersAndReconciles(t *testing.T) {
	jobAPI := &fakeJobAPI{
		byWorker: map[int64][]*entity.Job{42: {pendingJob()}},
		updateFn: func(_ int64, status entity.JobStatus) (*entity.Job, error) {
			job := pendingJob()
			job.Status = status

			return job, nil
		},
	}
	offerAPI := &fakeOfferAPI{offers: map[int64]*entity.JobOffer{3: scheduledOffer()}}
	svc := newJobServiceAt(windowStart.Add(24*time.Hour), jobAPI, offerAPI, &fakeConfirmer{})

	views, err := svc.ListMine(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, entity.JobRunning, views[0].Job.Status)
	require.NotNil(t, views[0].Offer)
	assert.Equal(t, "Festival crew", views[0].Offer.Title)
}

func TestJobService_Cancel_DismissedMakesNoCall(t *testing.T) {
	jobAPI := &fakeJobAPI{jobs: map[int64]*entity.Job{99: pendingJob()}}
	svc := newJobServiceAt(windowStart, jobAPI, &fakeOfferAPI{}, &fakeConfirmer{answer: false})

	err := svc.Cancel(context.Background(), 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCancelled)
	assert.Equal(t, 0, jobAPI.updateCalls)
}

func TestJobService_Cancel_TerminalJobRejected(t *testing.T) {
	done := pendingJob()
	done.Status = entity.JobCompleted
	jobAPI := &fakeJobAPI{jobs: map[int64]*entity.Job{99: done}}
	svc := newJobServiceAt(windowStart, jobAPI, &fakeOfferAPI{}, &fakeConfirmer{answer: true})

	err := svc.Cancel(context.Background(), 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	assert.Equal(t, 0, jobAPI.updateCalls)
}
