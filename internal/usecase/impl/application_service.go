package impl

import (
	"context"
	"log/slog"

	"baito/internal/domain/entity"
	domainerrors "baito/internal/domain/errors"
	"baito/internal/domain/service"
	"baito/internal/usecase"

	"github.com/pkg/errors"
)

// Canned company response texts sent alongside a decision.
const (
	acceptResponse = "Congratulations! Your application has been accepted."
	rejectResponse = "Thank you for your interest. We have decided to move forward with other candidates."
)

// applicationService implements the ApplicationUsecase interface.
type applicationService struct {
	session        usecase.SessionUsecase
	applicationAPI service.ApplicationAPI
	jobAPI         service.JobAPI
	offerAPI       service.OfferAPI
	confirmer      service.Confirmer
	logger         *slog.Logger
}

// NewApplicationService is the constructor for applicationService.
func NewApplicationService(
	session usecase.SessionUsecase,
	applicationAPI service.ApplicationAPI,
	jobAPI service.JobAPI,
	offerAPI service.OfferAPI,
	confirmer service.Confirmer,
	logger *slog.Logger,
) usecase.ApplicationUsecase {
	return &applicationService{
		session:        session,
		applicationAPI: applicationAPI,
		jobAPI:         jobAPI,
		offerAPI:       offerAPI,
		confirmer:      confirmer,
		logger:         logger,
	}
}

// Apply submits the authenticated worker's application to an offer.
func (srv *applicationService) Apply(ctx context.Context, offerID int64, message string) (*entity.Application, error) {
	identity, err := srv.session.CurrentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	application, err := srv.applicationAPI.CreateApplication(ctx, offerID, identity.UserID, message)
	if err != nil {
		return nil, errors.Wrap(err, "failed to submit application")
	}

	srv.logger.Info("Application submitted",
		slog.Int64("applicationID", application.ID),
		slog.Int64("offerID", offerID),
	)

	return application, nil
}

// ListMine returns the authenticated worker's applications.
func (srv *applicationService) ListMine(ctx context.Context) ([]*entity.Application, error) {
	identity, err := srv.session.CurrentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	applications, err := srv.applicationAPI.ListWorkerApplications(ctx, identity.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}

	return applications, nil
}

// ListForOffer returns the applicants of one of the company's offers.
func (srv *applicationService) ListForOffer(ctx context.Context, offerID int64) ([]*entity.Application, error) {
	applications, err := srv.applicationAPI.ListOfferApplications(ctx, offerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applicants")
	}

	return applications, nil
}

// Respond applies a company decision to a pending application. On accept it
// then materializes the Job; when the application update succeeded but job
// creation did not, the two states have diverged server-side and the partial
// outcome is reported distinctly so it is never mistaken for a clean failure.
func (srv *applicationService) Respond(ctx context.Context, applicationID int64, decision usecase.Decision) (*usecase.RespondOutput, error) {
	status, response, err := decisionStatus(decision)
	if err != nil {
		return nil, err
	}

	application, err := srv.applicationAPI.UpdateApplication(ctx, applicationID, status, response)
	if err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			err = domainerrors.ErrApplicationNotPending
		}

		return &usecase.RespondOutput{Outcome: usecase.RespondFailed},
			errors.Wrap(err, "failed to respond to application")
	}

	if decision != usecase.DecisionAccept {
		srv.logger.Info("Application rejected", slog.Int64("applicationID", applicationID))

		return &usecase.RespondOutput{Outcome: usecase.RespondOK, Application: application}, nil
	}

	job, err := srv.createJobFor(ctx, application)
	if err != nil {
		srv.logger.Error("Application accepted but job creation failed",
			slog.Int64("applicationID", applicationID),
			slog.Any("error", err),
		)

		return &usecase.RespondOutput{Outcome: usecase.RespondAcceptedJobFailed, Application: application},
			domainerrors.ErrJobCreationFailed
	}

	srv.logger.Info("Application accepted",
		slog.Int64("applicationID", applicationID),
		slog.Int64("jobID", job.ID),
	)

	return &usecase.RespondOutput{Outcome: usecase.RespondOK, Application: application, Job: job}, nil
}

// Cancel withdraws a pending application. The confirmation gate runs first; a
// dismissed confirmation returns ErrCancelled without any network call.
func (srv *applicationService) Cancel(ctx context.Context, applicationID int64) error {
	confirmed, err := srv.confirmer.Confirm(ctx, "Withdraw this application?")
	if err != nil {
		return errors.Wrap(err, "confirmation failed")
	}
	if !confirmed {
		return domainerrors.ErrCancelled
	}

	if _, err := srv.applicationAPI.UpdateApplication(ctx, applicationID, entity.ApplicationCancelled, ""); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			err = domainerrors.ErrApplicationNotPending
		}

		return errors.Wrap(err, "failed to cancel application")
	}

	srv.logger.Info("Application cancelled", slog.Int64("applicationID", applicationID))

	return nil
}

// createJobFor materializes the Job for an accepted application. The offer
// title is denormalized onto the job; a failed offer lookup is logged and
// leaves the title empty rather than failing the whole accept.
func (srv *applicationService) createJobFor(ctx context.Context, application *entity.Application) (*entity.Job, error) {
	var title string
	if offer, err := srv.offerAPI.GetOffer(ctx, application.JobOfferID); err != nil {
		srv.logger.Warn("Could not load offer for job title", slog.Any("error", err))
	} else {
		title = offer.Title
	}

	return srv.jobAPI.CreateJob(ctx, &entity.Job{
		JobOfferID:    application.JobOfferID,
		WorkerID:      application.WorkerID,
		ApplicationID: application.ID,
		Title:         title,
		Status:        entity.JobPending,
	})
}

func decisionStatus(decision usecase.Decision) (entity.ApplicationStatus, string, error) {
	switch decision {
	case usecase.DecisionAccept:
		return entity.ApplicationAccepted, acceptResponse, nil
	case usecase.DecisionReject:
		return entity.ApplicationRejected, rejectResponse, nil
	default:
		return "", "", domainerrors.ErrValidationFailed.WrapMessage("unknown decision")
	}
}
