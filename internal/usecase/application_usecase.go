package usecase

import (
	"context"

	"baito/internal/domain/entity"
)

// Decision is a company's response to a pending application.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// RespondOutcome distinguishes the three ways Respond can end. The partial
// outcome (accepted but no job created) must stay distinct from both the
// success and the failure path.
type RespondOutcome int

const (
	// RespondFailed means the application update itself failed; nothing
	// changed server-side.
	RespondFailed RespondOutcome = iota
	// RespondOK means the flow completed fully.
	RespondOK
	// RespondAcceptedJobFailed means the application is accepted on the
	// server but job creation failed: a split state support needs to know
	// about.
	RespondAcceptedJobFailed
)

// RespondOutput reports the outcome of a company decision.
type RespondOutput struct {
	Outcome     RespondOutcome
	Application *entity.Application
	Job         *entity.Job // Set only on full success of an accept.
}

// ApplicationUsecase drives the application lifecycle from both sides of the
// marketplace.
type ApplicationUsecase interface {
	// Apply submits a worker's application to an offer.
	Apply(ctx context.Context, offerID int64, message string) (*entity.Application, error)

	// ListMine returns the authenticated worker's applications.
	ListMine(ctx context.Context) ([]*entity.Application, error)

	// ListForOffer returns the applicants of one of the company's offers.
	ListForOffer(ctx context.Context, offerID int64) ([]*entity.Application, error)

	// Respond applies a company decision to a pending application and, on
	// accept, materializes the Job.
	Respond(ctx context.Context, applicationID int64, decision Decision) (*RespondOutput, error)

	// Cancel withdraws a pending application after an explicit user
	// confirmation. A dismissed confirmation performs no network call.
	Cancel(ctx context.Context, applicationID int64) error
}
