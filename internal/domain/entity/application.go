package entity

import "time"

// ApplicationStatus is the lifecycle status of a worker's application.
type ApplicationStatus string

const (
	ApplicationPending    ApplicationStatus = "pending"
	ApplicationAccepted   ApplicationStatus = "accepted"
	ApplicationRejected   ApplicationStatus = "rejected"
	ApplicationInProgress ApplicationStatus = "in_progress"
	ApplicationCompleted  ApplicationStatus = "completed"
	ApplicationCancelled  ApplicationStatus = "cancelled"
)

var applicationStatusLabels = map[ApplicationStatus]string{
	ApplicationPending:    "Pending",
	ApplicationAccepted:   "Accepted",
	ApplicationRejected:   "Rejected",
	ApplicationInProgress: "In progress",
	ApplicationCompleted:  "Completed",
	ApplicationCancelled:  "Cancelled",
}

func (s ApplicationStatus) String() string { return string(s) }

// IsValid checks if the ApplicationStatus is a valid value.
func (s ApplicationStatus) IsValid() bool {
	_, ok := applicationStatusLabels[s]

	return ok
}

// Label returns the display label for the ApplicationStatus.
func (s ApplicationStatus) Label() string {
	if label, ok := applicationStatusLabels[s]; ok {
		return label
	}

	return string(s)
}

// CanRespond reports whether a company may still accept or reject. Transitions
// are only offered from pending; accepted and rejected never revert.
func (s ApplicationStatus) CanRespond() bool {
	return s == ApplicationPending
}

// CanCancel reports whether the worker may still self-cancel. Acceptance is
// terminal from the worker's cancellation perspective.
func (s ApplicationStatus) CanCancel() bool {
	return s == ApplicationPending
}

// Application is a worker's expression of interest in a JobOffer, with its own
// approval lifecycle:
//
//	pending -> accepted  (company)
//	pending -> rejected  (company)
//	pending -> cancelled (worker, before any company response)
//
// rejected and cancelled are terminal. An accepted application triggers the
// creation of exactly one Job.
type Application struct {
	ID          int64
	JobOfferID  int64
	WorkerID    int64
	Status      ApplicationStatus
	Message     string // Free-text pitch from the worker.
	Response    string // Optional company response text.
	AppliedAt   time.Time
	RespondedAt *time.Time
}
