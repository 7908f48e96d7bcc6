// Package service defines domain-level service interfaces. They abstract the
// backend API and device facilities away from the use cases.
package service

import (
	"context"

	"baito/internal/domain/entity"
)

// TokenPair is the access/refresh pair issued by the auth endpoints.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput carries the fields common to both registration flows.
type RegisterInput struct {
	Email    string
	Password string
	UserType entity.UserType
	// Name is the worker's full name or the company's display name.
	Name string
}

// AuthAPI is the authentication surface of the marketplace backend. Token
// parameters are explicit because these calls run before (or while) the
// session is established.
type AuthAPI interface {
	// Login exchanges credentials for a token pair.
	Login(ctx context.Context, email, password string) (*TokenPair, error)

	// Register creates an account and returns its first token pair.
	Register(ctx context.Context, input *RegisterInput) (*TokenPair, error)

	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Me introspects the bearer token and returns the server's view of the
	// authenticated identity.
	Me(ctx context.Context, accessToken string) (*entity.Identity, error)

	// Logout invalidates the session server-side. Best effort; local
	// teardown does not depend on it succeeding.
	Logout(ctx context.Context, accessToken string) error
}

// OfferAPI is the job-offer surface of the backend.
type OfferAPI interface {
	ListOffers(ctx context.Context) ([]*entity.JobOffer, error)
	GetOffer(ctx context.Context, id int64) (*entity.JobOffer, error)
	ListCompanyOffers(ctx context.Context, companyID int64) ([]*entity.JobOffer, error)
	CreateOffer(ctx context.Context, offer *entity.JobOffer) (*entity.JobOffer, error)
}

// ApplicationAPI is the application surface of the backend.
type ApplicationAPI interface {
	CreateApplication(ctx context.Context, offerID, workerID int64, message string) (*entity.Application, error)
	ListWorkerApplications(ctx context.Context, workerID int64) ([]*entity.Application, error)
	ListOfferApplications(ctx context.Context, offerID int64) ([]*entity.Application, error)

	// UpdateApplication sets the status and optional company response text.
	UpdateApplication(ctx context.Context, id int64, status entity.ApplicationStatus, response string) (*entity.Application, error)
}

// JobAPI is the contracted-job surface of the backend.
type JobAPI interface {
	CreateJob(ctx context.Context, job *entity.Job) (*entity.Job, error)
	GetJob(ctx context.Context, id int64) (*entity.Job, error)
	ListWorkerJobs(ctx context.Context, workerID int64) ([]*entity.Job, error)
	UpdateJobStatus(ctx context.Context, id int64, status entity.JobStatus) (*entity.Job, error)
}

// ProfileAPI reads company and worker profiles.
type ProfileAPI interface {
	GetCompany(ctx context.Context, id int64) (*entity.CompanyProfile, error)
	GetWorker(ctx context.Context, id int64) (*entity.WorkerProfile, error)
}

// TokenProvider supplies the current access token for authenticated resource
// calls. Implementations read the device store so that a refresh performed by
// the session manager is picked up by the next request.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}
