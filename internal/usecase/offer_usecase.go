package usecase

import (
	"context"

	"baito/internal/domain/entity"

	"github.com/paulmach/orb"
)

// --- Input DTOs ---

// CreateOfferInput defines the data required to post a job offer. Exactly one
// compensation field must be set, selected by PaymentMode.
type CreateOfferInput struct {
	Title        string   `validate:"required,min=3"`
	Description  string   `validate:"required"`
	Category     string   `validate:"required,oneof=events catering cleaning delivery other"`
	Address      string   `validate:"required"`
	City         string   `validate:"required"`
	Longitude    *float64 `validate:"omitempty,longitude"`
	Latitude     *float64 `validate:"omitempty,latitude"`
	StartDate    string   `validate:"required,datetime=2006-01-02"`
	EndDate      string   `validate:"required,datetime=2006-01-02"`
	StartTime    string   `validate:"required,datetime=15:04"`
	EndTime      string   `validate:"required,datetime=15:04"`
	WorkersCount int      `validate:"required,min=1"`
	PaymentMode  string   `validate:"required,oneof=hourly fixed"`
	HourlyRate   float64  `validate:"omitempty,min=0"`
	TotalPayment float64  `validate:"omitempty,min=0"`
	Experience   string   `validate:"required,oneof=beginner intermediate advanced"`
}

// BrowseInput narrows and orders the offer listing.
type BrowseInput struct {
	Category string
	// Near enables distance sorting from this point when set.
	Near *orb.Point
}

// --- Output DTOs ---

// BrowseOffer is an offer plus its distance from the browse point, in meters
// (-1 when unknown).
type BrowseOffer struct {
	Offer    *entity.JobOffer
	Distance float64
}

// OfferUsecase covers browsing for workers and posting/managing for companies.
type OfferUsecase interface {
	// Browse lists available offers, optionally filtered by category and
	// sorted by distance from a point.
	Browse(ctx context.Context, input *BrowseInput) ([]*BrowseOffer, error)

	// Get returns one offer, serving repeat reads from the entity cache.
	Get(ctx context.Context, id int64) (*entity.JobOffer, error)

	// ListMine returns the authenticated company's offers.
	ListMine(ctx context.Context) ([]*entity.JobOffer, error)

	// Create validates and posts a new offer.
	Create(ctx context.Context, input *CreateOfferInput) (*entity.JobOffer, error)

	// ShareQR renders a QR code PNG for sharing an offer.
	ShareQR(ctx context.Context, id int64) ([]byte, error)
}
