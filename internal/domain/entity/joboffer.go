package entity

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// OfferCategory classifies the kind of work a JobOffer is for.
type OfferCategory string

const (
	CategoryEvents   OfferCategory = "events"
	CategoryCatering OfferCategory = "catering"
	CategoryCleaning OfferCategory = "cleaning"
	CategoryDelivery OfferCategory = "delivery"
	CategoryOther    OfferCategory = "other"
)

var offerCategoryLabels = map[OfferCategory]string{
	CategoryEvents:   "Events",
	CategoryCatering: "Catering",
	CategoryCleaning: "Cleaning",
	CategoryDelivery: "Delivery",
	CategoryOther:    "Other",
}

func (c OfferCategory) String() string { return string(c) }

// IsValid checks if the OfferCategory is a valid value.
func (c OfferCategory) IsValid() bool {
	_, ok := offerCategoryLabels[c]

	return ok
}

// Label returns the display label for the OfferCategory.
func (c OfferCategory) Label() string {
	if label, ok := offerCategoryLabels[c]; ok {
		return label
	}

	return string(c)
}

// ExperienceLevel is the experience a company requires for an offer.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

var experienceLevelLabels = map[ExperienceLevel]string{
	ExperienceBeginner:     "Beginner",
	ExperienceIntermediate: "Intermediate",
	ExperienceAdvanced:     "Advanced",
}

func (l ExperienceLevel) String() string { return string(l) }

// IsValid checks if the ExperienceLevel is a valid value.
func (l ExperienceLevel) IsValid() bool {
	_, ok := experienceLevelLabels[l]

	return ok
}

// Label returns the display label for the ExperienceLevel.
func (l ExperienceLevel) Label() string {
	if label, ok := experienceLevelLabels[l]; ok {
		return label
	}

	return string(l)
}

// OfferStatus is the server-driven lifecycle status of a JobOffer.
type OfferStatus string

const (
	OfferAvailable  OfferStatus = "available"
	OfferInProgress OfferStatus = "in_progress"
	OfferCompleted  OfferStatus = "completed"
	OfferCancelled  OfferStatus = "cancelled"
	OfferPaused     OfferStatus = "paused"
)

var offerStatusLabels = map[OfferStatus]string{
	OfferAvailable:  "Available",
	OfferInProgress: "In progress",
	OfferCompleted:  "Completed",
	OfferCancelled:  "Cancelled",
	OfferPaused:     "Paused",
}

func (s OfferStatus) String() string { return string(s) }

// IsValid checks if the OfferStatus is a valid value.
func (s OfferStatus) IsValid() bool {
	_, ok := offerStatusLabels[s]

	return ok
}

// Label returns the display label for the OfferStatus.
func (s OfferStatus) Label() string {
	if label, ok := offerStatusLabels[s]; ok {
		return label
	}

	return string(s)
}

// CompensationMode selects which compensation variant an offer carries.
type CompensationMode string

const (
	// CompensationHourly pays an hourly rate over the scheduled window.
	CompensationHourly CompensationMode = "hourly"
	// CompensationFixed pays a flat total for the whole engagement.
	CompensationFixed CompensationMode = "fixed"
)

// Compensation is an explicit variant type: exactly one of HourlyRate or
// TotalPayment is meaningful, selected by Mode. The backend still transports
// both numeric fields; the mode makes a legitimately zero-rate offer
// unambiguous instead of inferring the variant from "rate > 0".
type Compensation struct {
	Mode         CompensationMode
	HourlyRate   float64
	TotalPayment float64
}

// CompensationFromFields derives the variant from the backend's two-field
// wire shape. An explicit mode string wins; otherwise a non-zero hourly rate
// selects the hourly variant, matching the observed server behavior.
func CompensationFromFields(mode string, hourlyRate, totalPayment float64) Compensation {
	switch CompensationMode(mode) {
	case CompensationHourly:
		return Compensation{Mode: CompensationHourly, HourlyRate: hourlyRate}
	case CompensationFixed:
		return Compensation{Mode: CompensationFixed, TotalPayment: totalPayment}
	}

	if hourlyRate > 0 {
		return Compensation{Mode: CompensationHourly, HourlyRate: hourlyRate}
	}

	return Compensation{Mode: CompensationFixed, TotalPayment: totalPayment}
}

// Total computes the payment for the given worked duration.
func (c Compensation) Total(worked time.Duration) float64 {
	if c.Mode == CompensationHourly {
		return c.HourlyRate * worked.Hours()
	}

	return c.TotalPayment
}

// Location is where the work happens. Coordinates are optional; Address is
// always displayable.
type Location struct {
	Address string
	City    string
	// Point is lon/lat. The zero point means "no coordinates known".
	Point orb.Point
}

// HasPoint reports whether coordinates are known.
func (l Location) HasPoint() bool {
	return l.Point != orb.Point{}
}

// DistanceFrom returns the great-circle distance in meters from the given
// point, or -1 when either side has no coordinates.
func (l Location) DistanceFrom(from orb.Point) float64 {
	if !l.HasPoint() || (from == orb.Point{}) {
		return -1
	}

	return geo.Distance(from, l.Point)
}

// JobOffer is a posted opportunity by a company, with schedule, pay and
// requirements. Status transitions are server-driven; the client only infers
// transitions for derived Jobs, never for the offer itself.
type JobOffer struct {
	ID           int64
	CompanyID    int64
	Title        string
	Description  string
	Category     OfferCategory
	Location     Location
	StartDate    time.Time
	EndDate      time.Time
	StartTime    string // "HH:MM" wall-clock start within each scheduled day.
	EndTime      string
	WorkersCount int
	Compensation Compensation
	Experience   ExperienceLevel
	Status       OfferStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ScheduleWindow returns the inclusive [start, end] window the offer is
// scheduled for.
func (o *JobOffer) ScheduleWindow() (start, end time.Time) {
	return o.StartDate, o.EndDate
}
