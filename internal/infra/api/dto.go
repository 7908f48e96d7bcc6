package api

import (
	"time"

	"baito/internal/domain/entity"
	"baito/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const wireDateLayout = "2006-01-02"

// tokenPairDTO mirrors the auth endpoints' token payload.
type tokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func (dto *tokenPairDTO) toDomain() *service.TokenPair {
	return &service.TokenPair{
		AccessToken:  dto.AccessToken,
		RefreshToken: dto.RefreshToken,
	}
}

// identityDTO mirrors GET /auth/me.
type identityDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	Verified bool   `json:"is_verified"`
}

func (dto *identityDTO) toDomain() *entity.Identity {
	return &entity.Identity{
		UserID:   dto.ID,
		Email:    dto.Email,
		UserType: entity.UserType(dto.UserType),
		Verified: dto.Verified,
	}
}

// jobOfferDTO mirrors the job_offers resource. The backend transports both
// compensation fields plus an optional mode discriminator; the conversion
// resolves them into the explicit variant.
type jobOfferDTO struct {
	ID           int64     `json:"id"`
	CompanyID    int64     `json:"company_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Location     string    `json:"location"`
	City         string    `json:"city"`
	Longitude    *float64  `json:"longitude"`
	Latitude     *float64  `json:"latitude"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	WorkersCount int       `json:"workers_count"`
	HourlyRate   float64   `json:"hourly_rate"`
	TotalPayment float64   `json:"total_payment"`
	PaymentMode  string    `json:"payment_mode"`
	Experience   string    `json:"experience"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (dto *jobOfferDTO) toDomain() (*entity.JobOffer, error) {
	startDate, err := parseWireDate(dto.StartDate)
	if err != nil {
		return nil, errors.Wrapf(err, "offer %d: bad start_date", dto.ID)
	}
	endDate, err := parseWireDate(dto.EndDate)
	if err != nil {
		return nil, errors.Wrapf(err, "offer %d: bad end_date", dto.ID)
	}

	location := entity.Location{
		Address: dto.Location,
		City:    dto.City,
	}
	if dto.Longitude != nil && dto.Latitude != nil {
		location.Point = orb.Point{*dto.Longitude, *dto.Latitude}
	}

	return &entity.JobOffer{
		ID:           dto.ID,
		CompanyID:    dto.CompanyID,
		Title:        dto.Title,
		Description:  dto.Description,
		Category:     entity.OfferCategory(dto.Category),
		Location:     location,
		StartDate:    startDate,
		EndDate:      endDate,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		WorkersCount: dto.WorkersCount,
		Compensation: entity.CompensationFromFields(dto.PaymentMode, dto.HourlyRate, dto.TotalPayment),
		Experience:   entity.ExperienceLevel(dto.Experience),
		Status:       entity.OfferStatus(dto.Status),
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	}, nil
}

func fromOfferDomain(offer *entity.JobOffer) *jobOfferDTO {
	dto := &jobOfferDTO{
		CompanyID:    offer.CompanyID,
		Title:        offer.Title,
		Description:  offer.Description,
		Category:     offer.Category.String(),
		Location:     offer.Location.Address,
		City:         offer.Location.City,
		StartDate:    offer.StartDate.Format(wireDateLayout),
		EndDate:      offer.EndDate.Format(wireDateLayout),
		StartTime:    offer.StartTime,
		EndTime:      offer.EndTime,
		WorkersCount: offer.WorkersCount,
		PaymentMode:  string(offer.Compensation.Mode),
		HourlyRate:   offer.Compensation.HourlyRate,
		TotalPayment: offer.Compensation.TotalPayment,
		Experience:   offer.Experience.String(),
		Status:       offer.Status.String(),
	}
	if offer.Location.HasPoint() {
		lon, lat := offer.Location.Point.Lon(), offer.Location.Point.Lat()
		dto.Longitude, dto.Latitude = &lon, &lat
	}

	return dto
}

// applicationDTO mirrors the applications resource.
type applicationDTO struct {
	ID          int64      `json:"id"`
	JobOfferID  int64      `json:"job_offer_id"`
	WorkerID    int64      `json:"worker_id"`
	Status      string     `json:"status"`
	Message     string     `json:"message"`
	Response    string     `json:"company_response"`
	AppliedAt   time.Time  `json:"applied_at"`
	RespondedAt *time.Time `json:"responded_at"`
}

func (dto *applicationDTO) toDomain() *entity.Application {
	return &entity.Application{
		ID:          dto.ID,
		JobOfferID:  dto.JobOfferID,
		WorkerID:    dto.WorkerID,
		Status:      entity.ApplicationStatus(dto.Status),
		Message:     dto.Message,
		Response:    dto.Response,
		AppliedAt:   dto.AppliedAt,
		RespondedAt: dto.RespondedAt,
	}
}

// jobDTO mirrors the jobs resource.
type jobDTO struct {
	ID            int64     `json:"id"`
	JobOfferID    int64     `json:"job_offer_id"`
	WorkerID      int64     `json:"worker_id"`
	ApplicationID int64     `json:"application_id"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (dto *jobDTO) toDomain() *entity.Job {
	return &entity.Job{
		ID:            dto.ID,
		JobOfferID:    dto.JobOfferID,
		WorkerID:      dto.WorkerID,
		ApplicationID: dto.ApplicationID,
		Title:         dto.Title,
		Status:        entity.JobStatus(dto.Status),
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	}
}

// companyDTO mirrors GET /companies/{id}.
type companyDTO struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Industry    string    `json:"industry"`
	Website     string    `json:"website"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (dto *companyDTO) toDomain() *entity.CompanyProfile {
	return &entity.CompanyProfile{
		ID:          dto.ID,
		UserID:      dto.UserID,
		Name:        dto.Name,
		Description: dto.Description,
		Industry:    dto.Industry,
		Website:     dto.Website,
		Phone:       dto.Phone,
		Address:     dto.Address,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}
}

// workerDTO mirrors GET /workers/{id}.
type workerDTO struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone"`
	Bio        string    `json:"bio"`
	Experience string    `json:"experience"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (dto *workerDTO) toDomain() *entity.WorkerProfile {
	return &entity.WorkerProfile{
		ID:         dto.ID,
		UserID:     dto.UserID,
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Phone:      dto.Phone,
		Bio:        dto.Bio,
		Experience: entity.ExperienceLevel(dto.Experience),
		CreatedAt:  dto.CreatedAt,
		UpdatedAt:  dto.UpdatedAt,
	}
}

func parseWireDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	// Some backend responses carry full timestamps in date fields.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Parse(wireDateLayout, s)
}
