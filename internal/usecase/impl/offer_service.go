package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"baito/internal/domain/entity"
	domainerrors "baito/internal/domain/errors"
	"baito/internal/domain/repository"
	"baito/internal/domain/service"
	"baito/internal/usecase"
	"baito/internal/util/daterange"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const offerDateLayout = "2006-01-02"

// offerCacheTTL bounds how stale a cached offer may be before it is
// re-fetched.
const offerCacheTTL = 5 * time.Minute

// offerService implements the OfferUsecase interface.
type offerService struct {
	session  usecase.SessionUsecase
	offerAPI service.OfferAPI
	cache    repository.EntityCache
	qrCode   service.QRCodeService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewOfferService is the constructor for offerService.
func NewOfferService(
	session usecase.SessionUsecase,
	offerAPI service.OfferAPI,
	cache repository.EntityCache,
	qrCode service.QRCodeService,
	logger *slog.Logger,
) usecase.OfferUsecase {
	return &offerService{
		session:  session,
		offerAPI: offerAPI,
		cache:    cache,
		qrCode:   qrCode,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Browse lists available offers, optionally narrowed by category. When a
// browse point is given, offers are ordered nearest first with offers of
// unknown location at the end; otherwise the server's ordering is kept.
func (srv *offerService) Browse(ctx context.Context, input *usecase.BrowseInput) ([]*usecase.BrowseOffer, error) {
	offers, err := srv.offerAPI.ListOffers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list offers")
	}

	results := make([]*usecase.BrowseOffer, 0, len(offers))
	for _, offer := range offers {
		if offer.Status != entity.OfferAvailable {
			continue
		}
		if input.Category != "" && offer.Category != entity.OfferCategory(input.Category) {
			continue
		}

		distance := float64(-1)
		if input.Near != nil {
			distance = offer.Location.DistanceFrom(*input.Near)
		}

		results = append(results, &usecase.BrowseOffer{Offer: offer, Distance: distance})
	}

	if input.Near != nil {
		sort.SliceStable(results, func(i, j int) bool {
			di, dj := results[i].Distance, results[j].Distance
			if di < 0 {
				return false
			}
			if dj < 0 {
				return true
			}

			return di < dj
		})
	}

	return results, nil
}

// Get returns one offer, serving repeat reads from the entity cache.
func (srv *offerService) Get(ctx context.Context, id int64) (*entity.JobOffer, error) {
	if payload, err := srv.cache.GetEntity(ctx, repository.CacheKindJobOffer, id, offerCacheTTL); err == nil {
		var offer entity.JobOffer
		if err := json.Unmarshal(payload, &offer); err == nil {
			return &offer, nil
		}
		srv.logger.Warn("Dropping unreadable cached offer", slog.Int64("offerID", id))
	}

	offer, err := srv.offerAPI.GetOffer(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load offer")
	}

	srv.cacheOffer(ctx, offer)

	return offer, nil
}

// ListMine returns the authenticated company's offers.
func (srv *offerService) ListMine(ctx context.Context) ([]*entity.JobOffer, error) {
	identity, err := srv.session.CurrentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	offers, err := srv.offerAPI.ListCompanyOffers(ctx, identity.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list company offers")
	}

	return offers, nil
}

// Create validates and posts a new offer for the authenticated company.
func (srv *offerService) Create(ctx context.Context, input *usecase.CreateOfferInput) (*entity.JobOffer, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	compensation := entity.CompensationFromFields(input.PaymentMode, input.HourlyRate, input.TotalPayment)
	switch compensation.Mode {
	case entity.CompensationHourly:
		if input.HourlyRate <= 0 {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("hourly offers need a positive hourly rate")
		}
	case entity.CompensationFixed:
		if input.TotalPayment <= 0 {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("fixed offers need a positive total payment")
		}
	}

	start, err := time.Parse(offerDateLayout, input.StartDate)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid start date")
	}
	end, err := time.Parse(offerDateLayout, input.EndDate)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid end date")
	}

	schedule := daterange.New()
	_ = schedule.Pick(start)
	if err := schedule.Pick(end); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("end date must not be before start date")
	}
	startDate, endDate, _ := schedule.Bounds()

	identity, err := srv.session.CurrentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	location := entity.Location{Address: input.Address, City: input.City}
	if input.Longitude != nil && input.Latitude != nil {
		location.Point = orb.Point{*input.Longitude, *input.Latitude}
	}

	offer := &entity.JobOffer{
		CompanyID:    identity.UserID,
		Title:        input.Title,
		Description:  input.Description,
		Category:     entity.OfferCategory(input.Category),
		Location:     location,
		StartDate:    startDate,
		EndDate:      endDate,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		WorkersCount: input.WorkersCount,
		Compensation: compensation,
		Experience:   entity.ExperienceLevel(input.Experience),
		Status:       entity.OfferAvailable,
	}

	created, err := srv.offerAPI.CreateOffer(ctx, offer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create offer")
	}

	srv.logger.Info("Offer posted", slog.Int64("offerID", created.ID), slog.String("title", created.Title))
	srv.cacheOffer(ctx, created)

	return created, nil
}

// ShareQR renders a QR code PNG for sharing an offer. The offer is loaded
// first so a dead ID is reported instead of encoded.
func (srv *offerService) ShareQR(ctx context.Context, id int64) ([]byte, error) {
	if _, err := srv.Get(ctx, id); err != nil {
		return nil, err
	}

	png, err := srv.qrCode.GenerateOfferQR(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return png, nil
}

// cacheOffer best-effort stores the offer; a cache write failure is logged,
// never surfaced.
func (srv *offerService) cacheOffer(ctx context.Context, offer *entity.JobOffer) {
	payload, err := json.Marshal(offer)
	if err != nil {
		srv.logger.Warn("Could not encode offer for cache", slog.Any("error", err))

		return
	}
	if err := srv.cache.PutEntity(ctx, repository.CacheKindJobOffer, offer.ID, payload); err != nil {
		srv.logger.Warn("Could not cache offer", slog.Any("error", err))
	}
}
