package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"baito/internal/domain/entity"
)

// ListOffers retrieves every browsable offer via GET /job_offers/.
func (c *Client) ListOffers(ctx context.Context) ([]*entity.JobOffer, error) {
	var dtos []*jobOfferDTO
	if err := c.do(ctx, &request{
		method: http.MethodGet,
		path:   "/job_offers/",
		authed: true,
	}, &dtos); err != nil {
		return nil, err
	}

	return offersToDomain(dtos)
}

// GetOffer retrieves one offer via GET /job_offers/{id}.
func (c *Client) GetOffer(ctx context.Context, id int64) (*entity.JobOffer, error) {
	var dto jobOfferDTO
	if err := c.do(ctx, &request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/job_offers/%d", id),
		authed: true,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain()
}

// ListCompanyOffers retrieves a company's own offers.
func (c *Client) ListCompanyOffers(ctx context.Context, companyID int64) ([]*entity.JobOffer, error) {
	query := url.Values{}
	query.Set("company_id", strconv.FormatInt(companyID, 10))

	var dtos []*jobOfferDTO
	if err := c.do(ctx, &request{
		method: http.MethodGet,
		path:   "/job_offers/",
		query:  query,
		authed: true,
	}, &dtos); err != nil {
		return nil, err
	}

	return offersToDomain(dtos)
}

// CreateOffer posts a new offer via POST /job_offers/.
func (c *Client) CreateOffer(ctx context.Context, offer *entity.JobOffer) (*entity.JobOffer, error) {
	var dto jobOfferDTO
	if err := c.do(ctx, &request{
		method: http.MethodPost,
		path:   "/job_offers/",
		body:   fromOfferDomain(offer),
		authed: true,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain()
}

func offersToDomain(dtos []*jobOfferDTO) ([]*entity.JobOffer, error) {
	offers := make([]*entity.JobOffer, 0, len(dtos))
	for _, dto := range dtos {
		offer, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}

	return offers, nil
}
