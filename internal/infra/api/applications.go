package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"baito/internal/domain/entity"
)

// CreateApplication submits a worker's application via POST /applications/.
func (c *Client) CreateApplication(ctx context.Context, offerID, workerID int64, message string) (*entity.Application, error) {
	body := map[string]any{
		"job_offer_id": offerID,
		"worker_id":    workerID,
		"message":      message,
	}

	var dto applicationDTO
	if err := c.do(ctx, &request{
		method: http.MethodPost,
		path:   "/applications/",
		body:   body,
		authed: true,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain(), nil
}

// ListWorkerApplications retrieves a worker's applications.
func (c *Client) ListWorkerApplications(ctx context.Context, workerID int64) ([]*entity.Application, error) {
	query := url.Values{}
	query.Set("worker_id", strconv.FormatInt(workerID, 10))

	return c.listApplications(ctx, query)
}

// ListOfferApplications retrieves the applicants of one offer.
func (c *Client) ListOfferApplications(ctx context.Context, offerID int64) ([]*entity.Application, error) {
	query := url.Values{}
	query.Set("job_offer_id", strconv.FormatInt(offerID, 10))

	return c.listApplications(ctx, query)
}

// UpdateApplication sets status and company response via PUT /applications/{id}.
func (c *Client) UpdateApplication(ctx context.Context, id int64, status entity.ApplicationStatus, response string) (*entity.Application, error) {
	body := map[string]any{
		"status":           status.String(),
		"company_response": response,
	}

	var dto applicationDTO
	if err := c.do(ctx, &request{
		method: http.MethodPut,
		path:   fmt.Sprintf("/applications/%d", id),
		body:   body,
		authed: true,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain(), nil
}

func (c *Client) listApplications(ctx context.Context, query url.Values) ([]*entity.Application, error) {
	var dtos []*applicationDTO
	if err := c.do(ctx, &request{
		method: http.MethodGet,
		path:   "/applications/",
		query:  query,
		authed: true,
	}, &dtos); err != nil {
		return nil, err
	}

	applications := make([]*entity.Application, 0, len(dtos))
	for _, dto := range dtos {
		applications = append(applications, dto.toDomain())
	}

	return applications, nil
}
