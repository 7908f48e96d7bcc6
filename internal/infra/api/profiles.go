package api

import (
	"context"
	"fmt"
	"net/http"

	"baito/internal/domain/entity"
)

// GetCompany retrieves a company profile via GET /companies/{id}.
func (c *Client) GetCompany(ctx context.Context, id int64) (*entity.CompanyProfile, error) {
	var dto companyDTO
	if err := c.do(ctx, &request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/companies/%d", id),
		authed: true,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain(), nil
}

// GetWorker retrieves a worker profile via GET /workers/{id}.
func (c *Client) GetWorker(ctx context.Context, id int64) (*entity.WorkerProfile, error) {
	var dto workerDTO
	if err := c.do(ctx, &request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/workers/%d", id),
		authed: true,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain(), nil
}
