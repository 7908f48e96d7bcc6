package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"baito/internal/domain/entity"
)

// CreateJob materializes a contracted job via POST /jobs/.
func (c *Client) CreateJob(ctx context.Context, job *entity.Job) (*entity.Job, error) {
	body := map[string]any{
		"job_offer_id":   job.JobOfferID,
		"worker_id":      job.WorkerID,
		"application_id": job.ApplicationID,
		"title":          job.Title,
		"status":         job.Status.String(),
	}

	var dto jobDTO
	if err := c.do(ctx, &request{
		method: http.MethodPost,
		path:   "/jobs/",
		body:   body,
		authed: true,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain(), nil
}

// GetJob retrieves one job via GET /jobs/{id}.
func (c *Client) GetJob(ctx context.Context, id int64) (*entity.Job, error) {
	var dto jobDTO
	if err := c.do(ctx, &request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/jobs/%d", id),
		authed: true,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain(), nil
}

// ListWorkerJobs retrieves a worker's jobs.
func (c *Client) ListWorkerJobs(ctx context.Context, workerID int64) ([]*entity.Job, error) {
	query := url.Values{}
	query.Set("worker_id", strconv.FormatInt(workerID, 10))

	var dtos []*jobDTO
	if err := c.do(ctx, &request{
		method: http.MethodGet,
		path:   "/jobs/",
		query:  query,
		authed: true,
	}, &dtos); err != nil {
		return nil, err
	}

	jobs := make([]*entity.Job, 0, len(dtos))
	for _, dto := range dtos {
		jobs = append(jobs, dto.toDomain())
	}

	return jobs, nil
}

// UpdateJobStatus writes a status transition via PUT /jobs/{id}.
func (c *Client) UpdateJobStatus(ctx context.Context, id int64, status entity.JobStatus) (*entity.Job, error) {
	body := map[string]any{
		"status": status.String(),
	}

	var dto jobDTO
	if err := c.do(ctx, &request{
		method: http.MethodPut,
		path:   fmt.Sprintf("/jobs/%d", id),
		body:   body,
		authed: true,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain(), nil
}
