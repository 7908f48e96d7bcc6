// Package api contains the REST client for the marketplace backend. The
// backend's contract is fixed; this package only consumes it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"baito/config"
	domainerrors "baito/internal/domain/errors"
	"baito/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Client is the typed HTTP client for the backend. It implements the AuthAPI,
// OfferAPI, ApplicationAPI, JobAPI and ProfileAPI interfaces.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     service.TokenProvider
	logger     *slog.Logger
}

// NewClient is the constructor for Client. The timeout applies to every
// request; a hung request must never hang a flow indefinitely.
func NewClient(cfg *config.Config, tokens service.TokenProvider, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		tokens: tokens,
		logger: logger,
	}
}

// request describes one backend call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// bearer overrides the token provider; used by the auth flows that
	// operate on explicit tokens. Empty string with authed=false sends an
	// anonymous request.
	bearer string
	authed bool
}

// do performs the call and decodes a 2xx JSON body into out (when non-nil).
// Every failure is mapped onto the domain error taxonomy; transport failures
// never escape as raw url.Errors.
func (c *Client) do(ctx context.Context, req *request, out any) error {
	var bodyReader io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		bodyReader = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, bodyReader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	bearer := req.bearer
	if bearer == "" && req.authed {
		bearer, err = c.tokens.AccessToken(ctx)
		if err != nil {
			return err
		}
	}
	if bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("Request transport failure",
			slog.String("method", req.method),
			slog.String("path", req.path),
			slog.Any("error", err),
		)

		return domainerrors.ErrTransport.WithDetails(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domainerrors.ErrTransport.WithDetails(err.Error())
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapErrorResponse(req, resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Wrapf(err, "failed to decode %s %s response", req.method, req.path)
		}
	}

	return nil
}

// errorBody is the backend's error envelope. Validation failures carry a
// structured detail list; everything else is a plain detail string.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// mapErrorResponse converts a non-2xx response into the domain taxonomy.
func (c *Client) mapErrorResponse(req *request, status int, raw []byte) error {
	c.logger.Debug("Request failed",
		slog.String("method", req.method),
		slog.String("path", req.path),
		slog.Int("status", status),
	)

	switch status {
	case http.StatusUnauthorized:
		return domainerrors.ErrUnauthorized.WithDetails(detailString(raw))
	case http.StatusForbidden:
		return domainerrors.ErrForbidden.WithDetails(detailString(raw))
	case http.StatusNotFound:
		return domainerrors.ErrNotFound.WithDetails(detailString(raw))
	case http.StatusConflict:
		return domainerrors.ErrConflict.WithDetails(detailString(raw))
	case http.StatusUnprocessableEntity:
		if fields := fieldMessages(raw); len(fields) > 0 {
			return domainerrors.NewValidationError(fields)
		}

		return domainerrors.ErrValidationFailed.WithDetails(detailString(raw))
	default:
		return domainerrors.ErrInternalError.WithDetails(detailString(raw))
	}
}

// fieldMessages extracts per-field messages from a structured 422 body.
// Returns nil when the shape does not allow it.
func fieldMessages(raw []byte) map[string]string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return nil
	}

	var fieldErrors []fieldError
	if err := json.Unmarshal(body.Detail, &fieldErrors); err != nil {
		return nil
	}

	fields := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		if len(fe.Loc) == 0 || fe.Msg == "" {
			continue
		}
		// The last loc segment names the offending field.
		if field, ok := fe.Loc[len(fe.Loc)-1].(string); ok {
			fields[field] = fe.Msg
		}
	}

	if len(fields) == 0 {
		return nil
	}

	return fields
}

// detailString pulls a human-readable detail out of an error body, falling
// back to the raw payload.
func detailString(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(body.Detail, &detail); err == nil {
			return detail
		}
	}

	return strings.TrimSpace(string(raw))
}
