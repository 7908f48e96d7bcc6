package api

import (
	"context"
	"net/http"

	"baito/internal/domain/entity"
	"baito/internal/domain/service"
)

// Login exchanges credentials for a token pair via POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*service.TokenPair, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var dto tokenPairDTO
	if err := c.do(ctx, &request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   body,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain(), nil
}

// Register creates an account via POST /auth/register and returns its first
// token pair.
func (c *Client) Register(ctx context.Context, input *service.RegisterInput) (*service.TokenPair, error) {
	body := map[string]string{
		"email":     input.Email,
		"password":  input.Password,
		"user_type": input.UserType.String(),
		"name":      input.Name,
	}

	var dto tokenPairDTO
	if err := c.do(ctx, &request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   body,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain(), nil
}

// Refresh exchanges a refresh token for a new pair via POST /auth/refresh.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	body := map[string]string{
		"refresh_token": refreshToken,
	}

	var dto tokenPairDTO
	if err := c.do(ctx, &request{
		method: http.MethodPost,
		path:   "/auth/refresh",
		body:   body,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain(), nil
}

// Me introspects the bearer token via GET /auth/me.
func (c *Client) Me(ctx context.Context, accessToken string) (*entity.Identity, error) {
	var dto identityDTO
	if err := c.do(ctx, &request{
		method: http.MethodGet,
		path:   "/auth/me",
		bearer: accessToken,
	}, &dto); err != nil {
		return nil, err
	}

	return dto.toDomain(), nil
}

// Logout invalidates the session via POST /auth/logout. Best effort.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, &request{
		method: http.MethodPost,
		path:   "/auth/logout",
		bearer: accessToken,
	}, nil)
}
