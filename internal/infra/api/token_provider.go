package api

import (
	"context"

	domainerrors "baito/internal/domain/errors"
	"baito/internal/domain/repository"
	"baito/internal/domain/service"

	"github.com/pkg/errors"
)

// storeTokenProvider reads the access token from the device store on every
// call, so a refresh performed by the session manager is picked up by the
// next request without any coordination.
type storeTokenProvider struct {
	store repository.DeviceStore
}

// NewStoreTokenProvider is the constructor for storeTokenProvider.
func NewStoreTokenProvider(store repository.DeviceStore) service.TokenProvider {
	return &storeTokenProvider{
		store: store,
	}
}

// AccessToken returns the stored access token, or ErrSessionInactive when the
// device holds none.
func (p *storeTokenProvider) AccessToken(ctx context.Context) (string, error) {
	token, err := p.store.Get(ctx, repository.KeyAccessToken)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return "", domainerrors.ErrSessionInactive
		}

		return "", errors.Wrap(err, "failed to read access token")
	}

	return token, nil
}
