// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"baito/internal/domain/entity"
	domainerrors "baito/internal/domain/errors"
	"baito/internal/domain/repository"
	"baito/internal/domain/service"
	"baito/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	store     repository.DeviceStore
	authAPI   service.AuthAPI
	inspector service.TokenInspector
	validate  *validator.Validate
	logger    *slog.Logger
	now       func() time.Time
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	store repository.DeviceStore,
	authAPI service.AuthAPI,
	inspector service.TokenInspector,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		store:     store,
		authAPI:   authAPI,
		inspector: inspector,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
		now:       time.Now,
	}
}

// Bootstrap runs the cold-start policy: Validate, then Refresh, then clear.
// Each step is attempted at most once per bootstrap cycle; there is no retry
// loop. A session with only one token present is inactive and is cleared
// without any network call.
func (srv *sessionService) Bootstrap(ctx context.Context) (*usecase.BootstrapOutput, error) {
	accessToken, accessErr := srv.store.Get(ctx, repository.KeyAccessToken)
	refreshToken, refreshErr := srv.store.Get(ctx, repository.KeyRefreshToken)

	if accessErr != nil || refreshErr != nil {
		if !isKeyAbsent(accessErr) || !isKeyAbsent(refreshErr) {
			return nil, errors.Wrap(firstErr(accessErr, refreshErr), "failed to read session from device store")
		}

		srv.logger.Debug("No complete token pair on device, clearing session")
		if err := srv.ClearSession(ctx); err != nil {
			return nil, err
		}

		return &usecase.BootstrapOutput{State: entity.BootstrapUnauthenticated}, nil
	}

	transportOnly := true

	if srv.inspector.Expired(accessToken, srv.now()) {
		// Known-stale token, don't waste the round trip.
		srv.logger.Debug("Access token expired client-side, skipping straight to refresh")
		transportOnly = false
	} else {
		err := srv.validateOnce(ctx, accessToken)
		if err == nil {
			return srv.authenticatedOutput(ctx)
		}

		srv.logger.Debug("Token validation failed", slog.Any("error", err))
		if !domainerrors.IsTransport(err) {
			transportOnly = false
		}
	}

	err := srv.refreshOnce(ctx, refreshToken)
	if err == nil {
		return srv.authenticatedOutput(ctx)
	}

	srv.logger.Debug("Token refresh failed", slog.Any("error", err))
	if !domainerrors.IsTransport(err) {
		transportOnly = false
	}

	// Both checks failed. The policy treats an unreachable backend the same as
	// a rejected token and logs the user out; report BootstrapOffline so
	// callers at least see the difference.
	state := entity.BootstrapUnauthenticated
	if transportOnly {
		state = entity.BootstrapOffline
		srv.logger.Warn("Session cleared while backend was unreachable; tokens may still have been valid")
	}

	if err := srv.ClearSession(ctx); err != nil {
		return nil, err
	}

	return &usecase.BootstrapOutput{State: state}, nil
}

// Validate introspects the access token and persists the identity fields on
// success. Every failure, semantic or transport, reports false; nothing
// propagates to the caller.
func (srv *sessionService) Validate(ctx context.Context, accessToken string) bool {
	if err := srv.validateOnce(ctx, accessToken); err != nil {
		srv.logger.Debug("Token validation failed", slog.Any("error", err))

		return false
	}

	return true
}

// Refresh exchanges the refresh token for a new pair, persists both tokens,
// then immediately re-validates with the new access token.
func (srv *sessionService) Refresh(ctx context.Context, refreshToken string) bool {
	if err := srv.refreshOnce(ctx, refreshToken); err != nil {
		srv.logger.Debug("Token refresh failed", slog.Any("error", err))

		return false
	}

	return true
}

// Login authenticates and persists the session.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.Identity, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	srv.logger.Debug("Logging in", slog.String("email", input.Email))

	pair, err := srv.authAPI.Login(ctx, input.Email, input.Password)
	if err != nil {
		if domainerrors.IsAuthFailure(err) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "login failed")
	}

	return srv.establishSession(ctx, pair)
}

// Register creates an account and persists its first session.
func (srv *sessionService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Identity, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}
	if !input.UserType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown user type")
	}

	srv.logger.Debug("Registering account", slog.String("email", input.Email), slog.String("userType", input.UserType.String()))

	pair, err := srv.authAPI.Register(ctx, &service.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		UserType: input.UserType,
		Name:     input.Name,
	})
	if err != nil {
		return nil, errors.Wrap(err, "registration failed")
	}

	return srv.establishSession(ctx, pair)
}

// Logout best-effort revokes the session server-side, then always clears the
// local session.
func (srv *sessionService) Logout(ctx context.Context) error {
	if accessToken, err := srv.store.Get(ctx, repository.KeyAccessToken); err == nil {
		if err := srv.authAPI.Logout(ctx, accessToken); err != nil {
			srv.logger.Warn("Server-side logout failed, clearing local session anyway", slog.Any("error", err))
		}
	}

	return srv.ClearSession(ctx)
}

// ClearSession removes all locally persisted auth and identity keys. Safe to
// call when no session exists.
func (srv *sessionService) ClearSession(ctx context.Context) error {
	if err := srv.store.ClearAuth(ctx); err != nil {
		return errors.Wrap(err, "failed to clear session")
	}

	return nil
}

// CurrentIdentity returns the locally cached identity fields.
func (srv *sessionService) CurrentIdentity(ctx context.Context) (*entity.Identity, error) {
	rawID, err := srv.store.Get(ctx, repository.KeyUserID)
	if err != nil {
		if isKeyAbsent(err) {
			return nil, domainerrors.ErrSessionInactive
		}

		return nil, errors.Wrap(err, "failed to read cached identity")
	}

	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "corrupt cached user id")
	}

	email, err := srv.store.Get(ctx, repository.KeyUserEmail)
	if err != nil && !isKeyAbsent(err) {
		return nil, errors.Wrap(err, "failed to read cached email")
	}
	userType, err := srv.store.Get(ctx, repository.KeyUserType)
	if err != nil && !isKeyAbsent(err) {
		return nil, errors.Wrap(err, "failed to read cached user type")
	}

	return &entity.Identity{
		UserID:   userID,
		Email:    email,
		UserType: entity.UserType(userType),
		Verified: true,
	}, nil
}

func (srv *sessionService) validateOnce(ctx context.Context, accessToken string) error {
	identity, err := srv.authAPI.Me(ctx, accessToken)
	if err != nil {
		return err
	}

	if err := srv.persistIdentity(ctx, identity); err != nil {
		srv.logger.Error("Failed to persist identity", slog.Any("error", err))

		return err
	}

	return nil
}

func (srv *sessionService) refreshOnce(ctx context.Context, refreshToken string) error {
	pair, err := srv.authAPI.Refresh(ctx, refreshToken)
	if err != nil {
		return err
	}

	if err := srv.persistTokens(ctx, pair); err != nil {
		srv.logger.Error("Failed to persist refreshed tokens", slog.Any("error", err))

		return err
	}

	return srv.validateOnce(ctx, pair.AccessToken)
}

func (srv *sessionService) authenticatedOutput(ctx context.Context) (*usecase.BootstrapOutput, error) {
	identity, err := srv.CurrentIdentity(ctx)
	if err != nil {
		return nil, err
	}

	return &usecase.BootstrapOutput{State: entity.BootstrapAuthenticated, Identity: identity}, nil
}

// establishSession persists the token pair, then validates it so the cached
// identity reflects the server's view.
func (srv *sessionService) establishSession(ctx context.Context, pair *service.TokenPair) (*entity.Identity, error) {
	if err := srv.persistTokens(ctx, pair); err != nil {
		return nil, errors.Wrap(err, "failed to persist session")
	}

	identity, err := srv.authAPI.Me(ctx, pair.AccessToken)
	if err != nil {
		return nil, errors.Wrap(err, "session established but identity fetch failed")
	}
	if err := srv.persistIdentity(ctx, identity); err != nil {
		return nil, errors.Wrap(err, "failed to persist identity")
	}

	srv.logger.Info("Session established", slog.Int64("userID", identity.UserID), slog.String("userType", identity.UserType.String()))

	return identity, nil
}

func (srv *sessionService) persistTokens(ctx context.Context, pair *service.TokenPair) error {
	if err := srv.store.Set(ctx, repository.KeyAccessToken, pair.AccessToken); err != nil {
		return errors.Wrap(err, "failed to store access token")
	}
	if err := srv.store.Set(ctx, repository.KeyRefreshToken, pair.RefreshToken); err != nil {
		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}

func (srv *sessionService) persistIdentity(ctx context.Context, identity *entity.Identity) error {
	if err := srv.store.Set(ctx, repository.KeyUserID, strconv.FormatInt(identity.UserID, 10)); err != nil {
		return errors.Wrap(err, "failed to store user id")
	}
	if err := srv.store.Set(ctx, repository.KeyUserEmail, identity.Email); err != nil {
		return errors.Wrap(err, "failed to store user email")
	}
	if err := srv.store.Set(ctx, repository.KeyUserType, identity.UserType.String()); err != nil {
		return errors.Wrap(err, "failed to store user type")
	}
	if err := srv.store.Set(ctx, repository.KeyIsLoggedIn, "true"); err != nil {
		return errors.Wrap(err, "failed to store login flag")
	}

	return nil
}

func isKeyAbsent(err error) bool {
	return err == nil || errors.Is(err, repository.ErrKeyNotFound)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil && !errors.Is(err, repository.ErrKeyNotFound) {
			return err
		}
	}

	return nil
}
