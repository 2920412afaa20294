package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "stencil/internal/delivery/context"
	domainerrors "stencil/internal/domain/errors"
	"stencil/internal/domain/repository"
	"stencil/internal/domain/service"
	"stencil/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login orchestrates the user login process. The login identifier may be a
// username or an email address.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	login := strings.ToLower(strings.TrimSpace(input.Login))

	srv.log(ctx).Debug("Starting login", slog.String("login", login))

	user, err := srv.userRepo.FindByLogin(ctx, login)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("login", login), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by login")
	}

	// Check password before the active flag so both failures cost the same.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("login", login), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if !user.IsActive {
		srv.log(ctx).Warn("Login rejected for inactive user", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInactiveUser, "login rejected")
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Username, user.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// RefreshToken issues a new access token from a valid refresh token.
// The refresh token remains unchanged for security reasons.
func (srv *authService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.log(ctx).Debug("Attempting to refresh access token")

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "invalid refresh token")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidToken, "refresh rejected")
		}

		return nil, errors.Wrap(err, "failed to find user for token refresh")
	}

	if !user.IsActive {
		srv.log(ctx).Warn("Refresh rejected for inactive user", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInactiveUser, "refresh rejected")
	}

	newAccessToken, _, err := srv.tokenService.GenerateTokens(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate new access token")
	}

	return &usecase.RefreshTokenOutput{
		AccessToken: newAccessToken,
	}, nil
}
