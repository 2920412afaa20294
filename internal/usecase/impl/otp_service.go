package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"stencil/config"
	deliverycontext "stencil/internal/delivery/context"
	"stencil/internal/domain/entity"
	domainerrors "stencil/internal/domain/errors"
	"stencil/internal/domain/repository"
	"stencil/internal/domain/service"
	"stencil/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const otpCodeDigits = 6

// otpService implements the OTPUsecase interface.
type otpService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	otpRepo      repository.OTPRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	emailSender  service.EmailSender
	smsSender    service.SMSSender
	runner       service.TaskRunner
	smsExpiry    time.Duration
	tokenExpiry  time.Duration
	frontendHost string
	companyName  string
	logger       *slog.Logger
}

// OTPServiceParams holds dependencies for OTPService, injected by Fx.
type OTPServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	OTPRepo      repository.OTPRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	EmailSender  service.EmailSender
	SMSSender    service.SMSSender
	Runner       service.TaskRunner
	Config       *config.Config
	Logger       *slog.Logger
}

// NewOTPService is the constructor for otpService. It receives all dependencies as interfaces.
func NewOTPService(params OTPServiceParams) usecase.OTPUsecase {
	smsExpiry := params.Config.OTP.SMSExpiry
	if smsExpiry <= 0 {
		smsExpiry = 5 * time.Minute
	}

	tokenExpiry := params.Config.OTP.TokenExpiry
	if tokenExpiry <= 0 {
		tokenExpiry = 30 * time.Minute
	}

	return &otpService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		otpRepo:      params.OTPRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		emailSender:  params.EmailSender,
		smsSender:    params.SMSSender,
		runner:       params.Runner,
		smsExpiry:    smsExpiry,
		tokenExpiry:  tokenExpiry,
		frontendHost: strings.TrimRight(params.Config.OTP.FrontendHost, "/"),
		companyName:  params.Config.OTP.CompanyName,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *otpService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RequestEmailVerification issues a code for the email flow and schedules the
// verification email.
func (srv *otpService) RequestEmailVerification(ctx context.Context, input *usecase.RequestEmailVerificationInput) (*usecase.DispatchOutput, error) {
	user, err := srv.loadUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if err := srv.checkNotVerified(ctx, user.ID, entity.OTPPurposeEmail); err != nil {
		return nil, err
	}

	srv.dispatchEmailCode(ctx, user, entity.OTPPurposeEmail)

	return &usecase.DispatchOutput{Message: "Verification email has been sent"}, nil
}

// VerifyEmail consumes an emailed verification token, marks the email flow
// verified and issues session tokens.
func (srv *otpService) VerifyEmail(ctx context.Context, input *usecase.VerifyEmailInput) (*usecase.VerifyOutput, error) {
	claims, err := srv.decodeVerification(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	user, err := srv.loadActiveUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	record, err := srv.matchCode(ctx, user.ID, entity.OTPPurposeEmail, claims.Code)
	if err != nil {
		return nil, err
	}

	if record.IsVerified {
		return nil, errors.Wrap(domainerrors.ErrAlreadyVerified, "email already verified")
	}

	if err := srv.otpRepo.MarkVerified(ctx, record.ID); err != nil {
		return nil, errors.Wrap(err, "failed to mark email verified")
	}

	srv.log(ctx).Info("Email verified", slog.Any("userID", user.ID))

	return srv.issueSession(ctx, user)
}

// RequestContactVerification issues a code for the SMS flow and schedules the
// text message. The supplied contact number must match the stored one.
func (srv *otpService) RequestContactVerification(ctx context.Context, input *usecase.RequestContactVerificationInput) (*usecase.DispatchOutput, error) {
	user, err := srv.userRepo.FindByIDAndContactNo(ctx, input.UserID, input.ContactNo)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Distinguish a missing account from a mismatched number.
			if _, findErr := srv.userRepo.FindByID(ctx, input.UserID); findErr == nil {
				return nil, errors.Wrap(domainerrors.ErrContactNoNotFound, "contact number mismatch")
			}

			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user not found for contact verification")
		}

		return nil, errors.Wrap(err, "failed to find user by id and contact number")
	}

	if !user.IsActive {
		return nil, errors.Wrap(domainerrors.ErrInactiveUser, "otp request rejected")
	}

	if err := srv.checkNotVerified(ctx, user.ID, entity.OTPPurposeSMS); err != nil {
		return nil, err
	}

	srv.runner.Go(ctx, func(taskCtx context.Context) {
		code, err := generateOTPCode()
		if err != nil {
			srv.logger.Error("Failed to generate OTP code", slog.Any("error", err))

			return
		}

		expiry := time.Now().Add(srv.smsExpiry)
		if err := srv.otpRepo.Upsert(taskCtx, &entity.OTP{
			UserID:  user.ID,
			Purpose: entity.OTPPurposeSMS,
			Code:    code,
			Expiry:  &expiry,
		}); err != nil {
			srv.logger.Error("Failed to store OTP record", slog.Any("userID", user.ID), slog.Any("error", err))

			return
		}

		body := fmt.Sprintf("%s is your %s verification code. It expires in %d minutes.",
			code, srv.companyName, int(srv.smsExpiry.Minutes()))
		if err := srv.smsSender.Send(taskCtx, service.SMSMessage{To: user.ContactNo, Body: body}); err != nil {
			srv.logger.Error("Failed to send OTP SMS", slog.Any("userID", user.ID), slog.Any("error", err))
		}
	})

	return &usecase.DispatchOutput{Message: "Verification code has been sent"}, nil
}

// VerifyContact consumes an SMS code and marks the contact flow verified.
func (srv *otpService) VerifyContact(ctx context.Context, input *usecase.VerifyContactInput) (*usecase.DispatchOutput, error) {
	user, err := srv.loadActiveUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	record, err := srv.otpRepo.FindByUserAndPurpose(ctx, user.ID, entity.OTPPurposeSMS)
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidOTP, "no code issued for contact verification")
		}

		return nil, errors.Wrap(err, "failed to find otp record")
	}

	if record.IsVerified {
		return nil, errors.Wrap(domainerrors.ErrAlreadyVerified, "contact number already verified")
	}

	if record.Expired(time.Now()) {
		return nil, errors.Wrap(domainerrors.ErrExpiredOTP, "contact verification code expired")
	}

	if record.Code != input.Code {
		return nil, errors.Wrap(domainerrors.ErrInvalidOTP, "contact verification code mismatch")
	}

	if err := srv.otpRepo.MarkVerified(ctx, record.ID); err != nil {
		return nil, errors.Wrap(err, "failed to mark contact verified")
	}

	srv.log(ctx).Info("Contact number verified", slog.Any("userID", user.ID))

	return &usecase.DispatchOutput{Message: "Contact number verified"}, nil
}

// RequestPasswordReset issues a code for the password flow and schedules the
// reset email. Unlike the other flows a verified record does not block a new
// request.
func (srv *otpService) RequestPasswordReset(ctx context.Context, input *usecase.RequestPasswordResetInput) (*usecase.DispatchOutput, error) {
	user, err := srv.loadUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	srv.dispatchEmailCode(ctx, user, entity.OTPPurposePassword)

	return &usecase.DispatchOutput{Message: "Password reset email has been sent"}, nil
}

// ResetPassword consumes a reset token, stores the new password hash and
// issues session tokens.
func (srv *otpService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) (*usecase.VerifyOutput, error) {
	claims, err := srv.decodeVerification(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	user, err := srv.loadActiveUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	record, err := srv.matchCode(ctx, user.ID, entity.OTPPurposePassword, claims.Code)
	if err != nil {
		return nil, err
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	// The code consumption and the password write must land together.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.OTPRepo().MarkVerified(ctx, record.ID); err != nil {
			return errors.Wrap(err, "failed to consume reset code")
		}

		if err := repoFactory.UserRepo().UpdatePassword(ctx, user.ID, newHash); err != nil {
			return errors.Wrap(err, "failed to store new password")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute password reset transaction", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute password reset transaction")
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("userID", user.ID))

	return srv.issueSession(ctx, user)
}

// loadUserByEmail resolves an account for the email-based flows and rejects
// inactive accounts before any code is issued.
func (srv *otpService) loadUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user not found for otp request")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !user.IsActive {
		srv.log(ctx).Warn("OTP request rejected for inactive user", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInactiveUser, "otp request rejected")
	}

	return user, nil
}

// loadActiveUser resolves an account for the verify flows.
func (srv *otpService) loadActiveUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user not found for otp verification")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	if !user.IsActive {
		return nil, errors.Wrap(domainerrors.ErrInactiveUser, "otp verification rejected")
	}

	return user, nil
}

// checkNotVerified blocks a re-request once the flow has been completed.
func (srv *otpService) checkNotVerified(ctx context.Context, userID uuid.UUID, purpose entity.OTPPurpose) error {
	record, err := srv.otpRepo.FindByUserAndPurpose(ctx, userID, purpose)
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to check otp record")
	}

	if record.IsVerified {
		return errors.Wrap(domainerrors.ErrAlreadyVerified, "already verified")
	}

	return nil
}

// dispatchEmailCode generates, stores and emails a verification link in the
// background. Request handlers return before the send completes; delivery
// failures are logged, not surfaced.
func (srv *otpService) dispatchEmailCode(ctx context.Context, user *entity.User, purpose entity.OTPPurpose) {
	srv.runner.Go(ctx, func(taskCtx context.Context) {
		code, err := generateOTPCode()
		if err != nil {
			srv.logger.Error("Failed to generate OTP code", slog.Any("error", err))

			return
		}

		if err := srv.otpRepo.Upsert(taskCtx, &entity.OTP{
			UserID:  user.ID,
			Purpose: purpose,
			Code:    code,
		}); err != nil {
			srv.logger.Error("Failed to store OTP record", slog.Any("userID", user.ID), slog.Any("error", err))

			return
		}

		token, err := srv.tokenService.EncodeVerification(user.ID, user.Email, code, time.Now().Add(srv.tokenExpiry))
		if err != nil {
			srv.logger.Error("Failed to encode verification token", slog.Any("userID", user.ID), slog.Any("error", err))

			return
		}

		link := fmt.Sprintf("%s/%s/%s", srv.frontendHost, purpose.Slug(), token)
		msg := service.EmailMessage{
			To:      user.Email,
			Subject: srv.emailSubject(purpose),
			Body:    srv.emailBody(user, purpose, link),
		}
		if err := srv.emailSender.Send(taskCtx, msg); err != nil {
			srv.logger.Error("Failed to send verification email", slog.Any("userID", user.ID), slog.Any("error", err))
		}
	})
}

func (srv *otpService) emailSubject(purpose entity.OTPPurpose) string {
	if purpose == entity.OTPPurposePassword {
		return fmt.Sprintf("%s password reset", srv.companyName)
	}

	return fmt.Sprintf("%s email verification", srv.companyName)
}

func (srv *otpService) emailBody(user *entity.User, purpose entity.OTPPurpose, link string) string {
	action := "verify your email address"
	if purpose == entity.OTPPurposePassword {
		action = "reset your password"
	}

	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Please click the link below to %s:</p><p><a href=%q>%s</a></p><p>%s</p>",
		user.FullName(), action, link, link, srv.companyName,
	)
}

// decodeVerification turns token failures into the OTP error taxonomy.
func (srv *otpService) decodeVerification(ctx context.Context, token string) (*service.VerificationClaims, error) {
	claims, err := srv.tokenService.DecodeVerification(token)
	if err != nil {
		srv.log(ctx).Warn("Verification token rejected", slog.Any("error", err))

		if errors.Is(err, domainerrors.ErrExpiredToken) {
			return nil, errors.Wrap(domainerrors.ErrExpiredOTP, "verification token expired")
		}

		return nil, errors.Wrap(domainerrors.ErrInvalidOTP, "verification token invalid")
	}

	return claims, nil
}

// matchCode loads the OTP record for the pair and compares the stored code
// against the one carried by the token.
func (srv *otpService) matchCode(ctx context.Context, userID uuid.UUID, purpose entity.OTPPurpose, code string) (*entity.OTP, error) {
	record, err := srv.otpRepo.FindByUserAndPurpose(ctx, userID, purpose)
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidOTP, "no code issued")
		}

		return nil, errors.Wrap(err, "failed to find otp record")
	}

	if record.Code != code {
		return nil, errors.Wrap(domainerrors.ErrInvalidOTP, "code mismatch")
	}

	return record, nil
}

// issueSession generates a token pair after a successful verification.
func (srv *otpService) issueSession(ctx context.Context, user *entity.User) (*usecase.VerifyOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Username, user.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens after verification", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.VerifyOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// generateOTPCode draws a uniform 6-digit code from crypto/rand.
func generateOTPCode() (string, error) {
	maxCode := big.NewInt(1)
	for i := 0; i < otpCodeDigits; i++ {
		maxCode.Mul(maxCode, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, maxCode)
	if err != nil {
		return "", errors.Wrap(err, "failed to draw random code")
	}

	return fmt.Sprintf("%0*d", otpCodeDigits, n), nil
}
