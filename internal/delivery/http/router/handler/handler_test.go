package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stencil/internal/delivery/http/middleware"
	"stencil/internal/delivery/http/validator"
	"stencil/internal/domain/entity"
	domainerrors "stencil/internal/domain/errors"
	"stencil/internal/domain/repository"
	"stencil/internal/domain/service"
	"stencil/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const testBearerToken = "valid-access-token"

var testUserID = uuid.MustParse("5f2d9c44-7a1b-4e3d-9c6f-2b8a1d0e4f55")

// stubTokenService accepts exactly one access token and resolves it to the
// fixed test user.
type stubTokenService struct{}

func (s *stubTokenService) GenerateTokens(userID uuid.UUID, username, email string) (string, string, error) {
	return "access", "refresh", nil
}

func (s *stubTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	if tokenString != testBearerToken {
		return nil, domainerrors.ErrInvalidToken
	}

	return &service.Claims{UserID: testUserID, Username: "alice", Email: "alice@example.com"}, nil
}

func (s *stubTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	return s.ValidateToken(tokenString)
}

func (s *stubTokenService) EncodeVerification(userID uuid.UUID, email, code string, expiresAt time.Time) (string, error) {
	return "verification-token", nil
}

func (s *stubTokenService) DecodeVerification(tokenString string) (*service.VerificationClaims, error) {
	return nil, domainerrors.ErrInvalidOTP
}

func (s *stubTokenService) GetRefreshTokenDuration() time.Duration {
	return 7 * 24 * time.Hour
}

// fakeRoleUsecase is an in-memory RoleUsecase for routing-level tests.
type fakeRoleUsecase struct {
	roles []*entity.Role
}

func (f *fakeRoleUsecase) CreateRole(ctx context.Context, input *usecase.CreateRoleInput) (*entity.Role, error) {
	for _, role := range f.roles {
		if role.RoleName == input.RoleName {
			return nil, domainerrors.ErrRoleAlreadyExists
		}
	}

	role := &entity.Role{
		ID:              uuid.New(),
		RoleName:        input.RoleName,
		RoleDescription: input.RoleDescription,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	f.roles = append(f.roles, role)

	return role, nil
}

func (f *fakeRoleUsecase) CreateRoles(ctx context.Context, inputs []*usecase.CreateRoleInput) ([]*entity.Role, error) {
	created := make([]*entity.Role, 0, len(inputs))
	for _, input := range inputs {
		role, err := f.CreateRole(ctx, input)
		if err != nil {
			return nil, err
		}
		created = append(created, role)
	}

	return created, nil
}

func (f *fakeRoleUsecase) GetRole(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	for _, role := range f.roles {
		if role.ID == id {
			return role, nil
		}
	}

	return nil, domainerrors.ErrRoleNotFound
}

func (f *fakeRoleUsecase) GetRoles(ctx context.Context, ids []uuid.UUID) ([]*entity.Role, error) {
	found := make([]*entity.Role, 0, len(ids))
	for _, id := range ids {
		for _, role := range f.roles {
			if role.ID == id {
				found = append(found, role)
			}
		}
	}

	return found, nil
}

func (f *fakeRoleUsecase) GetRoleByName(ctx context.Context, name string) (*entity.Role, error) {
	for _, role := range f.roles {
		if role.RoleName == name {
			return role, nil
		}
	}

	return nil, domainerrors.ErrRoleNotFound
}

func (f *fakeRoleUsecase) ListRoles(ctx context.Context, input usecase.ListInput) (*repository.Page[*entity.Role], error) {
	query := input.ToPageQuery()

	records := f.roles
	if query.SearchBy != "" && query.SearchQuery != "" {
		filtered := make([]*entity.Role, 0, len(records))
		for _, role := range records {
			if strings.Contains(strings.ToLower(role.RoleName), strings.ToLower(query.SearchQuery)) {
				filtered = append(filtered, role)
			}
		}
		records = filtered
	}

	total := int64(len(records))
	start := (query.Page - 1) * query.Limit
	if start > len(records) {
		start = len(records)
	}
	end := start + query.Limit
	if end > len(records) {
		end = len(records)
	}

	return &repository.Page[*entity.Role]{
		Page:         query.Page,
		Limit:        query.Limit,
		TotalPages:   repository.TotalPages(total, query.Limit),
		TotalRecords: total,
		Records:      records[start:end],
	}, nil
}

func (f *fakeRoleUsecase) UpdateRole(ctx context.Context, id uuid.UUID, input *usecase.UpdateRoleInput) (*entity.Role, error) {
	for _, role := range f.roles {
		if role.ID == id {
			if input.RoleName != nil {
				role.RoleName = *input.RoleName
			}
			if input.RoleDescription != nil {
				role.RoleDescription = *input.RoleDescription
			}

			return role, nil
		}
	}

	return nil, domainerrors.ErrRoleNotFound
}

func (f *fakeRoleUsecase) UpdateRoles(ctx context.Context, inputs []*usecase.BulkUpdateRoleInput) ([]*entity.Role, error) {
	updated := make([]*entity.Role, 0, len(inputs))
	for _, input := range inputs {
		role, err := f.UpdateRole(ctx, input.ID, &input.Update)
		if err != nil {
			continue
		}
		updated = append(updated, role)
	}

	return updated, nil
}

func (f *fakeRoleUsecase) DeleteRole(ctx context.Context, id uuid.UUID) error {
	for i, role := range f.roles {
		if role.ID == id {
			f.roles = append(f.roles[:i], f.roles[i+1:]...)

			return nil
		}
	}

	return domainerrors.ErrRoleNotFound
}

func (f *fakeRoleUsecase) DeleteRoles(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		_ = f.DeleteRole(ctx, id)
	}

	return nil
}

// fakeUserUsecase delegates to configurable funcs so each test can script
// the behavior it needs.
type fakeUserUsecase struct {
	registerFn       func(ctx context.Context, input *usecase.RegisterUserInput) (*entity.User, error)
	getFn            func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	listFn           func(ctx context.Context, input usecase.ListInput) (*repository.Page[*entity.User], error)
	updateFn         func(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error)
	changePasswordFn func(ctx context.Context, id uuid.UUID, input *usecase.ChangePasswordInput) error
	deleteFn         func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeUserUsecase) Register(ctx context.Context, input *usecase.RegisterUserInput) (*entity.User, error) {
	return f.registerFn(ctx, input)
}

func (f *fakeUserUsecase) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.getFn(ctx, id)
}

func (f *fakeUserUsecase) ListUsers(ctx context.Context, input usecase.ListInput) (*repository.Page[*entity.User], error) {
	return f.listFn(ctx, input)
}

func (f *fakeUserUsecase) UpdateUser(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	return f.updateFn(ctx, id, input)
}

func (f *fakeUserUsecase) ChangePassword(ctx context.Context, id uuid.UUID, input *usecase.ChangePasswordInput) error {
	return f.changePasswordFn(ctx, id, input)
}

func (f *fakeUserUsecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}

type fakeAuthUsecase struct {
	loginFn   func(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error)
	refreshFn func(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	return f.loginFn(ctx, input)
}

func (f *fakeAuthUsecase) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	return f.refreshFn(ctx, input)
}

type fakeOTPUsecase struct {
	requestEmailFn   func(ctx context.Context, input *usecase.RequestEmailVerificationInput) (*usecase.DispatchOutput, error)
	verifyEmailFn    func(ctx context.Context, input *usecase.VerifyEmailInput) (*usecase.VerifyOutput, error)
	requestContactFn func(ctx context.Context, input *usecase.RequestContactVerificationInput) (*usecase.DispatchOutput, error)
	verifyContactFn  func(ctx context.Context, input *usecase.VerifyContactInput) (*usecase.DispatchOutput, error)
	requestResetFn   func(ctx context.Context, input *usecase.RequestPasswordResetInput) (*usecase.DispatchOutput, error)
	resetPasswordFn  func(ctx context.Context, input *usecase.ResetPasswordInput) (*usecase.VerifyOutput, error)
}

func (f *fakeOTPUsecase) RequestEmailVerification(ctx context.Context, input *usecase.RequestEmailVerificationInput) (*usecase.DispatchOutput, error) {
	return f.requestEmailFn(ctx, input)
}

func (f *fakeOTPUsecase) VerifyEmail(ctx context.Context, input *usecase.VerifyEmailInput) (*usecase.VerifyOutput, error) {
	return f.verifyEmailFn(ctx, input)
}

func (f *fakeOTPUsecase) RequestContactVerification(ctx context.Context, input *usecase.RequestContactVerificationInput) (*usecase.DispatchOutput, error) {
	return f.requestContactFn(ctx, input)
}

func (f *fakeOTPUsecase) VerifyContact(ctx context.Context, input *usecase.VerifyContactInput) (*usecase.DispatchOutput, error) {
	return f.verifyContactFn(ctx, input)
}

func (f *fakeOTPUsecase) RequestPasswordReset(ctx context.Context, input *usecase.RequestPasswordResetInput) (*usecase.DispatchOutput, error) {
	return f.requestResetFn(ctx, input)
}

func (f *fakeOTPUsecase) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) (*usecase.VerifyOutput, error) {
	return f.resetPasswordFn(ctx, input)
}

// testServer bundles the echo instance and the fakes behind it.
type testServer struct {
	echo   *echo.Echo
	roleUC *fakeRoleUsecase
	userUC *fakeUserUsecase
	authUC *fakeAuthUsecase
	otpUC  *fakeOTPUsecase
}

// newTestServer builds an echo instance with the real routing, validation
// and error translation in front of fake usecases.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	roleUC := &fakeRoleUsecase{}
	userUC := &fakeUserUsecase{}
	authUC := &fakeAuthUsecase{}
	otpUC := &fakeOTPUsecase{}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	authMW := middleware.NewAuthMiddleware(&stubTokenService{})

	registerTestRoutes(e, authMW, roleUC, userUC, authUC, otpUC, logger)

	return &testServer{
		echo:   e,
		roleUC: roleUC,
		userUC: userUC,
		authUC: authUC,
		otpUC:  otpUC,
	}
}

func registerTestRoutes(e *echo.Echo, authMW *middleware.AuthMiddleware, roleUC usecase.RoleUsecase, userUC usecase.UserUsecase, authUC usecase.AuthUsecase, otpUC usecase.OTPUsecase, logger *slog.Logger) {
	authHandler := NewAuthHandler(authUC, logger)
	userHandler := NewUserHandler(userUC, logger)
	roleHandler := NewRoleHandler(roleUC, logger)
	otpHandler := NewOTPHandler(otpUC, logger)

	e.GET("/health", HealthCheck)

	authGroup := e.Group("/auth")
	authGroup.POST("/register", userHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.RefreshToken)
	authGroup.POST("/email/request-verification", otpHandler.RequestEmailVerification)
	authGroup.POST("/email/verify", otpHandler.VerifyEmail)
	authGroup.POST("/password/forgot", otpHandler.RequestPasswordReset)
	authGroup.POST("/password/reset", otpHandler.ResetPassword)

	contactGroup := authGroup.Group("/contact")
	contactGroup.Use(authMW.Authenticate)
	contactGroup.POST("/request-verification", otpHandler.RequestContactVerification)
	contactGroup.POST("/verify", otpHandler.VerifyContact)

	userGroup := e.Group("/users")
	userGroup.Use(authMW.Authenticate)
	userGroup.GET("", userHandler.ListUsers)
	userGroup.GET("/me", userHandler.GetProfile)
	userGroup.PATCH("/me", userHandler.UpdateProfile)
	userGroup.PUT("/me/password", userHandler.ChangePassword)
	userGroup.DELETE("/me", userHandler.DeleteAccount)
	userGroup.GET("/:id", userHandler.GetUser)

	roleGroup := e.Group("/roles")
	roleGroup.Use(authMW.Authenticate)
	roleGroup.POST("", roleHandler.CreateRole)
	roleGroup.GET("", roleHandler.ListRoles)
	roleGroup.POST("/bulk", roleHandler.CreateRoles)
	roleGroup.POST("/bulk/fetch", roleHandler.GetRoles)
	roleGroup.PATCH("/bulk", roleHandler.UpdateRoles)
	roleGroup.DELETE("/bulk", roleHandler.DeleteRoles)
	roleGroup.GET("/name/:name", roleHandler.GetRoleByName)
	roleGroup.GET("/:id", roleHandler.GetRole)
	roleGroup.PATCH("/:id", roleHandler.UpdateRole)
	roleGroup.DELETE("/:id", roleHandler.DeleteRole)
}

// request performs an HTTP request against the test server.
func (ts *testServer) request(method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+testBearerToken)
	}

	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)

	return rec
}

func testUser() *entity.User {
	return &entity.User{
		ID:        testUserID,
		FirstName: "Alice",
		LastName:  "Smith",
		ContactNo: "+15550001111",
		Username:  "alice",
		Email:     "alice@example.com",
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
