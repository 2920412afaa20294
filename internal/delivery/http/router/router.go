// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"stencil/internal/delivery/http/middleware"
	"stencil/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	RoleHandler    *handler.RoleHandler
	OTPHandler     *handler.OTPHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	roleHandler    *handler.RoleHandler
	otpHandler     *handler.OTPHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		roleHandler:    params.RoleHandler,
		otpHandler:     params.OTPHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)

		// Email verification and password reset are reachable without a
		// session; the emailed token itself proves ownership.
		authGroup.POST("/email/request-verification", r.otpHandler.RequestEmailVerification)
		authGroup.POST("/email/verify", r.otpHandler.VerifyEmail)
		authGroup.POST("/password/forgot", r.otpHandler.RequestPasswordReset)
		authGroup.POST("/password/reset", r.otpHandler.ResetPassword)

		// Contact verification needs a logged-in caller.
		contactGroup := authGroup.Group("/contact")
		contactGroup.Use(r.authMiddleware.Authenticate)
		contactGroup.POST("/request-verification", r.otpHandler.RequestContactVerification)
		contactGroup.POST("/verify", r.otpHandler.VerifyContact)
	}

	// User routes that require authentication
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("", r.userHandler.ListUsers)
		userGroup.GET("/me", r.userHandler.GetProfile)
		userGroup.PATCH("/me", r.userHandler.UpdateProfile)
		userGroup.PUT("/me/password", r.userHandler.ChangePassword)
		userGroup.DELETE("/me", r.userHandler.DeleteAccount)
		userGroup.GET("/:id", r.userHandler.GetUser)
	}

	// Role routes that require authentication
	roleGroup := e.Group("/roles")
	roleGroup.Use(r.authMiddleware.Authenticate)
	{
		roleGroup.POST("", r.roleHandler.CreateRole)
		roleGroup.GET("", r.roleHandler.ListRoles)
		roleGroup.POST("/bulk", r.roleHandler.CreateRoles)
		roleGroup.POST("/bulk/fetch", r.roleHandler.GetRoles)
		roleGroup.PATCH("/bulk", r.roleHandler.UpdateRoles)
		roleGroup.DELETE("/bulk", r.roleHandler.DeleteRoles)
		roleGroup.GET("/name/:name", r.roleHandler.GetRoleByName)
		roleGroup.GET("/:id", r.roleHandler.GetRole)
		roleGroup.PATCH("/:id", r.roleHandler.UpdateRole)
		roleGroup.DELETE("/:id", r.roleHandler.DeleteRole)
	}
}
