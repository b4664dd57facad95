package api

import (
	"jalanmon/internal/auth"
	"jalanmon/internal/config"
	"jalanmon/internal/model"
	"jalanmon/internal/service"

	"github.com/gin-gonic/gin"
)

// HTTPHandler carries the dependencies of all route handlers.
type HTTPHandler struct {
	cfg         config.Config
	repo        model.Repository
	authManager *auth.Manager

	authService *service.Service
}

// NewHTTPHandler creates the HTTP handler set.
func NewHTTPHandler(cfg config.Config, repo model.Repository, authManager *auth.Manager, authService *service.Service) *HTTPHandler {
	return &HTTPHandler{
		cfg:         cfg,
		repo:        repo,
		authManager: authManager,
		authService: authService,
	}
}

// RegisterRoutes mounts all endpoints on the engine.
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/set-password", h.SetPassword)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)
	}

	protected := r.Group("/api/auth")
	protected.Use(h.AuthMiddleware())
	{
		protected.POST("/logout", h.Logout)
		protected.GET("/me", h.Me)
		protected.GET("/validate-token", h.ValidateToken)
		protected.PATCH("/me/profile", h.UpdateProfile)
		protected.POST("/me/change-password", h.ChangePassword)
		protected.GET("/roles", h.RequireSuperAdmin(), h.ListRoles)
	}

	users := r.Group("/api/auth/users")
	users.Use(h.AuthMiddleware(), h.RequireSuperAdmin())
	{
		users.GET("", h.ListUsers)
		users.GET("/pending", h.PendingUsers)
		users.GET("/:id", h.GetUser)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.PATCH("/:id/toggle-active", h.ToggleUserActive)
		users.PATCH("/:id/role", h.ChangeUserRole)
		users.POST("/:id/verify", h.VerifyUser)
	}
}

// Health is the liveness probe.
func (h *HTTPHandler) Health(c *gin.Context) {
	OK(c, "ok", nil)
}
