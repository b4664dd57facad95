package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"jalanmon/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const currentUserContextKey = "current-user"

// AuthMiddleware authenticates the bearer token, enforces revocation via the
// token version counter, applies the inactivity window and refreshes the
// account's last activity stamp.
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			AbortFail(c, http.StatusUnauthorized, "Header Authorization tidak ditemukan")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			AbortFail(c, http.StatusUnauthorized, "Format header Authorization tidak valid")
			return
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			AbortFail(c, http.StatusUnauthorized, "Bearer token tidak ditemukan")
			return
		}

		claims, err := h.authManager.ParseAccessToken(tokenString)
		if err != nil {
			logrus.WithError(err).Warn("failed to parse access token")
			AbortFail(c, http.StatusUnauthorized, "Token tidak valid atau sudah kadaluarsa")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := h.repo.GetUserByUsername(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				AbortFail(c, http.StatusUnauthorized, "User tidak ditemukan")
				return
			}
			logrus.WithError(err).WithField("username", claims.Subject).Error("failed to load user for auth")
			AbortFail(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
			return
		}

		if claims.TokenVersion != user.TokenVersion {
			AbortFail(c, http.StatusUnauthorized, "Sesi Anda telah berakhir. Silakan login kembali.")
			return
		}

		if !user.IsActive {
			AbortFail(c, http.StatusForbidden, "Akun Anda tidak aktif")
			return
		}

		if h.cfg.SessionExpireMinutes > 0 && user.LastActivity != nil {
			window := time.Duration(h.cfg.SessionExpireMinutes) * time.Minute
			if time.Since(*user.LastActivity) > window {
				AbortFail(c, http.StatusUnauthorized, "Sesi Anda telah berakhir karena tidak ada aktivitas")
				return
			}
		}

		if err := h.repo.TouchLastActivity(ctx, user.ID); err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to refresh last activity")
		}

		c.Set(currentUserContextKey, user)
		c.Next()
	}
}

// RequireSuperAdmin guards the admin user-management endpoints.
func (h *HTTPHandler) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsSuperAdmin() {
			AbortFail(c, http.StatusForbidden, "Hanya Super Admin yang dapat mengakses fitur ini")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated account stored by AuthMiddleware.
func CurrentUser(c *gin.Context) *entity.DbUser {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*entity.DbUser)
	if !ok {
		return nil
	}
	return user
}
