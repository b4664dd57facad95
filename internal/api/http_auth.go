package api

import (
	"context"
	"net/http"
	"time"

	"jalanmon/internal/entity"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// Register handles self-registration. The account starts pending and receives
// credentials only after an administrator approves it.
func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.Register(ctx, req)
	if err != nil {
		WriteError(c, err)
		return
	}

	Created(c, "Registrasi berhasil. Akun Anda sedang menunggu verifikasi administrator.", makeUserSummary(user))
}

func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	data, user, err := h.authService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		WriteError(c, err)
		return
	}
	data.User = makeUserSummary(user)

	OK(c, "Login berhasil", data)
}

func (h *HTTPHandler) Logout(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Fail(c, http.StatusUnauthorized, "Autentikasi diperlukan")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.Logout(ctx, user.ID); err != nil {
		WriteError(c, err)
		return
	}
	OK(c, "Logout berhasil", nil)
}

func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Fail(c, http.StatusUnauthorized, "Autentikasi diperlukan")
		return
	}
	OK(c, "Profil berhasil dimuat", makeUserSummary(user))
}

// ValidateToken answers whether the presented token is still usable. Reaching
// the handler means the middleware already accepted it.
func (h *HTTPHandler) ValidateToken(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Fail(c, http.StatusUnauthorized, "Autentikasi diperlukan")
		return
	}
	OK(c, "Token valid", gin.H{
		"valid": true,
		"user":  makeUserSummary(user),
	})
}

func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Fail(c, http.StatusUnauthorized, "Autentikasi diperlukan")
		return
	}

	var req entity.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.authService.UpdateProfile(ctx, user, req)
	if err != nil {
		WriteError(c, err)
		return
	}
	OK(c, "Profil berhasil diperbarui", makeUserSummary(updated))
}

func (h *HTTPHandler) ChangePassword(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Fail(c, http.StatusUnauthorized, "Autentikasi diperlukan")
		return
	}

	var req entity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.ChangePassword(ctx, user, req); err != nil {
		WriteError(c, err)
		return
	}
	OK(c, "Password berhasil diubah. Silakan login kembali.", nil)
}

// SetPassword establishes the first password after approval, using the
// one-time token from the set-password mail.
func (h *HTTPHandler) SetPassword(c *gin.Context) {
	var req entity.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.SetPasswordFromToken(ctx, req); err != nil {
		WriteError(c, err)
		return
	}
	OK(c, "Password berhasil dibuat. Silakan login.", nil)
}

// ForgotPassword always answers success for well-formed requests so account
// existence is not revealed.
func (h *HTTPHandler) ForgotPassword(c *gin.Context) {
	var req entity.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	isAdmin, err := h.authService.RequestPasswordReset(ctx, req.Email)
	if err != nil {
		WriteError(c, err)
		return
	}
	OK(c, "Jika email terdaftar, link reset password telah dikirim.", entity.ForgotPasswordData{IsAdmin: isAdmin})
}

func (h *HTTPHandler) ResetPassword(c *gin.Context) {
	var req entity.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.authService.ResetPassword(ctx, req); err != nil {
		WriteError(c, err)
		return
	}
	OK(c, "Password berhasil direset. Silakan login dengan password baru.", nil)
}

func (h *HTTPHandler) ListRoles(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	roles, err := h.authService.ListRoles(ctx)
	if err != nil {
		WriteError(c, err)
		return
	}

	out := make([]entity.RoleSummary, 0, len(roles))
	for _, role := range roles {
		out = append(out, entity.RoleSummary{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
		})
	}
	OK(c, "Daftar role berhasil dimuat", out)
}

func makeUserSummary(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		ID:               user.ID,
		NIP:              user.NIP,
		Username:         user.Username,
		Email:            user.Email,
		FullName:         user.FullName,
		Jabatan:          user.Jabatan,
		Organization:     user.Organization,
		NoTelepon:        user.NoTelepon,
		IsActive:         user.IsActive,
		IsVerified:       user.IsVerified,
		StatusVerifikasi: user.StatusVerifikasi,
		RoleName:         user.RoleName,
		LastActivity:     user.LastActivity,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}
