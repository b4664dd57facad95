package api

import (
	"net/http"
	"strconv"
	"strings"

	"jalanmon/internal/entity"

	"github.com/gin-gonic/gin"
)

func pathUserID(c *gin.Context) (uint, bool) {
	idValue := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idValue, 10, 64)
	if err != nil || id == 0 {
		Fail(c, http.StatusBadRequest, "ID user tidak valid")
		return 0, false
	}
	return uint(id), true
}

func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var query entity.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		Fail(c, http.StatusBadRequest, "Parameter query tidak valid")
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	users, total, err := h.authService.ListUsers(ctx, &query)
	if err != nil {
		WriteError(c, err)
		return
	}

	out := make([]entity.UserSummary, 0, len(users))
	for idx := range users {
		out = append(out, makeUserSummary(&users[idx]))
	}
	OKList(c, "Daftar user berhasil dimuat", out, query.Page, query.Limit, total)
}

func (h *HTTPHandler) PendingUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	users, total, err := h.authService.PendingUsers(ctx, limit, (page-1)*limit)
	if err != nil {
		WriteError(c, err)
		return
	}

	out := make([]entity.UserSummary, 0, len(users))
	for idx := range users {
		out = append(out, makeUserSummary(&users[idx]))
	}
	OKList(c, "Daftar user pending berhasil dimuat", out, page, limit, total)
}

func (h *HTTPHandler) GetUser(c *gin.Context) {
	id, ok := pathUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.GetUser(ctx, id)
	if err != nil {
		WriteError(c, err)
		return
	}
	OK(c, "Detail user berhasil dimuat", makeUserSummary(user))
}

func (h *HTTPHandler) CreateUser(c *gin.Context) {
	admin := CurrentUser(c)

	var req entity.AdminUserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.CreateUserByAdmin(ctx, admin, req)
	if err != nil {
		WriteError(c, err)
		return
	}
	Created(c, "User berhasil dibuat", makeUserSummary(user))
}

func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	admin := CurrentUser(c)
	id, ok := pathUserID(c)
	if !ok {
		return
	}

	var req entity.AdminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.UpdateUserByAdmin(ctx, admin, id, req)
	if err != nil {
		WriteError(c, err)
		return
	}
	OK(c, "User berhasil diperbarui", makeUserSummary(user))
}

func (h *HTTPHandler) ToggleUserActive(c *gin.Context) {
	admin := CurrentUser(c)
	id, ok := pathUserID(c)
	if !ok {
		return
	}

	var req entity.ToggleUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.ToggleUserActive(ctx, admin, id, *req.IsActive)
	if err != nil {
		WriteError(c, err)
		return
	}

	message := "User berhasil diaktifkan"
	if !user.IsActive {
		message = "User berhasil dinonaktifkan"
	}
	OK(c, message, makeUserSummary(user))
}

func (h *HTTPHandler) ChangeUserRole(c *gin.Context) {
	admin := CurrentUser(c)
	id, ok := pathUserID(c)
	if !ok {
		return
	}

	var req entity.RoleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.ChangeUserRole(ctx, admin, id, req.RoleName)
	if err != nil {
		WriteError(c, err)
		return
	}
	OK(c, "Role user berhasil diubah", makeUserSummary(user))
}

func (h *HTTPHandler) VerifyUser(c *gin.Context) {
	admin := CurrentUser(c)
	id, ok := pathUserID(c)
	if !ok {
		return
	}

	var req entity.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.authService.VerifyUser(ctx, admin, id, req)
	if err != nil {
		WriteError(c, err)
		return
	}

	message := "User berhasil disetujui"
	if req.Status == "reject" {
		message = "User berhasil ditolak"
	}
	OK(c, message, makeUserSummary(user))
}
