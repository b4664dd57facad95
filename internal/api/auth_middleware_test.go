package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jalanmon/internal/auth"
	"jalanmon/internal/config"
	"jalanmon/internal/entity"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type stubRepo struct {
	user        *entity.DbUser
	roles       []entity.DbRole
	lastTouched uint
}

func (r *stubRepo) CreateUser(_ context.Context, _ *entity.DbUser) error { return nil }

func (r *stubRepo) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) GetUserByEmail(_ context.Context, email string) (*entity.DbUser, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) GetUserByUsername(_ context.Context, username string) (*entity.DbUser, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) GetUserByNIP(_ context.Context, nip string) (*entity.DbUser, error) {
	if r.user != nil && r.user.NIP == nip {
		return r.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) UpdateUser(_ context.Context, _ uint, _ map[string]interface{}) error { return nil }

func (r *stubRepo) IncrementTokenVersion(_ context.Context, _ uint) error { return nil }

func (r *stubRepo) TouchLastActivity(_ context.Context, id uint) error {
	r.lastTouched = id
	return nil
}

func (r *stubRepo) ListUsers(_ context.Context, _ *entity.UserQuery) ([]entity.DbUser, int64, error) {
	return nil, 0, nil
}

func (r *stubRepo) ListPendingUsers(_ context.Context, _, _ int) ([]entity.DbUser, int64, error) {
	return nil, 0, nil
}

func (r *stubRepo) ListRoles(_ context.Context) ([]entity.DbRole, error) { return r.roles, nil }

func (r *stubRepo) CreateRole(_ context.Context, _ *entity.DbRole) error { return nil }

func (r *stubRepo) CreateResetToken(_ context.Context, _ *entity.DbPasswordResetToken) error {
	return nil
}

func (r *stubRepo) GetResetToken(_ context.Context, _ string) (*entity.DbPasswordResetToken, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) SupersedeResetTokens(_ context.Context, _ uint, _ string) error { return nil }

func (r *stubRepo) ConsumeResetToken(_ context.Context, _ uint) (bool, error) { return false, nil }

func middlewareHarness(t *testing.T, repo *stubRepo, sessionMinutes int) (*gin.Engine, *auth.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager, err := auth.NewManager("test-secret", "monitoring-jalan", time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	handler := NewHTTPHandler(config.Config{SessionExpireMinutes: sessionMinutes}, repo, manager, nil)

	r := gin.New()
	r.GET("/protected", handler.AuthMiddleware(), func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			Fail(c, http.StatusInternalServerError, "no user in context")
			return
		}
		OK(c, "ok", gin.H{"username": user.Username})
	})
	r.GET("/admin", handler.AuthMiddleware(), handler.RequireSuperAdmin(), func(c *gin.Context) {
		OK(c, "ok", nil)
	})
	return r, manager
}

func activeUser(role string) *entity.DbUser {
	now := time.Now().UTC()
	return &entity.DbUser{
		ID:           7,
		Username:     "budi",
		Email:        "budi@pupr.go.id",
		IsActive:     true,
		IsVerified:   true,
		RoleName:     &role,
		LastActivity: &now,
		TokenVersion: 3,
	}
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r, _ := middlewareHarness(t, &stubRepo{}, 60)

	if w := doRequest(r, "/protected", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareAcceptsValidTokenAndTouchesActivity(t *testing.T) {
	repo := &stubRepo{user: activeUser(entity.RoleEksekutif)}
	r, manager := middlewareHarness(t, repo, 60)

	token, _, err := manager.GenerateAccessToken("budi", 3)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := doRequest(r, "/protected", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if repo.lastTouched != 7 {
		t.Fatal("expected last activity refresh for the authenticated user")
	}
}

func TestAuthMiddlewareRejectsRevokedTokenVersion(t *testing.T) {
	repo := &stubRepo{user: activeUser(entity.RoleEksekutif)}
	r, manager := middlewareHarness(t, repo, 60)

	// issued before the counter was bumped to 3
	token, _, err := manager.GenerateAccessToken("budi", 2)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if w := doRequest(r, "/protected", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %d", w.Code)
	}
}

func TestAuthMiddlewareRejectsInactiveAccount(t *testing.T) {
	user := activeUser(entity.RoleEksekutif)
	user.IsActive = false
	repo := &stubRepo{user: user}
	r, manager := middlewareHarness(t, repo, 60)

	token, _, err := manager.GenerateAccessToken("budi", 3)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if w := doRequest(r, "/protected", token); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for inactive account, got %d", w.Code)
	}
}

func TestAuthMiddlewareRejectsStaleSession(t *testing.T) {
	user := activeUser(entity.RoleEksekutif)
	stale := time.Now().UTC().Add(-2 * time.Hour)
	user.LastActivity = &stale
	repo := &stubRepo{user: user}
	r, manager := middlewareHarness(t, repo, 60)

	token, _, err := manager.GenerateAccessToken("budi", 3)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if w := doRequest(r, "/protected", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for stale session, got %d", w.Code)
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	repo := &stubRepo{user: activeUser(entity.RoleEksekutif)}
	r, manager := middlewareHarness(t, repo, 60)

	token, _, err := manager.GenerateAccessToken("budi", 3)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if w := doRequest(r, "/admin", token); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", w.Code)
	}

	repo.user = activeUser(entity.RoleSuperAdmin)
	if w := doRequest(r, "/admin", token); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for super admin, got %d", w.Code)
	}
}
