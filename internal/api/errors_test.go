package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jalanmon/internal/service"

	"github.com/gin-gonic/gin"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		name     string
		kind     service.Kind
		expected int
	}{
		{"Validation", service.KindValidation, http.StatusBadRequest},
		{"BadRequest", service.KindBadRequest, http.StatusBadRequest},
		{"Unauthorized", service.KindUnauthorized, http.StatusUnauthorized},
		{"Forbidden", service.KindForbidden, http.StatusForbidden},
		{"NotFound", service.KindNotFound, http.StatusNotFound},
		{"Conflict", service.KindConflict, http.StatusConflict},
		{"Internal", service.KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForKind(tt.kind); got != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteErrorDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	WriteError(c, &service.Error{Kind: service.KindUnauthorized, Message: "Pastikan email atau kata sandi yang Anda masukkan sudah sesuai"})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	var response Response
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Status != "error" {
		t.Errorf("expected status error, got %s", response.Status)
	}
	if response.Code != http.StatusUnauthorized {
		t.Errorf("expected code %d, got %d", http.StatusUnauthorized, response.Code)
	}
	if response.Message != "Pastikan email atau kata sandi yang Anda masukkan sudah sesuai" {
		t.Errorf("unexpected message: %s", response.Message)
	}
}

func TestWriteErrorHidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)

	WriteError(c, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	var response Response
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Message != "Terjadi kesalahan pada server" {
		t.Errorf("internal cause must not leak, got message %q", response.Message)
	}
}

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, "Login berhasil", gin.H{"token_type": "bearer"})

	var response Response
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Status != "success" || response.Code != http.StatusOK {
		t.Errorf("unexpected envelope: %+v", response)
	}
	if response.Data == nil {
		t.Error("expected data in envelope")
	}
}

func TestListEnvelopeCarriesPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OKList(c, "ok", []string{}, 2, 25, 120)

	var response Response
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Page == nil || *response.Page != 2 {
		t.Error("expected page 2")
	}
	if response.Limit == nil || *response.Limit != 25 {
		t.Error("expected limit 25")
	}
	if response.Total == nil || *response.Total != 120 {
		t.Error("expected total 120")
	}
}
