package api

import (
	"net/http"

	"jalanmon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// statusForKind maps a workflow error kind to its HTTP status. Conflicts map
// to 409 so clients can tell "taken" apart from malformed input.
func statusForKind(kind service.Kind) int {
	switch kind {
	case service.KindValidation, service.KindBadRequest:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError translates a workflow error into an error envelope. Internal
// errors are logged with their cause and answered with a generic message so
// nothing leaks to the client.
func WriteError(c *gin.Context, err error) {
	kind := service.KindOf(err)
	status := statusForKind(kind)

	if kind == service.KindInternal {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
		Fail(c, status, "Terjadi kesalahan pada server")
		return
	}

	Fail(c, status, err.Error())
}

// InvalidPayload answers a request whose body failed binding.
func InvalidPayload(c *gin.Context, err error) {
	FailWithErrors(c, http.StatusBadRequest, "Data yang dikirim tidak valid", gin.H{
		"detail": err.Error(),
	})
}
