package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope every endpoint returns. Status is "success"
// or "error", Code repeats the HTTP status code for clients that lose it
// behind proxies. Listing endpoints additionally carry page, limit and total.
type Response struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
	Page    *int   `json:"page,omitempty"`
	Limit   *int   `json:"limit,omitempty"`
	Total   *int64 `json:"total,omitempty"`
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// OKList writes a 200 success envelope with pagination metadata.
func OKList(c *gin.Context, message string, data any, page, limit int, total int64) {
	c.JSON(http.StatusOK, Response{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
		Page:    &page,
		Limit:   &limit,
		Total:   &total,
	})
}

// Fail writes an error envelope with the given HTTP status.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Status:  "error",
		Code:    status,
		Message: message,
	})
}

// FailWithErrors writes an error envelope carrying field-level details.
func FailWithErrors(c *gin.Context, status int, message string, details any) {
	c.JSON(status, Response{
		Status:  "error",
		Code:    status,
		Message: message,
		Errors:  details,
	})
}

// AbortFail writes an error envelope and stops the handler chain.
func AbortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{
		Status:  "error",
		Code:    status,
		Message: message,
	})
}
