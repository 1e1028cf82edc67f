package pkg

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simp-lee/agencyhub/internal/domain"
)

// Response is the standard JSON envelope for API responses.
type Response struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    any              `json:"data"`
	Meta    *domain.PageMeta `json:"meta,omitempty"`
}

// ValidationErrorResponse is the JSON envelope for validation error responses.
type ValidationErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Validator is implemented by request DTOs that check their own fields.
type Validator interface {
	Validate() error
}

// Success sends a 200 JSON response with the given data.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "success",
		Data:    data,
	})
}

// Created sends a 201 JSON response with the given data.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Page sends a 200 JSON response for a paginated list: the items become
// data and the pagination metadata is lifted into meta.
func Page[T any](c *gin.Context, page *domain.PageResult[T]) {
	meta := page.Meta
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "success",
		Data:    page.Items,
		Meta:    &meta,
	})
}

// Error sends a JSON error response. If err is a *domain.AppError, its code is
// mapped to the appropriate HTTP status; otherwise 500 is returned. Validation
// errors carrying field details are sent as a ValidationErrorResponse.
func Error(c *gin.Context, err error) {
	status := domain.HTTPStatusCode(err)

	var appErr *domain.AppError
	msg := "internal error"
	if errors.As(err, &appErr) {
		msg = appErr.Message
		if appErr.Code == domain.CodeValidation && len(appErr.Fields) > 0 {
			c.JSON(status, ValidationErrorResponse{
				Success: false,
				Message: appErr.Message,
				Errors:  appErr.Fields,
			})
			return
		}
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
	}

	c.JSON(status, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

// BindJSON decodes the request body into obj and, when obj implements
// Validator, validates it. On failure it sends a 400 response and returns false.
// Usage in handlers:
//
//	if !pkg.BindJSON(c, &req) { return }
func BindJSON(c *gin.Context, obj any) bool {
	if c.Request.Body == nil {
		Error(c, domain.NewAppError(domain.CodeValidation, "request body is required", nil))
		return false
	}
	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(obj); err != nil {
		if errors.Is(err, io.EOF) {
			Error(c, domain.NewAppError(domain.CodeValidation, "request body is required", nil))
			return false
		}
		Error(c, decodeError(err))
		return false
	}
	if v, ok := obj.(Validator); ok {
		if err := v.Validate(); err != nil {
			Error(c, err)
			return false
		}
	}
	return true
}

// decodeError turns a JSON decoding failure into a validation error naming
// the offending field when the decoder reports one.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewValidationError(map[string]string{
			typeErr.Field: "Must be of type " + typeErr.Type.String(),
		})
	}
	return domain.NewAppError(domain.CodeValidation, "malformed JSON body", nil)
}

// ParseID reads the :id path parameter and checks it is a UUID.
func ParseID(c *gin.Context) (string, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", domain.NewAppError(domain.CodeValidation, "invalid id", nil)
	}
	return id.String(), nil
}
