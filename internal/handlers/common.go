package handlers

import (
	"errors"
	"net/http"

	"github.com/cetprep/mocktest-service/internal/services"
	"github.com/cetprep/mocktest-service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response.
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER =====

// BaseHandler provides common logging and error translation for handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// HandleServiceError maps the service error taxonomy onto HTTP statuses.
// Every core operation surfaces either a concrete result or exactly one
// error classification.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors

	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error(), Code: "NOT_FOUND"})
	case errors.As(err, &validationErrs):
		details := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, fe.Error())
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "validation failed", Details: details, Code: "VALIDATION_FAILURE"})
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error(), Code: "VALIDATION_FAILURE"})
	case services.IsInsufficientPool(err):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error(), Code: "INSUFFICIENT_QUESTION_POOL"})
	case services.IsPersistence(err):
		h.logger.LogError(err, "Persistence failure", "path", c.Request.URL.Path)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "storage unavailable, please retry", Code: "PERSISTENCE_FAILURE"})
	default:
		h.logger.LogError(err, "Unhandled service error", "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error", Code: "INTERNAL"})
	}
}

// HealthCheck is a trivial liveness endpoint.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
