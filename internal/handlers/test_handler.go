package handlers

import (
	"net/http"

	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/services"
	"github.com/cetprep/mocktest-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	BaseHandler
	generator services.GeneratorService
	runner    services.RunnerService
	validator *utils.Validator
}

func NewTestHandler(generator services.GeneratorService, runner services.RunnerService, validator *utils.Validator, logger utils.Logger) *TestHandler {
	return &TestHandler{
		BaseHandler: NewBaseHandler(logger),
		generator:   generator,
		runner:      runner,
		validator:   validator,
	}
}

type CreateTestRequest struct {
	Type string `json:"type" validate:"required,test_type"`
}

type StartAttemptRequest struct {
	TestID string `json:"test_id" validate:"required,uuid"`
	UserID string `json:"user_id" validate:"required"`
}

// CreateTest generates a new randomized paper for the requested exam type.
func (h *TestHandler) CreateTest(c *gin.Context) {
	var req CreateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Code: "VALIDATION_FAILURE"})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	testID, err := h.generator.Generate(c.Request.Context(), models.TestType(req.Type))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Test generated successfully",
		Data:    gin.H{"test_id": testID},
	})
}

// GetTest returns the section shapes of a generated paper. Question ids are
// never exposed here; they reach clients only through the attempt state.
func (h *TestHandler) GetTest(c *gin.Context) {
	summary, err := h.generator.GetTest(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: summary})
}

// StartAttempt begins a new attempt against a frozen test.
func (h *TestHandler) StartAttempt(c *gin.Context) {
	var req StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Code: "VALIDATION_FAILURE"})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	attemptID, err := h.runner.Start(c.Request.Context(), req.TestID, req.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Test attempt started",
		Data:    gin.H{"attempt_id": attemptID},
	})
}
