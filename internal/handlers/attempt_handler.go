package handlers

import (
	"net/http"

	"github.com/cetprep/mocktest-service/internal/services"
	"github.com/cetprep/mocktest-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	BaseHandler
	runner    services.RunnerService
	validator *utils.Validator
}

func NewAttemptHandler(runner services.RunnerService, validator *utils.Validator, logger utils.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler: NewBaseHandler(logger),
		runner:      runner,
		validator:   validator,
	}
}

type SubmitResponseRequest struct {
	QuestionID     string `json:"question_id" validate:"required,uuid"`
	OptionPosition int    `json:"option_position" validate:"required,min=1,max=4"`
}

// GetState returns the attempt's current section view. Polling this endpoint
// is also what enforces section timeouts server-side.
func (h *AttemptHandler) GetState(c *gin.Context) {
	state, err := h.runner.GetState(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: state})
}

// SubmitResponse autosaves a single answer.
func (h *AttemptHandler) SubmitResponse(c *gin.Context) {
	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Code: "VALIDATION_FAILURE"})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.runner.SubmitResponse(c.Request.Context(), c.Param("id"), req.QuestionID, req.OptionPosition); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Saved"})
}

// SubmitSection is the explicit section-boundary transition.
func (h *AttemptHandler) SubmitSection(c *gin.Context) {
	if err := h.runner.AdvanceSection(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Section submitted"})
}
