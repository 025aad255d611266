package handlers

import (
	"net/http"

	"github.com/cetprep/mocktest-service/internal/services"
	"github.com/cetprep/mocktest-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	BaseHandler
	importer services.ImportService
}

func NewQuestionHandler(importer services.ImportService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: NewBaseHandler(logger),
		importer:    importer,
	}
}

// ImportQuestions loads an uploaded XLSX workbook into the question bank.
func (h *QuestionHandler) ImportQuestions(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "missing file upload", Code: "VALIDATION_FAILURE"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "cannot read uploaded file", Code: "VALIDATION_FAILURE"})
		return
	}
	defer src.Close()

	summary, err := h.importer.ImportQuestions(c.Request.Context(), src)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Import finished",
		Data:    summary,
	})
}
