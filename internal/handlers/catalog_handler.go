package handlers

import (
	"net/http"

	"github.com/cetprep/mocktest-service/internal/services"
	"github.com/cetprep/mocktest-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	BaseHandler
	catalog services.CatalogService
}

func NewCatalogHandler(catalog services.CatalogService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: NewBaseHandler(logger),
		catalog:     catalog,
	}
}

func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.catalog.ListSubjects(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: subjects})
}

func (h *CatalogHandler) ListChapters(c *gin.Context) {
	chapters, err := h.catalog.ListChapters(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: chapters})
}
