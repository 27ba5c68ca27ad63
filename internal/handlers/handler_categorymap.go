package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/orgbooks-dev/orgbooks/internal/core/ports/services"
	"github.com/orgbooks-dev/orgbooks/internal/dto"
	"github.com/orgbooks-dev/orgbooks/internal/middleware"
)

type categoryMapHandler struct {
	mapService portssvc.CategoryMapSvcFacade
}

func newCategoryMapHandler(ms portssvc.CategoryMapSvcFacade) *categoryMapHandler {
	return &categoryMapHandler{mapService: ms}
}

// registerCategoryMapRoutes registers routes for the category offset map.
func registerCategoryMapRoutes(rg *gin.RouterGroup, mapService portssvc.CategoryMapSvcFacade) {
	h := newCategoryMapHandler(mapService)

	categoryMap := rg.Group("/category-map")
	{
		categoryMap.GET("", h.getMap)
		categoryMap.PUT("", h.saveMap)
	}
}

// getMap godoc
// @Summary Get the category offset-account map
// @Description Returns the mapping used to pre-fill posting targets for imports
// @Tags category-map
// @Produce  json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /category-map [get]
func (h *categoryMapHandler) getMap(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	mappings, err := h.mapService.GetMap(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve category map")
		return
	}
	c.JSON(http.StatusOK, mappings)
}

// saveMap godoc
// @Summary Save entries of the category offset-account map
// @Description Writes the given entries, last write wins per category
// @Tags category-map
// @Accept  json
// @Param   map body dto.SaveCategoryMapRequest true "Mappings"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input or unknown account"
// @Security BearerAuth
// @Router /category-map [put]
func (h *categoryMapHandler) saveMap(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveCategoryMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveCategoryMap", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.mapService.SaveMap(c.Request.Context(), req.Mappings); err != nil {
		respondServiceError(c, logger, err, "Failed to save category map")
		return
	}
	c.Status(http.StatusNoContent)
}
