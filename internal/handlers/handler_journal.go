package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/orgbooks-dev/orgbooks/internal/core/ports/services"
	"github.com/orgbooks-dev/orgbooks/internal/dto"
	"github.com/orgbooks-dev/orgbooks/internal/middleware"
)

// journalHandler serves read access to posted journals. Only available when
// the database carries the full double-entry schema.
type journalHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newJournalHandler(ps portssvc.PostingSvcFacade) *journalHandler {
	return &journalHandler{postingService: ps}
}

// registerJournalRoutes registers routes related to journals.
func registerJournalRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newJournalHandler(postingService)

	journals := rg.Group("/journals")
	{
		journals.GET("/:id", h.getJournal)
	}
	rg.GET("/transactions/:id/journals", h.listJournalsForTransaction)
}

// getJournal godoc
// @Summary Get a journal by ID
// @Description Retrieves a posted journal with its lines
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Ledger schema has no journal headers"
// @Security BearerAuth
// @Router /journals/{id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	journal, err := h.postingService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournalsForTransaction godoc
// @Summary List journals posted for a transaction
// @Tags journals
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {array} dto.JournalResponse
// @Failure 409 {object} map[string]string "Ledger schema has no journal headers"
// @Security BearerAuth
// @Router /transactions/{id}/journals [get]
func (h *journalHandler) listJournalsForTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	journals, err := h.postingService.ListJournalsByTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list journals")
		return
	}
	responses := make([]dto.JournalResponse, len(journals))
	for i := range journals {
		responses[i] = dto.ToJournalResponse(&journals[i])
	}
	c.JSON(http.StatusOK, responses)
}
