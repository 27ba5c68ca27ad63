package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/orgbooks-dev/orgbooks/internal/core/ports/services"
	"github.com/orgbooks-dev/orgbooks/internal/dto"
	"github.com/orgbooks-dev/orgbooks/internal/middleware"
)

// allowedImportExtensions is the upload allowlist. Extensions here may still
// be rejected downstream when no parser is registered for them.
var allowedImportExtensions = map[string]struct{}{
	"csv":     {},
	"qif":     {},
	"xlsx":    {},
	"xls":     {},
	"qbo":     {},
	"qfx":     {},
	"ofx":     {},
	"iif":     {},
	"gnucash": {},
}

// importHandler handles statement file uploads. Upload validation failures
// respond with the {"success": false, "error": ...} body shape.
type importHandler struct {
	importService  portssvc.ImportSvcFacade
	maxUploadBytes int64
}

func newImportHandler(is portssvc.ImportSvcFacade, maxUploadBytes int64) *importHandler {
	return &importHandler{importService: is, maxUploadBytes: maxUploadBytes}
}

// registerImportRoutes registers the import preview/commit routes. The extra
// middleware (rate limiting) applies to the upload route only.
func registerImportRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvcFacade, maxUploadBytes int64, uploadMiddleware ...gin.HandlerFunc) {
	h := newImportHandler(importService, maxUploadBytes)

	imports := rg.Group("/imports")
	{
		imports.POST("", append(uploadMiddleware, h.previewImport)...)
		imports.POST("/commit", h.commitImport)
	}
}

func uploadError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// previewImport godoc
// @Summary Upload and preview a statement file
// @Description Parses the uploaded file, flags likely duplicates, and stages the rows for commit
// @Tags imports
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Statement file"
// @Param   accountID formData string true "Cash/bank account the statement belongs to"
// @Success 200 {object} dto.ImportPreviewResponse
// @Failure 400 {object} map[string]interface{} "Missing file, disallowed extension, or parse failure"
// @Failure 413 {object} map[string]interface{} "File exceeds the size limit"
// @Security BearerAuth
// @Router /imports [post]
func (h *importHandler) previewImport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		uploadError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	accountID := c.PostForm("accountID")
	if accountID == "" {
		uploadError(c, http.StatusBadRequest, "accountID is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Missing file in import upload", slog.String("error", err.Error()))
		uploadError(c, http.StatusBadRequest, "a statement file is required")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		uploadError(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds the %d byte limit", h.maxUploadBytes))
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	if _, ok := allowedImportExtensions[ext]; !ok {
		uploadError(c, http.StatusBadRequest, fmt.Sprintf("file type %q is not allowed", ext))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		uploadError(c, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}
	defer file.Close()

	logger.Info("Received import upload",
		slog.String("file_name", fileHeader.Filename),
		slog.Int64("size_bytes", fileHeader.Size),
		slog.String("account_id", accountID))

	preview, err := h.importService.Preview(c.Request.Context(), ext, fileHeader.Filename, file, accountID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to preview import")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// commitImport godoc
// @Summary Commit a previewed import batch
// @Description Converts accepted staged rows into posted transactions
// @Tags imports
// @Accept  json
// @Produce  json
// @Param   commit body dto.CommitImportRequest true "Per-row decisions and edits"
// @Success 200 {object} dto.ImportCommitResponse
// @Failure 400 {object} map[string]string "Invalid input or row not committable"
// @Failure 409 {object} map[string]string "Batch already committed"
// @Security BearerAuth
// @Router /imports/commit [post]
func (h *importHandler) commitImport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CommitImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CommitImport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.importService.Commit(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to commit import")
		return
	}
	c.JSON(http.StatusOK, result)
}
