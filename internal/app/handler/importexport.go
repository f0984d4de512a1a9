package handler

import (
	"net/http"

	"CRM-Gateway/internal/app/crm"
	"CRM-Gateway/internal/app/filter"
	"CRM-Gateway/internal/app/middleware"
	"CRM-Gateway/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ImportExportHandler struct {
	api  *crm.API
	repo *repository.Repository
}

func NewImportExportHandler(api *crm.API, repo *repository.Repository) *ImportExportHandler {
	return &ImportExportHandler{
		api:  api,
		repo: repo,
	}
}

type ExportRequest struct {
	Format    string           `json:"format" binding:"required,oneof=excel csv pdf"`
	Selection filter.Selection `json:"selection"`
}

// ImportClients godoc
// @Summary Import clients from file
// @Description Forward an uploaded file to the upstream CRM import endpoint
// @Tags ImportExport
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Client file"
// @Success 200 {object} ds.ImportResult
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /clients/import [post]
func (h *ImportExportHandler) ImportClients(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.Error("Failed to open uploaded file: ", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	result, err := h.api.ImportClients(ctx.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		logrus.Error("Failed to import clients: ", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to import clients"})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// ExportClients godoc
// @Summary Export clients
// @Description Export clients in the requested format with the given filter selection. The file is staged in MinIO, a download URL is returned.
// @Tags ImportExport
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ExportRequest true "Export format and filters"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /clients/export [post]
func (h *ImportExportHandler) ExportClients(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req ExportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	// Фильтры уходят в upstream в той же нормализованной форме, что и список
	query := filter.Normalize(req.Selection)

	data, err := h.api.ExportClients(ctx.Request.Context(), req.Format, query)
	if err != nil {
		logrus.Error("Failed to export clients: ", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to export clients"})
		return
	}

	contentType, _ := crm.ExportContentType(req.Format)
	fileURL, err := h.repo.Export.SaveExportFile(ctx.Request.Context(), userID, req.Format, contentType, data)
	if err != nil {
		logrus.Error("Failed to save export file: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save export file"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"url": fileURL})
}
