package handler

import (
	"net/http"
	"strconv"

	"CRM-Gateway/internal/app/filter"
	"CRM-Gateway/internal/app/middleware"
	"CRM-Gateway/internal/app/repository"
	"CRM-Gateway/internal/app/roster"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PresetHandler struct {
	repo     *repository.Repository
	registry *roster.Registry
}

func NewPresetHandler(repo *repository.Repository, registry *roster.Registry) *PresetHandler {
	return &PresetHandler{
		repo:     repo,
		registry: registry,
	}
}

type SavePresetRequest struct {
	Name      string           `json:"name" binding:"required"`
	Selection filter.Selection `json:"selection"`
}

type SaveColumnsRequest struct {
	Columns []string `json:"columns" binding:"required,min=1"`
}

// GetPresets godoc
// @Summary Get saved filter presets
// @Tags Presets
// @Security BearerAuth
// @Produce json
// @Success 200 {array} ds.FilterPreset
// @Failure 500 {object} map[string]string
// @Router /presets [get]
func (h *PresetHandler) GetPresets(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	presets, err := h.repo.Preset.GetPresets(userID)
	if err != nil {
		logrus.Error("Failed to get presets: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get presets"})
		return
	}

	ctx.JSON(http.StatusOK, presets)
}

// SavePreset godoc
// @Summary Save a filter preset
// @Tags Presets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SavePresetRequest true "Preset name and filter selection"
// @Success 201 {object} ds.FilterPreset
// @Failure 400 {object} map[string]string
// @Router /presets [post]
func (h *PresetHandler) SavePreset(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req SavePresetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	preset, err := h.repo.Preset.SavePreset(userID, req.Name, req.Selection)
	if err != nil {
		logrus.Error("Failed to save preset: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preset"})
		return
	}

	ctx.JSON(http.StatusCreated, preset)
}

// DeletePreset godoc
// @Summary Delete a filter preset
// @Tags Presets
// @Security BearerAuth
// @Produce json
// @Param id path int true "Preset ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /presets/{id} [delete]
func (h *PresetHandler) DeletePreset(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preset id"})
		return
	}

	if err := h.repo.Preset.DeletePreset(userID, uint(id)); err != nil {
		logrus.Error("Failed to delete preset: ", err)
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Preset deleted successfully"})
}

// ApplyPreset godoc
// @Summary Apply a saved filter preset to the roster
// @Description Restores the preset selection and applies it as the active filters, resets to page 1
// @Tags Presets
// @Security BearerAuth
// @Produce json
// @Param id path int true "Preset ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /presets/{id}/apply [post]
func (h *PresetHandler) ApplyPreset(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preset id"})
		return
	}

	preset, err := h.repo.Preset.GetPreset(userID, uint(id))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
		return
	}

	ctrl := h.registry.Get(userID)
	ctrl.ApplyFilters(repository.PresetSelection(preset))

	ctx.JSON(http.StatusOK, gin.H{
		"filters":    ctrl.ActiveFilters(),
		"pagination": ctrl.PageInfo(),
	})
}

// GetColumns godoc
// @Summary Get visible table columns
// @Tags Presets
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /columns [get]
func (h *PresetHandler) GetColumns(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	columns, err := h.repo.Preset.GetColumns(userID)
	if err != nil {
		logrus.Error("Failed to get columns: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get columns"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"columns": columns})
}

// SaveColumns godoc
// @Summary Save visible table columns
// @Description At least one column must stay visible
// @Tags Presets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SaveColumnsRequest true "Visible columns"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /columns [put]
func (h *PresetHandler) SaveColumns(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req SaveColumnsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := h.repo.Preset.SaveColumns(userID, req.Columns); err != nil {
		logrus.Error("Failed to save columns: ", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Columns saved successfully"})
}
