package handler

import (
	"errors"
	"net/http"
	"strconv"

	"CRM-Gateway/internal/app/filter"
	"CRM-Gateway/internal/app/middleware"
	"CRM-Gateway/internal/app/roster"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RosterHandler struct {
	registry *roster.Registry
}

func NewRosterHandler(registry *roster.Registry) *RosterHandler {
	return &RosterHandler{
		registry: registry,
	}
}

type SearchRequest struct {
	Term string `json:"term"`
}

type PageRequest struct {
	Page int `json:"page" binding:"required,min=1"`
}

// rosterResponse собирает текущее состояние списка для ответа
func (h *RosterHandler) rosterResponse(ctrl *roster.Controller) gin.H {
	return gin.H{
		"clients":    ctrl.Clients(),
		"pagination": ctrl.PageInfo(),
		"selected":   ctrl.Selected(),
		"search":     ctrl.SearchTerm(),
		"filters":    ctrl.ActiveFilters(),
	}
}

// refresh выполняет выборку и формирует ответ. Устаревший ответ не считается
// ошибкой: состоянием владеет более новый запрос, отдаем текущее состояние.
func (h *RosterHandler) refresh(ctx *gin.Context, ctrl *roster.Controller) {
	_, err := ctrl.Refresh(ctx.Request.Context())
	if err != nil && !errors.Is(err, roster.ErrStaleResponse) {
		logrus.Error("Failed to refresh roster: ", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch clients"})
		return
	}

	ctx.JSON(http.StatusOK, h.rosterResponse(ctrl))
}

// controller возвращает контроллер списка текущего пользователя
func (h *RosterHandler) controller(ctx *gin.Context) (*roster.Controller, bool) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, false
	}
	return h.registry.Get(userID), true
}

// GetRoster godoc
// @Summary Get current roster page
// @Description Fetch the current page of clients with active search and filters
// @Tags Roster
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /roster [get]
func (h *RosterHandler) GetRoster(ctx *gin.Context) {
	ctrl, ok := h.controller(ctx)
	if !ok {
		return
	}
	h.refresh(ctx, ctrl)
}

// SetSearch godoc
// @Summary Set search term
// @Description Set the roster search term, resets to page 1
// @Tags Roster
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Search term"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /roster/search [put]
func (h *RosterHandler) SetSearch(ctx *gin.Context) {
	ctrl, ok := h.controller(ctx)
	if !ok {
		return
	}

	var req SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	ctrl.SetSearchTerm(req.Term)
	h.refresh(ctx, ctrl)
}

// ApplyFilters godoc
// @Summary Apply filter selection
// @Description Normalize and apply the filter panel selection, resets to page 1 and clears row selection
// @Tags Roster
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body filter.Selection true "Filter selection"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /roster/filters [put]
func (h *RosterHandler) ApplyFilters(ctx *gin.Context) {
	ctrl, ok := h.controller(ctx)
	if !ok {
		return
	}

	var sel filter.Selection
	if err := ctx.ShouldBindJSON(&sel); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	ctrl.ApplyFilters(sel)
	h.refresh(ctx, ctrl)
}

// SetPage godoc
// @Summary Go to page
// @Description Navigate to a specific page. Requests outside [1, totalPages] are ignored.
// @Tags Roster
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body PageRequest true "Target page"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /roster/page [put]
func (h *RosterHandler) SetPage(ctx *gin.Context) {
	ctrl, ok := h.controller(ctx)
	if !ok {
		return
	}

	var req PageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if !ctrl.SetPage(req.Page) {
		// Выход за диапазон - no-op, отдаем текущее состояние
		ctx.JSON(http.StatusOK, h.rosterResponse(ctrl))
		return
	}
	h.refresh(ctx, ctrl)
}

// NextPage godoc
// @Summary Next page
// @Tags Roster
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /roster/page/next [post]
func (h *RosterHandler) NextPage(ctx *gin.Context) {
	ctrl, ok := h.controller(ctx)
	if !ok {
		return
	}

	if !ctrl.NextPage() {
		ctx.JSON(http.StatusOK, h.rosterResponse(ctrl))
		return
	}
	h.refresh(ctx, ctrl)
}

// PreviousPage godoc
// @Summary Previous page
// @Tags Roster
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /roster/page/previous [post]
func (h *RosterHandler) PreviousPage(ctx *gin.Context) {
	ctrl, ok := h.controller(ctx)
	if !ok {
		return
	}

	if !ctrl.PreviousPage() {
		ctx.JSON(http.StatusOK, h.rosterResponse(ctrl))
		return
	}
	h.refresh(ctx, ctrl)
}

// ToggleRow godoc
// @Summary Toggle row selection
// @Tags Roster
// @Security BearerAuth
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /roster/selection/{id} [post]
func (h *RosterHandler) ToggleRow(ctx *gin.Context) {
	ctrl, ok := h.controller(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}

	ctrl.ToggleRow(uint(id))
	ctx.JSON(http.StatusOK, gin.H{"selected": ctrl.Selected()})
}

// ToggleSelectAll godoc
// @Summary Toggle select-all for the current page
// @Description Selects all rows of the current page, or deselects all when every row is already selected
// @Tags Roster
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /roster/select-all [post]
func (h *RosterHandler) ToggleSelectAll(ctx *gin.Context) {
	ctrl, ok := h.controller(ctx)
	if !ok {
		return
	}

	ctrl.ToggleSelectAll()
	ctx.JSON(http.StatusOK, gin.H{"selected": ctrl.Selected()})
}

// ClearSelection godoc
// @Summary Clear row selection
// @Tags Roster
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /roster/selection [delete]
func (h *RosterHandler) ClearSelection(ctx *gin.Context) {
	ctrl, ok := h.controller(ctx)
	if !ok {
		return
	}

	ctrl.ClearSelection()
	ctx.JSON(http.StatusOK, gin.H{"selected": ctrl.Selected()})
}
