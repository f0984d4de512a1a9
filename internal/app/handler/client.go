package handler

import (
	"net/http"
	"strconv"

	"CRM-Gateway/internal/app/crm"
	"CRM-Gateway/internal/app/ds"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ClientHandler struct {
	api *crm.API
}

func NewClientHandler(api *crm.API) *ClientHandler {
	return &ClientHandler{
		api: api,
	}
}

type DeleteMultipleRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// GetClient godoc
// @Summary Get client details
// @Description Get client details by ID from the upstream CRM
// @Tags Clients
// @Security BearerAuth
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} ds.Client
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}

	client, err := h.api.GetClient(ctx.Request.Context(), uint(id))
	if err != nil {
		logrus.Error("Failed to get client: ", err)
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	ctx.JSON(http.StatusOK, client)
}

// CreateClient godoc
// @Summary Create client
// @Description Create a new client in the upstream CRM
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ds.ClientInput true "Client data"
// @Success 201 {object} ds.Client
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /clients [post]
func (h *ClientHandler) CreateClient(ctx *gin.Context) {
	var input ds.ClientInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	client, err := h.api.CreateClient(ctx.Request.Context(), input)
	if err != nil {
		logrus.Error("Failed to create client: ", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create client"})
		return
	}

	ctx.JSON(http.StatusCreated, client)
}

// UpdateClient godoc
// @Summary Update client
// @Description Update client fields in the upstream CRM
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param request body ds.ClientInput true "Client fields"
// @Success 200 {object} ds.Client
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /clients/{id} [put]
func (h *ClientHandler) UpdateClient(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}

	var input ds.ClientInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	client, err := h.api.UpdateClient(ctx.Request.Context(), uint(id), input)
	if err != nil {
		logrus.Error("Failed to update client: ", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update client"})
		return
	}

	ctx.JSON(http.StatusOK, client)
}

// DeleteClient godoc
// @Summary Delete client
// @Tags Clients
// @Security BearerAuth
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}

	if err := h.api.DeleteClient(ctx.Request.Context(), uint(id)); err != nil {
		logrus.Error("Failed to delete client: ", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete client"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// DeleteMultipleClients godoc
// @Summary Delete multiple clients
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body DeleteMultipleRequest true "Client IDs"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /clients/delete-multiple [post]
func (h *ClientHandler) DeleteMultipleClients(ctx *gin.Context) {
	var req DeleteMultipleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := h.api.DeleteClients(ctx.Request.Context(), req.IDs); err != nil {
		logrus.Error("Failed to delete clients: ", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete clients"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Clients deleted successfully"})
}
