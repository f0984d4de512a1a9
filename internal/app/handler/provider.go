package handler

import (
	"net/http"

	"CRM-Gateway/internal/app/crm"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProviderHandler struct {
	api *crm.API
}

func NewProviderHandler(api *crm.API) *ProviderHandler {
	return &ProviderHandler{
		api: api,
	}
}

// GetProviders godoc
// @Summary Get providers grouped by letter
// @Description Get providers for the filter panel, grouped by first letter with optional case-insensitive search
// @Tags Providers
// @Security BearerAuth
// @Produce json
// @Param search query string false "Filter providers by name substring"
// @Success 200 {array} ds.ProviderGroup
// @Failure 502 {object} map[string]string
// @Router /providers [get]
func (h *ProviderHandler) GetProviders(ctx *gin.Context) {
	providers, err := h.api.GetProviders(ctx.Request.Context())
	if err != nil {
		logrus.Error("Failed to get providers: ", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get providers"})
		return
	}

	groups := crm.GroupProviders(providers, ctx.Query("search"))
	ctx.JSON(http.StatusOK, groups)
}
