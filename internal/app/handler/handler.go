package handler

import (
	"CRM-Gateway/internal/app/crm"
	"CRM-Gateway/internal/app/middleware"
	"CRM-Gateway/internal/app/repository"
	"CRM-Gateway/internal/app/roster"

	"github.com/gin-gonic/gin"
)

// RegisterHandlers регистрирует все обработчики
func RegisterHandlers(router *gin.Engine, repo *repository.Repository, api *crm.API) {
	apiRouter := router.Group("/api")

	// Создаем хендлеры
	registry := roster.NewRegistry(api)
	rosterHandler := NewRosterHandler(registry)
	clientHandler := NewClientHandler(api)
	providerHandler := NewProviderHandler(api)
	importExportHandler := NewImportExportHandler(api, repo)
	presetHandler := NewPresetHandler(repo, registry)
	userHandler := NewUserHandler(repo)

	// Public routes - доступны без аутентификации
	public := apiRouter.Group("")
	{
		public.POST("/users/login", userHandler.Login)
		public.POST("/users/register", userHandler.Register)
		public.POST("/users/refresh", userHandler.RefreshToken)
	}

	// Protected routes - требуют аутентификации
	protected := apiRouter.Group("")
	protected.Use(middleware.AuthMiddleware(repo))
	{
		// Пользовательские endpoints
		protected.GET("/users/profile", userHandler.GetProfile)
		protected.PUT("/users/profile", userHandler.UpdateProfile)
		protected.PUT("/users/change-password", userHandler.ChangePassword)
		protected.POST("/users/logout", userHandler.Logout)

		// Список клиентов: состояние поиска, фильтров, страниц и выделения
		protected.GET("/roster", rosterHandler.GetRoster)
		protected.PUT("/roster/search", rosterHandler.SetSearch)
		protected.PUT("/roster/filters", rosterHandler.ApplyFilters)
		protected.PUT("/roster/page", rosterHandler.SetPage)
		protected.POST("/roster/page/next", rosterHandler.NextPage)
		protected.POST("/roster/page/previous", rosterHandler.PreviousPage)
		protected.POST("/roster/select-all", rosterHandler.ToggleSelectAll)
		protected.POST("/roster/selection/:id", rosterHandler.ToggleRow)
		protected.DELETE("/roster/selection", rosterHandler.ClearSelection)

		// Поставщики для панели фильтров
		protected.GET("/providers", providerHandler.GetProviders)

		// Импорт/экспорт
		protected.POST("/clients/import", importExportHandler.ImportClients)
		protected.POST("/clients/export", importExportHandler.ExportClients)

		// Сохраненные фильтры и колонки
		protected.GET("/presets", presetHandler.GetPresets)
		protected.POST("/presets", presetHandler.SavePreset)
		protected.DELETE("/presets/:id", presetHandler.DeletePreset)
		protected.POST("/presets/:id/apply", presetHandler.ApplyPreset)
		protected.GET("/columns", presetHandler.GetColumns)
		protected.PUT("/columns", presetHandler.SaveColumns)

		// Просмотр клиентов
		protected.GET("/clients/:id", clientHandler.GetClient)
	}

	// Admin only routes - требуют роли администратора
	admin := apiRouter.Group("")
	admin.Use(middleware.AuthMiddleware(repo), middleware.AdminOnly())
	{
		// Управление клиентами (CRUD через upstream)
		admin.POST("/clients", clientHandler.CreateClient)
		admin.PUT("/clients/:id", clientHandler.UpdateClient)
		admin.DELETE("/clients/:id", clientHandler.DeleteClient)
		admin.POST("/clients/delete-multiple", clientHandler.DeleteMultipleClients)
	}
}
