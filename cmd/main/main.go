package main

import (
	"CRM-Gateway/internal/app/config"
	"CRM-Gateway/internal/app/repository"
	"CRM-Gateway/internal/pkg"

	_ "CRM-Gateway/docs" // Важно: добавляем импорт docs

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title CRM Gateway API
// @version 1.0
// @description Gateway for the client roster UI: search, filters, pagination, import/export over the upstream CRM API

// @contact.name API Support
// @contact.url http://localhost:8080
// @contact.email support@crm-gateway.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

// @tag.name Users
// @tag.description User management and authentication
// @tag.name Roster
// @tag.description Client roster state: search, filters, pagination, row selection
// @tag.name Clients
// @tag.description Client CRUD proxied to the upstream CRM
// @tag.name Providers
// @tag.description Providers for the filter panel
// @tag.name ImportExport
// @tag.description Client import and export
// @tag.name Presets
// @tag.description Saved filter presets and visible columns
func main() {
	router := gin.Default()

	// Загружаем конфигурацию
	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	// Инициализируем репозиторий
	repo, err := repository.NewRepository()
	if err != nil {
		logrus.Fatalf("error initializing repository: %v", err)
	}

	// Создаем приложение с конфигурацией
	application := pkg.NewApp(conf, router, repo)

	// Запускаем приложение
	application.RunApp()
}
