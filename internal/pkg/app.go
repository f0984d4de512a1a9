// internal/pkg/app.go
package pkg

import (
	"fmt"

	"CRM-Gateway/internal/app/config"
	"CRM-Gateway/internal/app/crm"
	"CRM-Gateway/internal/app/handler"
	"CRM-Gateway/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type App struct {
	config *config.Config
	router *gin.Engine
	repo   *repository.Repository
	api    *crm.API
}

func NewApp(cfg *config.Config, router *gin.Engine, repo *repository.Repository) *App {
	return &App{
		config: cfg,
		router: router,
		repo:   repo,
		api:    crm.New(cfg.CRMBaseURL, cfg.CRMToken, cfg.CRMTimeout),
	}
}

// RunApp регистрирует маршруты и запускает HTTP сервер
func (a *App) RunApp() {
	handler.RegisterHandlers(a.router, a.repo, a.api)

	// Swagger документация
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addr := fmt.Sprintf("%s:%d", a.config.ServiceHost, a.config.ServicePort)
	logrus.Infof("starting server on %s", addr)

	if err := a.router.Run(addr); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}

	a.repo.Close()
}
