package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cert-system/internal/controllers"
	"cert-system/internal/export"
	"cert-system/internal/repositories"
	"cert-system/internal/services"
	"cert-system/pkg/config"
	"cert-system/pkg/filestorage"
	"cert-system/pkg/middleware"
	"cert-system/pkg/service"
)

// Deps содержит внешние зависимости роутера.
type Deps struct {
	Store       *repositories.Store
	Cache       repositories.CacheRepositoryInterface
	FileStorage filestorage.FileStorageInterface
	JWT         service.JWTService
	Config      *config.Config
	Logger      *zap.Logger
}

func InitRouter(e *echo.Echo, deps Deps) {
	logger := deps.Logger
	cfg := deps.Config
	timeout := cfg.Server.RequestTimeout
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(deps.JWT, logger)
	renderer := export.NewPDFRenderer(logger)

	// --- 1. СЕРВИСЫ ---
	preferenceService := services.NewPreferencesService(deps.Cache, logger)
	selectionService := services.NewSelectionService(deps.Cache, logger)
	logoService := services.NewLogoService(deps.FileStorage, preferenceService, logger)
	resolver := services.NewReferenceResolver(deps.Store)
	templateService := services.NewPhaseTemplateService(deps.Store.PhaseTemplates, deps.Store.TxManager, logger)
	deliveryService := services.NewWorkDeliveryService(deps.Store, templateService, resolver, preferenceService, logoService,
		renderer, cfg.Documents.DateFormat, logger)
	certificateService := services.NewCertificateService(deps.Store, resolver, preferenceService, logoService,
		renderer, cfg.Documents.DateFormat, logger)
	bootstrapService := services.NewBootstrapService(deps.Store, logger)
	authService := services.NewAuthService(cfg.Admin, deps.JWT, logger)

	// --- 2. КОНТРОЛЛЕРЫ ---
	templateCtrl := controllers.NewPhaseTemplateController(templateService, timeout, logger)
	deliveryCtrl := controllers.NewWorkDeliveryController(deliveryService, selectionService, timeout, logger)
	certificateCtrl := controllers.NewCertificateController(certificateService, selectionService, timeout, logger)
	logoCtrl := controllers.NewLogoController(logoService, timeout, logger)
	preferencesCtrl := controllers.NewPreferencesController(preferenceService, timeout, logger)
	selectionCtrl := controllers.NewSelectionController(selectionService, timeout, logger)
	authCtrl := controllers.NewAuthController(authService, timeout, logger)
	adminCtrl := controllers.NewAdminController(bootstrapService, timeout, logger)

	// --- 3. РОУТЕРЫ ---
	runCatalogRouter(api, deps.Store, timeout, logger)
	runPhaseTemplateRouter(api, templateCtrl)
	runDeliveryRouter(api, deliveryCtrl)
	runCertificateRouter(api, certificateCtrl)

	api.GET("/logos", logoCtrl.List)
	api.POST("/logos", logoCtrl.Upload)
	api.DELETE("/logos", logoCtrl.Delete)

	api.GET("/preferences", preferencesCtrl.Get)
	api.PUT("/preferences/logo-size", preferencesCtrl.SetLogoSize)

	api.POST("/selections/:session/generation", selectionCtrl.Next)

	api.POST("/auth/login", authCtrl.Login)

	adminGroup := api.Group("/admin", authMW.Auth)
	runAdminRouter(adminGroup, adminCtrl, templateCtrl)

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}
