package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"cert-system/internal/routes"
	"cert-system/internal/storage"
	"cert-system/pkg/config"
	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/filestorage"
	applogger "cert-system/pkg/logger"
	appmiddleware "cert-system/pkg/middleware"
	"cert-system/pkg/service"
	"cert-system/pkg/utils"
	"cert-system/pkg/validation"
)

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer func() { _ = logger.Sync() }()

	e := echo.New()
	e.HideBanner = true

	// 2. Middleware
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmiddleware.InjectLogger(logger))
	e.Use(appmiddleware.RequestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization,
			"X-Client-ID", "X-Selection-Session", "X-Selection-Generation",
		},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))

	// 3. Валидатор
	e.Validator = validation.New()

	// 4. Файлы
	absPath, err := filepath.Abs(cfg.Storage.UploadsDir)
	if err != nil {
		logger.Fatal("не удалось получить абсолютный путь к uploads", zap.Error(err))
	}
	fileStorage, err := filestorage.NewLocalFileStorage(absPath)
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	e.Static("/uploads", absPath)

	// 5. Хранилище
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Ошибка подключения к хранилищу", zap.Error(err), zap.String("driver", cfg.Storage.Driver))
	}
	defer backend.Close()

	// 6. Роуты
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)
	routes.InitRouter(e, routes.Deps{
		Store:       backend.Store,
		Cache:       backend.Cache,
		FileStorage: fileStorage,
		JWT:         jwtSvc,
		Config:      cfg,
		Logger:      logger,
	})

	// 7. Сервер
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port), zap.String("driver", cfg.Storage.Driver))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", zap.Error(err))
	}
}
