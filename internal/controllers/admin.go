package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cert-system/internal/services"
	"cert-system/pkg/contextkeys"
	"cert-system/pkg/utils"
)

// AdminController: начальное наполнение, состояние и очистка коллекций.
type AdminController struct {
	service *services.BootstrapService
	timeout time.Duration
	logger  *zap.Logger
}

func NewAdminController(service *services.BootstrapService, timeout time.Duration, logger *zap.Logger) *AdminController {
	return &AdminController{service: service, timeout: timeout, logger: logger}
}

func (ctrl *AdminController) admin(c echo.Context) string {
	login, _ := c.Request().Context().Value(contextkeys.AdminLoginKey).(string)
	return login
}

func (ctrl *AdminController) Bootstrap(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	force, _ := strconv.ParseBool(c.QueryParam("force"))
	result, err := ctrl.service.Bootstrap(reqCtx, force)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	ctrl.logger.Info("Начальное наполнение", zap.String("admin", ctrl.admin(c)), zap.Bool("force", force), zap.Bool("skipped", result.Skipped))
	return utils.SuccessResponse(c, result, "Начальное наполнение выполнено", http.StatusOK)
}

func (ctrl *AdminController) Status(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	report, err := ctrl.service.Status(reqCtx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, report, "Состояние коллекций", http.StatusOK)
}

func (ctrl *AdminController) Clear(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	name := c.Param("name")
	result, err := ctrl.service.Clear(reqCtx, name)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	ctrl.logger.Warn("Коллекция очищена администратором", zap.String("admin", ctrl.admin(c)), zap.String("collection", name))
	return utils.SuccessResponse(c, result, "Очистка выполнена", http.StatusOK)
}
