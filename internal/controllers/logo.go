package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cert-system/internal/services"
	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/utils"
)

type LogoController struct {
	service *services.LogoService
	timeout time.Duration
	logger  *zap.Logger
}

func NewLogoController(service *services.LogoService, timeout time.Duration, logger *zap.Logger) *LogoController {
	return &LogoController{service: service, timeout: timeout, logger: logger}
}

func (ctrl *LogoController) List(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	logos, err := ctrl.service.List(reqCtx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, logos, "Логотипы получены", http.StatusOK)
}

// Upload: multipart/form-data, поле "file".
func (ctrl *LogoController) Upload(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, apperrors.NewValidationError("Файл не передан", []string{"file"}), ctrl.logger)
	}
	logo, err := ctrl.service.Upload(reqCtx, utils.ClientID(c), fileHeader)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, logo, "Логотип загружен", http.StatusCreated)
}

func (ctrl *LogoController) Delete(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	path := c.QueryParam("path")
	if path == "" {
		return utils.ErrorResponse(c, apperrors.NewValidationError("Не указан путь логотипа", []string{"path"}), ctrl.logger)
	}
	if err := ctrl.service.Delete(reqCtx, utils.ClientID(c), path); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Логотип удалён", http.StatusOK)
}
