package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cert-system/internal/dto"
	"cert-system/internal/entities"
	"cert-system/internal/services"
	"cert-system/pkg/utils"
)

// PreferencesController хранит настройки клиента, указанного в X-Client-ID.
type PreferencesController struct {
	service *services.PreferencesService
	timeout time.Duration
	logger  *zap.Logger
}

func NewPreferencesController(service *services.PreferencesService, timeout time.Duration, logger *zap.Logger) *PreferencesController {
	return &PreferencesController{service: service, timeout: timeout, logger: logger}
}

func (ctrl *PreferencesController) Get(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	return utils.SuccessResponse(c, ctrl.service.Get(reqCtx, utils.ClientID(c)), "Настройки получены", http.StatusOK)
}

func (ctrl *PreferencesController) SetLogoSize(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.UpdateLogoSizeDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	clientID := utils.ClientID(c)
	if err := ctrl.service.SetLogoSize(reqCtx, clientID, entities.LogoSize(payload.LogoSize)); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, ctrl.service.Get(reqCtx, clientID), "Размер логотипа сохранён", http.StatusOK)
}
