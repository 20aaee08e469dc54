package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cert-system/internal/dto"
	"cert-system/internal/services"
	"cert-system/pkg/utils"
)

type AuthController struct {
	service *services.AuthService
	timeout time.Duration
	logger  *zap.Logger
}

func NewAuthController(service *services.AuthService, timeout time.Duration, logger *zap.Logger) *AuthController {
	return &AuthController{service: service, timeout: timeout, logger: logger}
}

func (ctrl *AuthController) Login(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.LoginDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	tokens, err := ctrl.service.Login(reqCtx, payload)
	if err != nil {
		ctrl.logger.Warn("Неудачная попытка входа", zap.String("login", payload.Login), zap.String("ip", c.RealIP()))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, tokens, "Вход выполнен", http.StatusOK)
}
