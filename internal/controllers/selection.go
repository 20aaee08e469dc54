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

type SelectionController struct {
	service *services.SelectionService
	timeout time.Duration
	logger  *zap.Logger
}

func NewSelectionController(service *services.SelectionService, timeout time.Duration, logger *zap.Logger) *SelectionController {
	return &SelectionController{service: service, timeout: timeout, logger: logger}
}

// Next выдаёт новое поколение выбора; клиент передаёт его в X-Selection-Generation.
func (ctrl *SelectionController) Next(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	session := c.Param("session")
	generation, err := ctrl.service.Next(reqCtx, session)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, dto.GenerationDTO{Session: session, Generation: generation}, "Поколение выбора выдано", http.StatusOK)
}
