package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cert-system/internal/dto"
	"cert-system/internal/entities"
	"cert-system/internal/services"
	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/utils"
)

type WorkDeliveryController struct {
	service    *services.WorkDeliveryService
	selections *services.SelectionService
	timeout    time.Duration
	logger     *zap.Logger
}

func NewWorkDeliveryController(service *services.WorkDeliveryService, selections *services.SelectionService, timeout time.Duration, logger *zap.Logger) *WorkDeliveryController {
	return &WorkDeliveryController{service: service, selections: selections, timeout: timeout, logger: logger}
}

func (ctrl *WorkDeliveryController) respond(c echo.Context, d *entities.WorkDelivery, message string, code int) error {
	return utils.SuccessResponse(c, ctrl.service.ToDTO(d), message, code)
}

func (ctrl *WorkDeliveryController) List(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	filter := utils.ParseFilterFromQuery(c.QueryParams())
	items, total, err := ctrl.service.List(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	list := make([]dto.WorkDeliveryDTO, 0, len(items))
	for i := range items {
		list = append(list, ctrl.service.ToDTO(&items[i]))
	}
	return utils.SuccessListResponse(c, list, "Список поставок получен", total, filter)
}

func (ctrl *WorkDeliveryController) Find(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	d, err := ctrl.service.Find(reqCtx, c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, d, "Поставка найдена", http.StatusOK)
}

func (ctrl *WorkDeliveryController) Create(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.DeliverySelectionDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	d, err := ctrl.service.Create(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, d, "Поставка создана", http.StatusCreated)
}

// checkGeneration отклоняет ответ на устаревший выбор.
func checkGeneration(c echo.Context, selections *services.SelectionService) (int64, error) {
	session := c.Request().Header.Get("X-Selection-Session")
	if session == "" {
		return 0, nil
	}
	generation, err := strconv.ParseInt(c.Request().Header.Get("X-Selection-Generation"), 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequestError("Неверный заголовок X-Selection-Generation")
	}
	if err := selections.Check(c.Request().Context(), session, generation); err != nil {
		return 0, err
	}
	return generation, nil
}

func (ctrl *WorkDeliveryController) Preview(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.DeliverySelectionDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	generation, err := checkGeneration(c, ctrl.selections)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	preview, _, err := ctrl.service.Preview(reqCtx, utils.ClientID(c), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	// выбор мог смениться, пока строилась проекция
	if _, err := checkGeneration(c, ctrl.selections); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	preview.Generation = generation
	return utils.SuccessResponse(c, preview, "Предпросмотр поставки", http.StatusOK)
}

func (ctrl *WorkDeliveryController) PreviewPDF(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.DeliverySelectionDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	data, filename, err := ctrl.service.PreviewPDF(reqCtx, utils.ClientID(c), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return sendFile(c, data, mimePDF, filename)
}

func (ctrl *WorkDeliveryController) PDF(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	data, filename, err := ctrl.service.RenderPDF(reqCtx, utils.ClientID(c), c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return sendFile(c, data, mimePDF, filename)
}

func (ctrl *WorkDeliveryController) Export(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	data, err := ctrl.service.ExportXLSX(reqCtx, utils.ParseFilterFromQuery(c.QueryParams()))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return sendFile(c, data, mimeXLSX, "deliveries-"+time.Now().Format("2006-01-02")+".xlsx")
}

func (ctrl *WorkDeliveryController) UpdateStatus(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.UpdateDeliveryStatusDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	d, err := ctrl.service.UpdateStatus(reqCtx, c.Param("id"), entities.DeliveryStatus(payload.Status))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, d, "Статус поставки обновлён", http.StatusOK)
}

func (ctrl *WorkDeliveryController) UpdateNotes(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.UpdateNotesDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	d, err := ctrl.service.UpdateNotes(reqCtx, c.Param("id"), payload.Notes)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, d, "Заметки поставки обновлены", http.StatusOK)
}

func (ctrl *WorkDeliveryController) Delete(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	if err := ctrl.service.Delete(reqCtx, c.Param("id")); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Поставка удалена", http.StatusOK)
}

// -----------------------------------------------------------
// ЭТАПЫ
// -----------------------------------------------------------

func (ctrl *WorkDeliveryController) AddPhase(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.PhaseInputDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	d, err := ctrl.service.AddPhase(reqCtx, c.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, d, "Этап добавлен", http.StatusOK)
}

func (ctrl *WorkDeliveryController) RemovePhase(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	number, err := phaseNumberParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	d, err := ctrl.service.RemovePhase(reqCtx, c.Param("id"), number)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, d, "Этап удалён", http.StatusOK)
}

func (ctrl *WorkDeliveryController) EditPhase(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	number, err := phaseNumberParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	var payload dto.EditPhaseDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	d, err := ctrl.service.EditPhase(reqCtx, c.Param("id"), number, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, d, "Этап изменён", http.StatusOK)
}

func (ctrl *WorkDeliveryController) MovePhase(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	number, err := phaseNumberParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	var payload dto.MovePhaseDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	d, err := ctrl.service.MovePhase(reqCtx, c.Param("id"), number, entities.MoveDirection(payload.Direction))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, d, "Этап перемещён", http.StatusOK)
}

func (ctrl *WorkDeliveryController) TogglePhase(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	number, err := phaseNumberParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	var payload dto.TogglePhaseDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	d, err := ctrl.service.TogglePhase(reqCtx, c.Param("id"), number, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, d, "Отметка этапа обновлена", http.StatusOK)
}
