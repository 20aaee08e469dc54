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

type PhaseTemplateController struct {
	service *services.PhaseTemplateService
	timeout time.Duration
	logger  *zap.Logger
}

func NewPhaseTemplateController(service *services.PhaseTemplateService, timeout time.Duration, logger *zap.Logger) *PhaseTemplateController {
	return &PhaseTemplateController{service: service, timeout: timeout, logger: logger}
}

func (ctrl *PhaseTemplateController) respond(c echo.Context, t *entities.PhaseTemplate, message string, code int) error {
	return utils.SuccessResponse(c, dto.NewPhaseTemplateDTO(*t), message, code)
}

// Eligible: GET /phase-templates?work_type=&building_type=
func (ctrl *PhaseTemplateController) Eligible(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var query dto.PhaseTemplateQueryDTO
	if err := bindAndValidate(c, &query); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	items, err := ctrl.service.Eligible(reqCtx, entities.WorkType(query.WorkType), entities.BuildingType(query.BuildingType))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	list := make([]dto.PhaseTemplateDTO, 0, len(items))
	for _, t := range items {
		list = append(list, dto.NewPhaseTemplateDTO(t))
	}
	return utils.SuccessResponse(c, list, "Шаблоны этапов получены", http.StatusOK)
}

func (ctrl *PhaseTemplateController) Find(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	t, err := ctrl.service.Find(reqCtx, c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, t, "Шаблон найден", http.StatusOK)
}

func (ctrl *PhaseTemplateController) Create(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.CreatePhaseTemplateDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	t, err := ctrl.service.Create(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, t, "Шаблон создан", http.StatusCreated)
}

func (ctrl *PhaseTemplateController) Update(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.UpdatePhaseTemplateDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	t, err := ctrl.service.Update(reqCtx, c.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, t, "Шаблон обновлён", http.StatusOK)
}

func (ctrl *PhaseTemplateController) Delete(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	if err := ctrl.service.Delete(reqCtx, c.Param("id")); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Шаблон удалён", http.StatusOK)
}

// Initialize создаёт системные шаблоны, если коллекция пуста.
func (ctrl *PhaseTemplateController) Initialize(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	created, err := ctrl.service.InitializeDefaults(reqCtx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	result := dto.InitializeTemplatesResultDTO{Created: created, Skipped: created == 0}
	return utils.SuccessResponse(c, result, "Инициализация шаблонов выполнена", http.StatusOK)
}

func (ctrl *PhaseTemplateController) AddPhase(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.PhaseInputDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	t, err := ctrl.service.AddPhase(reqCtx, c.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, t, "Этап добавлен", http.StatusOK)
}

func (ctrl *PhaseTemplateController) RemovePhase(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	number, err := phaseNumberParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	t, err := ctrl.service.RemovePhase(reqCtx, c.Param("id"), number)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, t, "Этап удалён", http.StatusOK)
}

func (ctrl *PhaseTemplateController) EditPhase(c echo.Context) error {
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
	t, err := ctrl.service.EditPhase(reqCtx, c.Param("id"), number, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, t, "Этап изменён", http.StatusOK)
}

func (ctrl *PhaseTemplateController) MovePhase(c echo.Context) error {
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
	t, err := ctrl.service.MovePhase(reqCtx, c.Param("id"), number, entities.MoveDirection(payload.Direction))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, t, "Этап перемещён", http.StatusOK)
}
