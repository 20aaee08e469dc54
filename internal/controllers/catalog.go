package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cert-system/internal/services"
	"cert-system/pkg/utils"
)

// Creatable: DTO создания, который умеет собрать сущность.
type Creatable[T any] interface {
	ToEntity() T
}

// CatalogController обслуживает CRUD одного справочника.
// C: DTO создания, U: DTO частичного обновления с полями-указателями.
type CatalogController[T any, C Creatable[T], U any] struct {
	service services.CatalogServiceInterface[T]
	title   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewCatalogController[T any, C Creatable[T], U any](
	service services.CatalogServiceInterface[T],
	title string,
	timeout time.Duration,
	logger *zap.Logger,
) *CatalogController[T, C, U] {
	return &CatalogController[T, C, U]{service: service, title: title, timeout: timeout, logger: logger}
}

func (ctrl *CatalogController[T, C, U]) List(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	filter := utils.ParseFilterFromQuery(c.QueryParams())
	items, total, err := ctrl.service.List(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessListResponse(c, items, ctrl.title+": список получен", total, filter)
}

func (ctrl *CatalogController[T, C, U]) Find(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	item, err := ctrl.service.Find(reqCtx, c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, item, ctrl.title+": запись найдена", http.StatusOK)
}

func (ctrl *CatalogController[T, C, U]) Create(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload C
	if err := bindAndValidate(c, &payload); err != nil {
		ctrl.logger.Warn("Create: некорректные данные", zap.String("catalog", ctrl.title), zap.Error(err))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	item := payload.ToEntity()
	created, err := ctrl.service.Create(reqCtx, &item)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, created, ctrl.title+": запись создана", http.StatusCreated)
}

func (ctrl *CatalogController[T, C, U]) Update(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload U
	if err := bindAndValidate(c, &payload); err != nil {
		ctrl.logger.Warn("Update: некорректные данные", zap.String("catalog", ctrl.title), zap.Error(err))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	fields, err := utils.PatchFields(payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	updated, err := ctrl.service.Update(reqCtx, c.Param("id"), fields)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, updated, ctrl.title+": запись обновлена", http.StatusOK)
}

func (ctrl *CatalogController[T, C, U]) Delete(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	if err := ctrl.service.Delete(reqCtx, c.Param("id")); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, ctrl.title+": запись удалена", http.StatusOK)
}
