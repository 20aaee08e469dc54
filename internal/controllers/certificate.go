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

type CertificateController struct {
	service    *services.CertificateService
	selections *services.SelectionService
	timeout    time.Duration
	logger     *zap.Logger
}

func NewCertificateController(service *services.CertificateService, selections *services.SelectionService, timeout time.Duration, logger *zap.Logger) *CertificateController {
	return &CertificateController{service: service, selections: selections, timeout: timeout, logger: logger}
}

func (ctrl *CertificateController) List(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	filter := utils.ParseFilterFromQuery(c.QueryParams())
	items, total, err := ctrl.service.List(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	list := make([]dto.CertificateDTO, 0, len(items))
	for i := range items {
		list = append(list, ctrl.service.ToDTO(&items[i]))
	}
	return utils.SuccessListResponse(c, list, "Список сертификатов получен", total, filter)
}

func (ctrl *CertificateController) Find(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	cert, err := ctrl.service.Find(reqCtx, c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, ctrl.service.ToDTO(cert), "Сертификат найден", http.StatusOK)
}

func (ctrl *CertificateController) Create(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.CertificateSelectionDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	cert, err := ctrl.service.Create(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, ctrl.service.ToDTO(cert), "Сертификат создан", http.StatusCreated)
}

func (ctrl *CertificateController) Preview(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.CertificateSelectionDTO
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
	if _, err := checkGeneration(c, ctrl.selections); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	preview.Generation = generation
	return utils.SuccessResponse(c, preview, "Предпросмотр сертификата", http.StatusOK)
}

func (ctrl *CertificateController) PreviewPDF(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	var payload dto.CertificateSelectionDTO
	if err := bindAndValidate(c, &payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	data, filename, err := ctrl.service.PreviewPDF(reqCtx, utils.ClientID(c), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return sendFile(c, data, mimePDF, filename)
}

func (ctrl *CertificateController) PDF(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	data, filename, err := ctrl.service.RenderPDF(reqCtx, utils.ClientID(c), c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return sendFile(c, data, mimePDF, filename)
}

func (ctrl *CertificateController) Export(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	data, err := ctrl.service.ExportXLSX(reqCtx, utils.ParseFilterFromQuery(c.QueryParams()))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return sendFile(c, data, mimeXLSX, "certificates-"+time.Now().Format("2006-01-02")+".xlsx")
}

func (ctrl *CertificateController) Delete(c echo.Context) error {
	reqCtx, cancel := utils.Ctx(c, ctrl.timeout)
	defer cancel()

	if err := ctrl.service.Delete(reqCtx, c.Param("id")); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Сертификат удалён", http.StatusOK)
}
