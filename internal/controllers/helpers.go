package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "cert-system/pkg/errors"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func phaseNumberParam(c echo.Context) (int, error) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil || n < 1 {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "Неверный номер этапа", apperrors.ErrBadRequest,
			map[string]string{"number": c.Param("number")})
	}
	return n, nil
}

func bindAndValidate(c echo.Context, payload interface{}) error {
	if err := c.Bind(payload); err != nil {
		return apperrors.NewBadRequestError("Неверный формат данных")
	}
	return c.Validate(payload)
}

// sendFile отдаёт документ; ?disposition=inline открывает его в браузере для печати.
func sendFile(c echo.Context, data []byte, contentType, filename string) error {
	disposition := "attachment"
	if strings.EqualFold(c.QueryParam("disposition"), "inline") {
		disposition = "inline"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, filename))
	return c.Blob(http.StatusOK, contentType, data)
}
