package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/types"
)

type HttpResponse struct {
	Status     bool              `json:"status"`
	Body       interface{}       `json:"body,omitempty"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
	Pagination *types.Pagination `json:"pagination,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

func SuccessListResponse(ctx echo.Context, body interface{}, message string, total uint64, filter types.Filter) error {
	return ctx.JSON(http.StatusOK, &HttpResponse{
		Status:     true,
		Body:       body,
		Message:    message,
		Pagination: types.NewPagination(total, filter),
	})
}

// ErrorResponse переводит ошибку в HTTP-ответ. Внутренние ошибки пишутся в лог,
// клиенту уходит только общее сообщение.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := apperrors.StatusCode(err)
	message := err.Error()
	var fields map[string]string

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		message = httpErr.Message
		fields = httpErr.Fields
	} else if vf := ValidationFields(err); vf != nil {
		code = http.StatusBadRequest
		message = "Ошибка валидации данных"
		fields = vf
	}

	if code >= http.StatusInternalServerError {
		if logger != nil {
			logger.Error("Ошибка обработки запроса",
				zap.String("method", ctx.Request().Method),
				zap.String("uri", ctx.Request().RequestURI),
				zap.Error(err),
			)
		}
		if httpErr == nil {
			message = apperrors.ErrInternalServer.Error()
		}
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Message: message,
		Fields:  fields,
	})
}
