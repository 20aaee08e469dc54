package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")

	// Общие
	ErrNotFound       = fmt.Errorf("запись не найдена")
	ErrBadRequest     = fmt.Errorf("неверный запрос")
	ErrInternalServer = fmt.Errorf("внутренняя ошибка сервера")
	ErrConflict       = fmt.Errorf("конфликт данных")

	// Предметная область
	ErrStaleSelection     = fmt.Errorf("выбор устарел, ответ отброшен")
	ErrPhaseOutOfRange    = fmt.Errorf("этап с таким номером не найден")
	ErrUnknownCollection  = fmt.Errorf("неизвестная коллекция")
	ErrUnsupportedFormat  = fmt.Errorf("неподдерживаемый формат")
	ErrEmptyPhaseTemplate = fmt.Errorf("шаблон не содержит этапов")
)

// HttpError: ошибка с HTTP-кодом и сообщением для пользователя.
// Fields содержит ошибки по отдельным полям формы.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Fields  map[string]string
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, fields map[string]string) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Fields: fields}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message, Err: ErrBadRequest}
}

// NewValidationError собирает ошибку по списку незаполненных полей.
func NewValidationError(message string, missing []string) *HttpError {
	fields := make(map[string]string, len(missing))
	for _, name := range missing {
		fields[name] = "обязательное поле"
	}
	return &HttpError{Code: http.StatusBadRequest, Message: message, Err: ErrBadRequest, Fields: fields}
}

// InvalidInputError: ошибка входных данных без привязки к HTTP.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// StatusCode определяет HTTP-код для произвольной ошибки.
func StatusCode(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	var inputErr *InvalidInputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrPhaseOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrUnknownCollection),
		errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrEmptyPhaseTemplate):
		return http.StatusBadRequest
	case errors.Is(err, ErrStaleSelection), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrEmptyAuthHeader), errors.Is(err, ErrInvalidAuthHeader),
		errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenIsNotAccess), errors.Is(err, ErrInvalidSigningMethod):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
