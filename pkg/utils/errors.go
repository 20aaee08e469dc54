package utils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationFields превращает ошибки validator в карту "поле → правило".
func ValidationFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			fields[fe.Field()] = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		} else {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return fields
}
