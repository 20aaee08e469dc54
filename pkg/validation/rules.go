package validation

import (
	"time"

	"github.com/go-playground/validator/v10"

	"cert-system/internal/entities"
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"work_type":       isWorkType,
		"building_type":   isBuildingType,
		"delivery_status": isDeliveryStatus,
		"logo_size":       isLogoSize,
		"move_direction":  isMoveDirection,
		"iso_date":        isISODate,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isWorkType(fl validator.FieldLevel) bool {
	return entities.WorkType(fl.Field().String()).IsValid()
}

func isBuildingType(fl validator.FieldLevel) bool {
	return entities.BuildingType(fl.Field().String()).IsValid()
}

func isDeliveryStatus(fl validator.FieldLevel) bool {
	return entities.DeliveryStatus(fl.Field().String()).IsValid()
}

func isLogoSize(fl validator.FieldLevel) bool {
	return entities.LogoSize(fl.Field().String()).IsValid()
}

func isMoveDirection(fl validator.FieldLevel) bool {
	return entities.MoveDirection(fl.Field().String()).IsValid()
}

// isISODate - дата в формате 2006-01-02
func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(entities.DateLayout, fl.Field().String())
	return err == nil
}
