package utils

import (
	"encoding/json"
	"fmt"
)

// PatchFields превращает DTO частичного обновления в набор полей документа.
// Поля с nil-указателями и omitempty в результат не попадают.
func PatchFields(dto interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("не удалось сериализовать изменения: %w", err)
	}
	fields := make(map[string]interface{})
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("не удалось разобрать изменения: %w", err)
	}
	return fields, nil
}
