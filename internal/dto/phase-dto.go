package dto

import (
	"time"

	"cert-system/internal/entities"
)

type PhaseInputDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PhaseInputs превращает входной список в этапы с номерами 1..N.
func PhaseInputs(items []PhaseInputDTO) entities.PhaseList {
	phases := make(entities.PhaseList, 0, len(items))
	for _, it := range items {
		phases = append(phases, entities.Phase{Name: it.Name, Description: it.Description})
	}
	phases.Renumber()
	return phases
}

// EditPhaseDTO: пустая строка допустима, отсутствующее поле не меняется.
type EditPhaseDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type MovePhaseDTO struct {
	Direction string `json:"direction" validate:"required,move_direction"`
}

type TogglePhaseDTO struct {
	IsCompleted bool   `json:"is_completed"`
	Notes       string `json:"notes"`
}

type PhaseTemplateDTO struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	WorkType     entities.WorkType     `json:"work_type"`
	BuildingType entities.BuildingType `json:"building_type,omitempty"`
	Phases       entities.PhaseList    `json:"phases"`
	PhaseCount   int                   `json:"phase_count"`
	IsDefault    bool                  `json:"is_default"`
	IsActive     bool                  `json:"is_active"`
	CreatedAt    string                `json:"created_at"`
	UpdatedAt    string                `json:"updated_at"`
}

type CreatePhaseTemplateDTO struct {
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description"`
	WorkType     string          `json:"work_type" validate:"required,work_type"`
	BuildingType string          `json:"building_type" validate:"omitempty,building_type"`
	IsDefault    bool            `json:"is_default"`
	Phases       []PhaseInputDTO `json:"phases" validate:"required,min=1,dive"`
}

// UpdatePhaseTemplateDTO: полная замена шаблона.
type UpdatePhaseTemplateDTO struct {
	CreatePhaseTemplateDTO
}

type PhaseTemplateQueryDTO struct {
	WorkType     string `query:"work_type" validate:"omitempty,work_type"`
	BuildingType string `query:"building_type" validate:"omitempty,building_type"`
}

func NewPhaseTemplateDTO(t entities.PhaseTemplate) PhaseTemplateDTO {
	phases := t.Phases
	if phases == nil {
		phases = entities.PhaseList{}
	}
	return PhaseTemplateDTO{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		WorkType:     t.WorkType,
		BuildingType: t.BuildingType,
		Phases:       phases,
		PhaseCount:   len(phases),
		IsDefault:    t.IsDefault,
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}
