package dto

import (
	"github.com/aarondl/null/v8"

	"cert-system/internal/entities"
)

// DeliverySelectionDTO: выбор пользователя. Поля не помечены required:
// незаполненная форма для предпросмотра: штатное состояние, проверку делает сервис.
type DeliverySelectionDTO struct {
	CompanyID    string          `json:"company_id"`
	CustomerID   string          `json:"customer_id"`
	ProjectID    string          `json:"project_id"`
	WorkType     string          `json:"work_type" validate:"omitempty,work_type"`
	BuildingType string          `json:"building_type" validate:"omitempty,building_type"`
	DeliveryDate string          `json:"delivery_date"`
	TemplateID   null.String     `json:"template_id"`
	Notes        string          `json:"notes"`
	Status       string          `json:"status" validate:"omitempty,delivery_status"`
	Phases       []PhaseInputDTO `json:"phases"`
}

func (d DeliverySelectionDTO) ToForm() entities.DeliveryForm {
	form := entities.DeliveryForm{
		CompanyID:    d.CompanyID,
		CustomerID:   d.CustomerID,
		ProjectID:    d.ProjectID,
		WorkType:     entities.WorkType(d.WorkType),
		BuildingType: entities.BuildingType(d.BuildingType),
		DeliveryDate: d.DeliveryDate,
		Notes:        d.Notes,
		Status:       entities.DeliveryStatus(d.Status),
	}
	if d.TemplateID.Valid {
		form.TemplateID = d.TemplateID.String
	}
	if len(d.Phases) > 0 {
		form.Phases = PhaseInputs(d.Phases)
	}
	return form
}

type UpdateDeliveryStatusDTO struct {
	Status string `json:"status" validate:"required,delivery_status"`
}

type UpdateNotesDTO struct {
	Notes string `json:"notes"`
}

type WorkDeliveryDTO struct {
	ID             string                    `json:"id"`
	DeliveryNumber string                    `json:"delivery_number"`
	WorkType       entities.WorkType         `json:"work_type"`
	BuildingType   entities.BuildingType     `json:"building_type,omitempty"`
	TemplateID     string                    `json:"template_id,omitempty"`
	CompanyID      string                    `json:"company_id"`
	CustomerID     string                    `json:"customer_id"`
	ProjectID      string                    `json:"project_id"`
	Company        entities.CompanySnapshot  `json:"company"`
	Customer       entities.CustomerSnapshot `json:"customer"`
	Project        entities.ProjectSnapshot  `json:"project"`
	SnapshotAt     string                    `json:"snapshot_at"`
	DeliveryDate   string                    `json:"delivery_date"`
	Notes          string                    `json:"notes"`
	Phases         entities.PhaseList        `json:"phases"`
	CurrentPhase   int                       `json:"current_phase"`
	Status         entities.DeliveryStatus   `json:"status"`
	CreatedAt      string                    `json:"created_at"`
	UpdatedAt      string                    `json:"updated_at"`
}

// PhaseRowDTO: строка таблицы этапов в документе.
type PhaseRowDTO struct {
	Number        int    `json:"number"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	IsCompleted   bool   `json:"is_completed"`
	CompletedDate string `json:"completed_date"`
	Notes         string `json:"notes"`
}

// DeliveryDetailsDTO: плоская проекция для предпросмотра и печати.
type DeliveryDetailsDTO struct {
	DeliveryNumber    string        `json:"delivery_number"`
	CompanyName       string        `json:"company_name"`
	CompanyAddress    string        `json:"company_address"`
	CompanyPhone      string        `json:"company_phone"`
	CompanyEmail      string        `json:"company_email"`
	CompanyWebsite    string        `json:"company_website"`
	CompanyBusinessID string        `json:"company_business_id"`
	CompanyLogoURL    string        `json:"company_logo_url"`
	CustomerName      string        `json:"customer_name"`
	CustomerAddress   string        `json:"customer_address"`
	CustomerContact   string        `json:"customer_contact"`
	ProjectName       string        `json:"project_name"`
	ProjectAddress    string        `json:"project_address"`
	ProjectLocation   string        `json:"project_location"`
	WorkType          string        `json:"work_type"`
	WorkTypeLabel     string        `json:"work_type_label"`
	BuildingType      string        `json:"building_type,omitempty"`
	BuildingTypeLabel string        `json:"building_type_label,omitempty"`
	DeliveryDate      string        `json:"delivery_date"`
	IssuedDate        string        `json:"issued_date"`
	Status            string        `json:"status"`
	Notes             string        `json:"notes"`
	Phases            []PhaseRowDTO `json:"phases"`
	TotalPhases       int           `json:"total_phases"`
	CompletedPhases   int           `json:"completed_phases"`
	CurrentPhase      int           `json:"current_phase"`
	LogoSize          string        `json:"logo_size"`
}

// PreviewDTO: при Ready=false вместо документа приходит список незаполненных полей.
type PreviewDTO[T any] struct {
	Ready      bool     `json:"ready"`
	Missing    []string `json:"missing,omitempty"`
	Details    *T       `json:"details,omitempty"`
	Generation int64    `json:"generation,omitempty"`
}
