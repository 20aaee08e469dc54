package entities

import (
	"strings"
	"time"
)

// DeliveryForm: выбор пользователя до создания поставки.
type DeliveryForm struct {
	CompanyID    string
	CustomerID   string
	ProjectID    string
	WorkType     WorkType
	BuildingType BuildingType
	DeliveryDate string
	TemplateID   string
	Notes        string
	Status       DeliveryStatus
	Phases       PhaseList
}

// MissingFields возвращает незаполненные или некорректные обязательные поля.
// Пустой результат означает, что по форме можно строить документ.
func (f DeliveryForm) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(f.CompanyID) == "" {
		missing = append(missing, "company_id")
	}
	if strings.TrimSpace(f.CustomerID) == "" {
		missing = append(missing, "customer_id")
	}
	if strings.TrimSpace(f.ProjectID) == "" {
		missing = append(missing, "project_id")
	}
	if !f.WorkType.IsValid() {
		missing = append(missing, "work_type")
	} else if f.WorkType.RequiresBuildingType() && !f.BuildingType.IsValid() {
		missing = append(missing, "building_type")
	}
	if _, err := f.ParsedDeliveryDate(); err != nil {
		missing = append(missing, "delivery_date")
	}
	if len(f.Phases) == 0 {
		missing = append(missing, "phases")
	}
	return missing
}

func (f DeliveryForm) ParsedDeliveryDate() (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(f.DeliveryDate))
}

// CertificateForm: выбор пользователя до выпуска сертификата.
type CertificateForm struct {
	CompanyID    string
	CustomerID   string
	ProjectID    string
	ProductID    string
	DeliveryDate string
	BatchNumbers TagList
	Notes        string
}

func (f CertificateForm) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(f.CompanyID) == "" {
		missing = append(missing, "company_id")
	}
	if strings.TrimSpace(f.CustomerID) == "" {
		missing = append(missing, "customer_id")
	}
	if strings.TrimSpace(f.ProjectID) == "" {
		missing = append(missing, "project_id")
	}
	if strings.TrimSpace(f.ProductID) == "" {
		missing = append(missing, "product_id")
	}
	if _, err := f.ParsedDeliveryDate(); err != nil {
		missing = append(missing, "delivery_date")
	}
	return missing
}

func (f CertificateForm) ParsedDeliveryDate() (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(f.DeliveryDate))
}
