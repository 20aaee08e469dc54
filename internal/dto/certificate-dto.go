package dto

import (
	"cert-system/internal/entities"
)

type CertificateSelectionDTO struct {
	CompanyID    string   `json:"company_id"`
	CustomerID   string   `json:"customer_id"`
	ProjectID    string   `json:"project_id"`
	ProductID    string   `json:"product_id"`
	DeliveryDate string   `json:"delivery_date"`
	BatchNumbers []string `json:"batch_numbers"`
	Notes        string   `json:"notes"`
}

func (d CertificateSelectionDTO) ToForm() entities.CertificateForm {
	return entities.CertificateForm{
		CompanyID:    d.CompanyID,
		CustomerID:   d.CustomerID,
		ProjectID:    d.ProjectID,
		ProductID:    d.ProductID,
		DeliveryDate: d.DeliveryDate,
		BatchNumbers: entities.NewTagList(d.BatchNumbers...),
		Notes:        d.Notes,
	}
}

type CertificateDTO struct {
	ID                 string                    `json:"id"`
	CertificateNumber  string                    `json:"certificate_number"`
	CompanyID          string                    `json:"company_id"`
	CustomerID         string                    `json:"customer_id"`
	ProjectID          string                    `json:"project_id"`
	ProductID          string                    `json:"product_id"`
	Company            entities.CompanySnapshot  `json:"company"`
	Customer           entities.CustomerSnapshot `json:"customer"`
	Project            entities.ProjectSnapshot  `json:"project"`
	Product            entities.ProductSnapshot  `json:"product"`
	SnapshotAt         string                    `json:"snapshot_at"`
	BatchNumbers       entities.TagList          `json:"batch_numbers"`
	DeliveryDate       string                    `json:"delivery_date"`
	WarrantyExpiration string                    `json:"warranty_expiration"`
	Notes              string                    `json:"notes"`
	Status             string                    `json:"status"`
	CreatedAt          string                    `json:"created_at"`
	UpdatedAt          string                    `json:"updated_at"`
}

type CertificateDetailsDTO struct {
	CertificateNumber  string   `json:"certificate_number"`
	CompanyName        string   `json:"company_name"`
	CompanyAddress     string   `json:"company_address"`
	CompanyPhone       string   `json:"company_phone"`
	CompanyEmail       string   `json:"company_email"`
	CompanyWebsite     string   `json:"company_website"`
	CompanyBusinessID  string   `json:"company_business_id"`
	CompanyLogoURL     string   `json:"company_logo_url"`
	CustomerName       string   `json:"customer_name"`
	CustomerAddress    string   `json:"customer_address"`
	CustomerContact    string   `json:"customer_contact"`
	ProjectName        string   `json:"project_name"`
	ProjectAddress     string   `json:"project_address"`
	ProjectLocation    string   `json:"project_location"`
	ProductName        string   `json:"product_name"`
	ProductDescription string   `json:"product_description"`
	ProductCategory    string   `json:"product_category"`
	BatchNumbers       []string `json:"batch_numbers"`
	BatchNumbersText   string   `json:"batch_numbers_text"`
	DeliveryDate       string   `json:"delivery_date"`
	WarrantyExpiration string   `json:"warranty_expiration"`
	IssuedDate         string   `json:"issued_date"`
	Notes              string   `json:"notes"`
	LogoSize           string   `json:"logo_size"`
}
