package entities

import (
	"time"

	"cert-system/pkg/types"
)

const (
	CertificateStatusIssued = "issued"
	WarrantyYears           = 3
)

// WarrantyExpiration: дата поставки плюс фиксированный гарантийный срок.
func WarrantyExpiration(deliveryDate time.Time) time.Time {
	return deliveryDate.AddDate(WarrantyYears, 0, 0)
}

func NewCertificateNumber(id string) string { return "CERT-" + id }

// Certificate: сертификат/гарантийный документ. Номера партий хранятся
// как свободные метки, без ссылки на BatchNumber.
type Certificate struct {
	types.Document
	CertificateNumber  string           `json:"certificate_number"`
	CompanyID          string           `json:"company_id"`
	CustomerID         string           `json:"customer_id"`
	ProjectID          string           `json:"project_id"`
	ProductID          string           `json:"product_id"`
	Company            CompanySnapshot  `json:"company"`
	Customer           CustomerSnapshot `json:"customer"`
	Project            ProjectSnapshot  `json:"project"`
	Product            ProductSnapshot  `json:"product"`
	SnapshotAt         time.Time        `json:"snapshot_at"`
	BatchNumbers       TagList          `json:"batch_numbers"`
	DeliveryDate       time.Time        `json:"delivery_date"`
	WarrantyExpiration time.Time        `json:"warranty_expiration"`
	Notes              string           `json:"notes"`
	Status             string           `json:"status"`
}

func (c Certificate) SortKey() string { return c.CertificateNumber }
