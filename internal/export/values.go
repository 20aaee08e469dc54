package export

import (
	"fmt"
	"strings"

	"cert-system/internal/dto"
	"cert-system/internal/entities"
)

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

func companyValues(values map[string]FieldValue, name, address, phone, email, website, businessID, logoSize string, logo []byte) {
	values["company_name"] = Text(name)
	values["company_address"] = Text(address)
	values["company_contact"] = Text(joinNonEmpty(" | ", phone, email))
	values["company_website"] = Text(website)
	if businessID != "" {
		values["company_business_id"] = Text("Business ID " + businessID)
	}
	if len(logo) > 0 {
		values["logo"] = Image(logo, entities.LogoSize(logoSize).WidthMM())
	}
}

// CertificateValues раскладывает проекцию сертификата по полям шаблона.
func CertificateValues(d dto.CertificateDetailsDTO, logo []byte) map[string]FieldValue {
	values := map[string]FieldValue{
		"document_number":     Text("No. " + d.CertificateNumber),
		"customer_name":       Text(joinNonEmpty(", ", d.CustomerName, d.CustomerAddress)),
		"customer_contact":    Text(d.CustomerContact),
		"project_name":        Text(d.ProjectName),
		"project_address":     Text(d.ProjectAddress),
		"project_location":    Text(d.ProjectLocation),
		"product_name":        Text(joinNonEmpty(" / ", d.ProductName, d.ProductCategory)),
		"product_description": Text(d.ProductDescription),
		"batch_numbers":       Text(d.BatchNumbersText),
		"delivery_date":       Text(d.DeliveryDate),
		"warranty_expiration": Text(d.WarrantyExpiration),
		"notes":               Text(d.Notes),
		"issued_date":         Text(d.IssuedDate),
	}
	companyValues(values, d.CompanyName, d.CompanyAddress, d.CompanyPhone, d.CompanyEmail,
		d.CompanyWebsite, d.CompanyBusinessID, d.LogoSize, logo)
	return values
}

// DeliveryValues заполняет таблицу этапов; этапы сверх MaxPhaseRows
// сводятся в строку phase_overflow.
func DeliveryValues(d dto.DeliveryDetailsDTO, logo []byte) map[string]FieldValue {
	values := map[string]FieldValue{
		"document_number": Text("No. " + d.DeliveryNumber),
		"customer_name":   Text(joinNonEmpty(", ", d.CustomerName, d.CustomerAddress)),
		"project_name":    Text(d.ProjectName),
		"project_address": Text(joinNonEmpty(", ", d.ProjectAddress, d.ProjectLocation)),
		"work_type":       Text(d.WorkTypeLabel),
		"building_type":   Text(d.BuildingTypeLabel),
		"delivery_date":   Text(d.DeliveryDate),
		"status":          Text(d.Status),
		"progress": Text(fmt.Sprintf("%d / %d phases completed, current phase %d",
			d.CompletedPhases, d.TotalPhases, d.CurrentPhase)),
		"notes":       Text(d.Notes),
		"issued_date": Text(d.IssuedDate),
	}
	companyValues(values, d.CompanyName, d.CompanyAddress, d.CompanyPhone, d.CompanyEmail,
		d.CompanyWebsite, d.CompanyBusinessID, d.LogoSize, logo)

	for i, p := range d.Phases {
		row := i + 1
		if row > MaxPhaseRows {
			values["phase_overflow"] = Text(fmt.Sprintf("+ %d more phases", len(d.Phases)-MaxPhaseRows))
			break
		}
		status := "Pending"
		if p.IsCompleted {
			status = "Done"
		}
		values[PhaseFieldName(row, "number")] = Text(fmt.Sprint(p.Number))
		values[PhaseFieldName(row, "name")] = Text(p.Name)
		values[PhaseFieldName(row, "status")] = Text(status)
		values[PhaseFieldName(row, "date")] = Text(p.CompletedDate)
		values[PhaseFieldName(row, "notes")] = Text(p.Notes)
	}
	return values
}
