package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"cert-system/internal/entities"
)

func writeSheet(sheet string, headers []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheet, "A1", lastHeader, style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(sheet, "A", lastCol, 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования XLSX: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCertificatesXLSX: история сертификатов, одна строка на документ.
func WriteCertificatesXLSX(items []entities.Certificate, dateFormat string) ([]byte, error) {
	headers := []interface{}{
		"Certificate", "Company", "Customer", "Project", "Product",
		"Batch numbers", "Delivery date", "Warranty until", "Status", "Notes", "Created",
	}
	rows := make([][]interface{}, 0, len(items))
	for _, c := range items {
		rows = append(rows, []interface{}{
			c.CertificateNumber, c.Company.Name, c.Customer.Name, c.Project.Name, c.Product.Name,
			c.BatchNumbers.String(), c.DeliveryDate.Format(dateFormat), c.WarrantyExpiration.Format(dateFormat),
			c.Status, c.Notes, c.CreatedAt.Format(dateFormat),
		})
	}
	return writeSheet("Certificates", headers, rows)
}

func WriteDeliveriesXLSX(items []entities.WorkDelivery, dateFormat string) ([]byte, error) {
	headers := []interface{}{
		"Delivery", "Work type", "Building type", "Company", "Customer", "Project",
		"Delivery date", "Status", "Phases", "Completed", "Current phase", "Created",
	}
	rows := make([][]interface{}, 0, len(items))
	for _, d := range items {
		rows = append(rows, []interface{}{
			d.DeliveryNumber, d.WorkType.Label(), d.BuildingType.Label(), d.Company.Name, d.Customer.Name,
			d.Project.Name, d.DeliveryDate.Format(dateFormat), string(d.Status), len(d.Phases),
			d.Phases.CompletedCount(), d.CurrentPhase(), d.CreatedAt.Format(dateFormat),
		})
	}
	return writeSheet("Deliveries", headers, rows)
}
