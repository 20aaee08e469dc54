package export

import "fmt"

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldImage
)

// Field: прямоугольная область страницы A4 в миллиметрах.
// Static печатается, если значение для поля не передано.
type Field struct {
	Name      string
	Kind      FieldKind
	X, Y      float64
	W, H      float64
	FontSize  float64
	Bold      bool
	Align     string
	Multiline bool
	Border    bool
	Static    string
}

type Template struct {
	Name   string
	Fields []Field
}

// FieldValue: текст или изображение для поля. Width переопределяет ширину изображения.
type FieldValue struct {
	Text  string
	Image []byte
	Width float64
}

func Text(s string) FieldValue { return FieldValue{Text: s} }

func Image(data []byte, width float64) FieldValue { return FieldValue{Image: data, Width: width} }

const (
	pageMargin  = 15.0
	contentW    = 180.0
	labelW      = 50.0
	rowH        = 7.0
	defaultFont = 10.0

	// MaxPhaseRows: строк этапов в таблице; остальные сворачиваются в одну строку.
	MaxPhaseRows = 12
)

func static(name, text string, x, y, w, h, size float64, bold bool, align string) Field {
	return Field{Name: name, X: x, Y: y, W: w, H: h, FontSize: size, Bold: bold, Align: align, Static: text}
}

// labeled: пара "подпись / значение" в одну строку.
func labeled(name, label string, y, h float64, multiline bool) []Field {
	return []Field{
		static(name+"_label", label, pageMargin, y, labelW, rowH, defaultFont, true, "L"),
		{Name: name, X: pageMargin + labelW, Y: y, W: contentW - labelW, H: h, FontSize: defaultFont, Align: "L", Multiline: multiline},
	}
}

func header(title string) []Field {
	return []Field{
		{Name: "logo", Kind: FieldImage, X: pageMargin, Y: 12, W: 45, H: 30},
		{Name: "company_name", X: 110, Y: 12, W: 85, H: 7, FontSize: 13, Bold: true, Align: "R"},
		{Name: "company_address", X: 110, Y: 19, W: 85, H: 5, FontSize: 9, Align: "R"},
		{Name: "company_contact", X: 110, Y: 24, W: 85, H: 5, FontSize: 9, Align: "R"},
		{Name: "company_website", X: 110, Y: 29, W: 85, H: 5, FontSize: 9, Align: "R"},
		{Name: "company_business_id", X: 110, Y: 34, W: 85, H: 5, FontSize: 9, Align: "R"},
		static("title", title, pageMargin, 50, contentW, 10, 18, true, "C"),
		{Name: "document_number", X: pageMargin, Y: 61, W: contentW, H: 6, FontSize: 11, Align: "C"},
	}
}

func footer(y float64) []Field {
	return []Field{
		static("issued_label", "Issued", pageMargin, y, 25, rowH, defaultFont, true, "L"),
		{Name: "issued_date", X: pageMargin + 25, Y: y, W: 50, H: rowH, FontSize: defaultFont, Align: "L"},
		static("signature", "Signature ______________________", 110, y, 85, rowH, defaultFont, false, "R"),
	}
}

func CertificateTemplate() Template {
	fields := header("CERTIFICATE OF DELIVERY AND WARRANTY")

	y := 78.0
	rows := []struct {
		name, label string
		h           float64
		multiline   bool
	}{
		{"customer_name", "Customer", rowH, false},
		{"customer_contact", "Contact", rowH, false},
		{"project_name", "Project", rowH, false},
		{"project_address", "Project address", rowH, false},
		{"project_location", "Location", rowH, false},
		{"product_name", "Product", rowH, false},
		{"product_description", "Description", 14, true},
		{"batch_numbers", "Batch numbers", 14, true},
		{"delivery_date", "Delivery date", rowH, false},
		{"warranty_expiration", "Warranty valid until", rowH, false},
		{"notes", "Notes", 40, true},
	}
	for _, r := range rows {
		fields = append(fields, labeled(r.name, r.label, y, r.h, r.multiline)...)
		y += r.h + 2
	}

	fields = append(fields, static("warranty_text",
		"The products listed above are covered by the manufacturer's warranty until the date stated.",
		pageMargin, 240, contentW, 5, 9, false, "L"))
	fields[len(fields)-1].Multiline = true
	fields = append(fields, footer(265)...)

	return Template{Name: "certificate", Fields: fields}
}

// phaseColumns: номер, этап, статус, дата, заметки.
var phaseColumns = []struct {
	suffix, title string
	x, w          float64
	align         string
}{
	{"number", "#", pageMargin, 10, "C"},
	{"name", "Phase", pageMargin + 10, 70, "L"},
	{"status", "Status", pageMargin + 80, 25, "C"},
	{"date", "Completed", pageMargin + 105, 25, "C"},
	{"notes", "Notes", pageMargin + 130, 50, "L"},
}

func PhaseFieldName(row int, suffix string) string {
	return fmt.Sprintf("phase_%d_%s", row, suffix)
}

func WorkDeliveryTemplate() Template {
	fields := header("WORK DELIVERY REPORT")

	y := 74.0
	rows := []struct{ name, label string }{
		{"customer_name", "Customer"},
		{"project_name", "Project"},
		{"project_address", "Project address"},
		{"work_type", "Work type"},
		{"building_type", "Building type"},
		{"delivery_date", "Delivery date"},
		{"status", "Status"},
		{"progress", "Progress"},
	}
	for _, r := range rows {
		fields = append(fields, labeled(r.name, r.label, y, rowH, false)...)
		y += rowH
	}

	y += 4
	const tableRowH = 7.0
	for _, c := range phaseColumns {
		f := static("phase_header_"+c.suffix, c.title, c.x, y, c.w, tableRowH, 9, true, c.align)
		f.Border = true
		fields = append(fields, f)
	}
	y += tableRowH
	for row := 1; row <= MaxPhaseRows; row++ {
		for _, c := range phaseColumns {
			fields = append(fields, Field{
				Name: PhaseFieldName(row, c.suffix), X: c.x, Y: y, W: c.w, H: tableRowH,
				FontSize: 8.5, Align: c.align, Border: true,
			})
		}
		y += tableRowH
	}
	fields = append(fields, Field{Name: "phase_overflow", X: pageMargin, Y: y + 1, W: contentW, H: 5, FontSize: 8.5, Align: "L"})

	fields = append(fields, labeled("notes", "Notes", 252, 12, true)...)
	fields = append(fields, footer(272)...)

	return Template{Name: "work_delivery", Fields: fields}
}
