package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"cert-system/pkg/validation"
)

// PDFRenderer выводит шаблон на одну страницу A4.
type PDFRenderer struct {
	logger *zap.Logger
}

func NewPDFRenderer(logger *zap.Logger) *PDFRenderer {
	return &PDFRenderer{logger: logger}
}

func imageType(data []byte) string {
	switch validation.SniffMimeType(data) {
	case "image/png":
		return "PNG"
	case "image/jpeg":
		return "JPG"
	}
	return ""
}

func (r *PDFRenderer) Render(t Template, values map[string]FieldValue) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(t.Name, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, f := range t.Fields {
		value, ok := values[f.Name]

		if f.Kind == FieldImage {
			if ok && len(value.Image) > 0 {
				r.drawImage(pdf, f, value)
			}
			continue
		}

		text := f.Static
		if ok {
			text = value.Text
		}

		style := ""
		if f.Bold {
			style = "B"
		}
		size := f.FontSize
		if size == 0 {
			size = defaultFont
		}
		pdf.SetFont("Helvetica", style, size)
		pdf.SetXY(f.X, f.Y)

		border := ""
		if f.Border {
			border = "1"
		}
		align := f.Align
		if align == "" {
			align = "L"
		}

		if f.Multiline {
			pdf.MultiCell(f.W, size*0.45, tr(text), border, align, false)
		} else {
			pdf.CellFormat(f.W, f.H, tr(text), border, 0, align+"M", false, 0, "")
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("ошибка формирования PDF (%s): %w", t.Name, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("ошибка записи PDF (%s): %w", t.Name, err)
	}
	return buf.Bytes(), nil
}

// drawImage пропускает форматы, которые fpdf не умеет встраивать (SVG, WebP).
func (r *PDFRenderer) drawImage(pdf *fpdf.Fpdf, f Field, value FieldValue) {
	kind := imageType(value.Image)
	if kind == "" {
		r.logger.Warn("Изображение пропущено: неподдерживаемый формат", zap.String("field", f.Name))
		return
	}

	name := fmt.Sprintf("%s-%d", f.Name, len(value.Image))
	opts := fpdf.ImageOptions{ImageType: kind, ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(value.Image))
	if pdf.Err() {
		r.logger.Warn("Изображение пропущено: не удалось прочитать", zap.String("field", f.Name), zap.Error(pdf.Error()))
		pdf.ClearError()
		return
	}

	width := f.W
	if value.Width > 0 {
		width = value.Width
	}
	pdf.ImageOptions(name, f.X, f.Y, width, 0, false, opts, 0, "")
}
