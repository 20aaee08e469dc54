package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"cert-system/internal/dto"
	"cert-system/internal/entities"
	"cert-system/pkg/types"
)

func pngLogo(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func deliveryDetails(phases int) dto.DeliveryDetailsDTO {
	d := dto.DeliveryDetailsDTO{
		DeliveryNumber:    "WD-PRECAST-CONCRETE-250314-0a1b2c3d",
		CompanyName:       "Nordic Precast Oy",
		CompanyAddress:    "Teollisuustie 12, 33100 Tampere",
		CompanyBusinessID: "1234567-8",
		CustomerName:      "Rakennus Virtanen Oy",
		ProjectName:       "Varastohalli Ritaharju",
		WorkTypeLabel:     "Precast concrete",
		DeliveryDate:      "14.03.2025",
		Status:            "draft",
		TotalPhases:       phases,
		CurrentPhase:      1,
		LogoSize:          "small",
	}
	for i := 1; i <= phases; i++ {
		d.Phases = append(d.Phases, dto.PhaseRowDTO{Number: i, Name: fmt.Sprintf("Phase %d", i)})
	}
	return d
}

func TestDeliveryValues(t *testing.T) {
	values := DeliveryValues(deliveryDetails(3), nil)

	assert.Equal(t, "No. WD-PRECAST-CONCRETE-250314-0a1b2c3d", values["document_number"].Text)
	assert.Equal(t, "Business ID 1234567-8", values["company_business_id"].Text)
	assert.Equal(t, "Phase 2", values[PhaseFieldName(2, "name")].Text)
	assert.Equal(t, "Pending", values[PhaseFieldName(3, "status")].Text)
	assert.NotContains(t, values, PhaseFieldName(4, "name"))
	assert.NotContains(t, values, "phase_overflow")
	assert.NotContains(t, values, "logo")
}

func TestDeliveryValues_Overflow(t *testing.T) {
	values := DeliveryValues(deliveryDetails(MaxPhaseRows+3), nil)

	assert.Contains(t, values, PhaseFieldName(MaxPhaseRows, "name"))
	assert.NotContains(t, values, PhaseFieldName(MaxPhaseRows+1, "name"))
	assert.Equal(t, "+ 3 more phases", values["phase_overflow"].Text)
}

func TestCertificateValues_Logo(t *testing.T) {
	logo := pngLogo(t)
	values := CertificateValues(dto.CertificateDetailsDTO{
		CertificateNumber: "CERT-250314-0a1b2c3d",
		CompanyPhone:      "+358 3 123 4567",
		CompanyEmail:      "info@nordicprecast.fi",
		LogoSize:          "large",
	}, logo)

	assert.Equal(t, "+358 3 123 4567 | info@nordicprecast.fi", values["company_contact"].Text)
	require.Contains(t, values, "logo")
	assert.Equal(t, entities.LogoSizeLarge.WidthMM(), values["logo"].Width)
}

func TestRender(t *testing.T) {
	r := NewPDFRenderer(zap.NewNop())

	t.Run("сертификат с логотипом", func(t *testing.T) {
		values := CertificateValues(dto.CertificateDetailsDTO{
			CertificateNumber: "CERT-250314-0a1b2c3d",
			CompanyName:       "Nordic Precast Oy",
			CustomerAddress:   "Hämeenkatu 5, 33200 Tampere",
			Notes:             "Multi-line\nnotes",
		}, pngLogo(t))
		data, err := r.Render(CertificateTemplate(), values)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})

	t.Run("неподдерживаемый логотип пропускается", func(t *testing.T) {
		values := DeliveryValues(deliveryDetails(MaxPhaseRows+1), []byte("<svg xmlns=\"http://www.w3.org/2000/svg\"></svg>"))
		data, err := r.Render(WorkDeliveryTemplate(), values)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})
}

func TestWriteDeliveriesXLSX(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	items := []entities.WorkDelivery{{
		Document:       types.Document{ID: "250314-0a1b2c3d", CreatedAt: created},
		DeliveryNumber: "WD-HOUSE-CONSTRUCTION-250314-0a1b2c3d",
		WorkType:       entities.WorkTypeHouseConstruction,
		BuildingType:   entities.BuildingTypeSingleStory,
		DeliveryDate:   created,
		Status:         entities.DeliveryStatusDelivered,
		Phases: entities.PhaseList{
			{PhaseNumber: 1, Name: "Foundation", IsCompleted: true},
			{PhaseNumber: 2, Name: "Walls"},
		},
	}}

	data, err := WriteDeliveriesXLSX(items, "02.01.2006")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Deliveries")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Delivery", rows[0][0])
	assert.Equal(t, "WD-HOUSE-CONSTRUCTION-250314-0a1b2c3d", rows[1][0])
	assert.Equal(t, "14.03.2025", rows[1][6])
	assert.Equal(t, "2", rows[1][8])
	assert.Equal(t, "1", rows[1][9])
	assert.Equal(t, "2", rows[1][10])
}

func TestWriteCertificatesXLSX(t *testing.T) {
	delivery := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	items := []entities.Certificate{{
		CertificateNumber:  "CERT-250314-0a1b2c3d",
		BatchNumbers:       entities.NewTagList("HC-1", "HC-2"),
		DeliveryDate:       delivery,
		WarrantyExpiration: entities.WarrantyExpiration(delivery),
		Status:             entities.CertificateStatusIssued,
	}}

	data, err := WriteCertificatesXLSX(items, "02.01.2006")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Certificates")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "HC-1, HC-2", rows[1][5])
	assert.Equal(t, "14.03.2028", rows[1][7])
}
