package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseTemplate_Matches(t *testing.T) {
	single := PhaseTemplate{WorkType: WorkTypeHouseConstruction, BuildingType: BuildingTypeSingleStory}
	precast := PhaseTemplate{WorkType: WorkTypePrecastConcrete}

	assert.True(t, single.Matches(WorkTypeHouseConstruction, BuildingTypeSingleStory))
	assert.False(t, single.Matches(WorkTypeHouseConstruction, BuildingTypeTwoStory))
	assert.False(t, single.Matches(WorkTypePrecastConcrete, ""))

	// для сборного железобетона тип здания не учитывается
	assert.True(t, precast.Matches(WorkTypePrecastConcrete, BuildingTypeTwoStory))
	assert.True(t, precast.Matches(WorkTypePrecastConcrete, ""))
}

func TestPhaseTemplate_InstantiateReturnsCopy(t *testing.T) {
	tpl := PhaseTemplate{Phases: listOf("A", "B")}

	phases := tpl.Instantiate()
	phases.SetCompleted(0, true, "done", time.Now())
	phases[1].Name = "changed"

	assert.False(t, tpl.Phases[0].IsCompleted)
	assert.Equal(t, "B", tpl.Phases[1].Name)
}

func TestDefaultPhaseTemplates(t *testing.T) {
	templates := DefaultPhaseTemplates()
	require.Len(t, templates, 3)

	counts := map[string]int{}
	for _, tpl := range templates {
		assert.True(t, tpl.IsDefault)
		assert.True(t, tpl.Phases.IsDense(), tpl.Name)
		counts[tpl.Name] = len(tpl.Phases)
	}
	assert.Equal(t, 8, counts["Single-story house"])
	assert.Equal(t, 10, counts["Two-story house"])
	assert.Equal(t, 5, counts["Precast concrete delivery"])
}

func TestTagList(t *testing.T) {
	tags := NewTagList(" B-1 ", "B-2", "", "B-1")
	assert.Equal(t, TagList{"B-1", "B-2"}, tags)

	assert.False(t, tags.Add("B-2"))
	assert.True(t, tags.Add("B-3"))
	assert.True(t, tags.Remove("B-1"))
	assert.False(t, tags.Remove("missing"))
	assert.Equal(t, "B-2, B-3", tags.String())
}

func TestDeliveryNumber(t *testing.T) {
	n := NewDeliveryNumber(WorkTypeHouseConstruction, "260315-0a1b2c3d")
	assert.Equal(t, "WD-HOUSE-CONSTRUCTION-260315-0a1b2c3d", n)
	assert.True(t, IsDeliveryNumber(n))
	assert.False(t, IsDeliveryNumber("WD-PRECAST-CONCRETE-DRAFT"))
}

func TestWarrantyExpiration(t *testing.T) {
	d := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2029, 5, 20, 0, 0, 0, 0, time.UTC), WarrantyExpiration(d))
}

func TestDeliveryForm_MissingFields(t *testing.T) {
	form := DeliveryForm{WorkType: WorkTypeHouseConstruction, DeliveryDate: "2026-13-01"}
	assert.Equal(t,
		[]string{"company_id", "customer_id", "project_id", "building_type", "delivery_date", "phases"},
		form.MissingFields())

	form = DeliveryForm{
		CompanyID: "c", CustomerID: "cu", ProjectID: "p",
		WorkType: WorkTypePrecastConcrete, DeliveryDate: "2026-03-15",
		Phases: listOf("A"),
	}
	assert.Empty(t, form.MissingFields())
}
