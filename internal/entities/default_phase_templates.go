package entities

// Наборы этапов для шаблонов по умолчанию.

func phasesOf(items ...[2]string) PhaseList {
	list := make(PhaseList, 0, len(items))
	for i, it := range items {
		list = append(list, Phase{PhaseNumber: i + 1, Name: it[0], Description: it[1]})
	}
	return list
}

// DefaultPhaseTemplates возвращает три системных шаблона: одноэтажный дом (8 этапов),
// двухэтажный дом (10 этапов), сборный железобетон (5 этапов).
func DefaultPhaseTemplates() []PhaseTemplate {
	return []PhaseTemplate{
		{
			Name:         "Single-story house",
			Description:  "Standard delivery sequence for a single-story house",
			WorkType:     WorkTypeHouseConstruction,
			BuildingType: BuildingTypeSingleStory,
			IsDefault:    true,
			Phases: phasesOf(
				[2]string{"Foundation elements", "Delivery and installation of foundation elements"},
				[2]string{"Ground floor slab", "Hollow-core or solid slab for the ground floor"},
				[2]string{"Exterior wall elements", "Load-bearing exterior sandwich walls"},
				[2]string{"Interior wall elements", "Interior load-bearing and partition walls"},
				[2]string{"Roof trusses", "Delivery and lifting of roof trusses"},
				[2]string{"Roofing", "Roof covering and flashings"},
				[2]string{"Windows and doors", "Installation of windows and exterior doors"},
				[2]string{"Final inspection", "Joint inspection and handover"},
			),
		},
		{
			Name:         "Two-story house",
			Description:  "Standard delivery sequence for a two-story house",
			WorkType:     WorkTypeHouseConstruction,
			BuildingType: BuildingTypeTwoStory,
			IsDefault:    true,
			Phases: phasesOf(
				[2]string{"Foundation elements", "Delivery and installation of foundation elements"},
				[2]string{"Ground floor slab", "Hollow-core or solid slab for the ground floor"},
				[2]string{"Ground floor exterior walls", "Load-bearing exterior walls of the ground floor"},
				[2]string{"Ground floor interior walls", "Interior walls of the ground floor"},
				[2]string{"Intermediate floor slab", "Slab between the ground and upper floor"},
				[2]string{"Upper floor exterior walls", "Load-bearing exterior walls of the upper floor"},
				[2]string{"Upper floor interior walls", "Interior walls of the upper floor"},
				[2]string{"Roof structure", "Roof trusses and roofing"},
				[2]string{"Windows and doors", "Installation of windows and exterior doors"},
				[2]string{"Final inspection", "Joint inspection and handover"},
			),
		},
		{
			Name:        "Precast concrete delivery",
			Description: "Production and delivery of precast concrete elements",
			WorkType:    WorkTypePrecastConcrete,
			IsDefault:   true,
			Phases: phasesOf(
				[2]string{"Order confirmation", "Element drawings and order confirmed"},
				[2]string{"Production", "Casting and curing of the elements"},
				[2]string{"Quality control", "Dimensional and strength inspection"},
				[2]string{"Delivery", "Transport to the construction site"},
				[2]string{"Installation", "Installation and acceptance on site"},
			),
		},
	}
}
