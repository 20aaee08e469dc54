package entities

import "cert-system/pkg/types"

// PhaseTemplate: именованный переиспользуемый список этапов.
type PhaseTemplate struct {
	types.Document
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	WorkType     WorkType     `json:"work_type"`
	BuildingType BuildingType `json:"building_type,omitempty"`
	Phases       PhaseList    `json:"phases"`
	IsDefault    bool         `json:"is_default"`
}

func (t PhaseTemplate) SortKey() string { return t.Name }

// Matches: тип работ совпадает, а для строительства домов совпадает и тип здания.
func (t PhaseTemplate) Matches(workType WorkType, buildingType BuildingType) bool {
	if t.WorkType != workType {
		return false
	}
	if !workType.RequiresBuildingType() {
		return true
	}
	return t.BuildingType == buildingType
}

// Instantiate возвращает независимую копию этапов шаблона.
func (t PhaseTemplate) Instantiate() PhaseList {
	phases := t.Phases.Clone()
	phases.Renumber()
	return phases
}
