package entities

import "strings"

// DateLayout: формат дат во входящих формах.
const DateLayout = "2006-01-02"

type WorkType string

const (
	WorkTypeHouseConstruction WorkType = "house-construction"
	WorkTypePrecastConcrete   WorkType = "precast-concrete"
)

func (w WorkType) IsValid() bool {
	return w == WorkTypeHouseConstruction || w == WorkTypePrecastConcrete
}

// RequiresBuildingType: тип здания имеет смысл только для строительства домов.
func (w WorkType) RequiresBuildingType() bool { return w == WorkTypeHouseConstruction }

func (w WorkType) Code() string { return strings.ToUpper(string(w)) }

func (w WorkType) Label() string {
	switch w {
	case WorkTypeHouseConstruction:
		return "House construction"
	case WorkTypePrecastConcrete:
		return "Precast concrete"
	}
	return string(w)
}

type BuildingType string

const (
	BuildingTypeSingleStory BuildingType = "single-story"
	BuildingTypeTwoStory    BuildingType = "two-story"
)

func (b BuildingType) IsValid() bool {
	return b == BuildingTypeSingleStory || b == BuildingTypeTwoStory
}

func (b BuildingType) Label() string {
	switch b {
	case BuildingTypeSingleStory:
		return "Single-story"
	case BuildingTypeTwoStory:
		return "Two-story"
	}
	return string(b)
}

type LogoSize string

const (
	LogoSizeSmall  LogoSize = "small"
	LogoSizeMedium LogoSize = "medium"
	LogoSizeLarge  LogoSize = "large"
)

func (s LogoSize) IsValid() bool {
	return s == LogoSizeSmall || s == LogoSizeMedium || s == LogoSizeLarge
}

// WidthMM: ширина блока логотипа в документе.
func (s LogoSize) WidthMM() float64 {
	switch s {
	case LogoSizeSmall:
		return 30
	case LogoSizeLarge:
		return 60
	}
	return 45
}
