package entities

// Денормализованные копии связанных записей на момент создания документа.

type CompanySnapshot struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Website    string `json:"website"`
	BusinessID string `json:"business_id"`
	LogoURL    string `json:"logo_url"`
}

type CustomerSnapshot struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ContactPerson string `json:"contact_person"`
}

type ProjectSnapshot struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type ProductSnapshot struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
}
