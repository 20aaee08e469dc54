package entities

import (
	"time"

	"cert-system/pkg/types"
)

type Company struct {
	types.Document
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Website    string `json:"website"`
	BusinessID string `json:"business_id"`
	LogoURL    string `json:"logo_url"`
}

func (c Company) SortKey() string { return c.Name }

func (c Company) Snapshot() CompanySnapshot {
	return CompanySnapshot{
		Name: c.Name, Address: c.Address, Phone: c.Phone, Email: c.Email,
		Website: c.Website, BusinessID: c.BusinessID, LogoURL: c.LogoURL,
	}
}

type Customer struct {
	types.Document
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ContactPerson string `json:"contact_person"`
}

func (c Customer) SortKey() string { return c.Name }

func (c Customer) Snapshot() CustomerSnapshot {
	return CustomerSnapshot{
		Name: c.Name, Address: c.Address, Phone: c.Phone, Email: c.Email, ContactPerson: c.ContactPerson,
	}
}

// Project хранит копию имени заказчика; при изменении заказчика копия не обновляется.
type Project struct {
	types.Document
	Name         string    `json:"name"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Address      string    `json:"address"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	SnapshotAt   time.Time `json:"snapshot_at"`
}

func (p Project) SortKey() string { return p.Name }

func (p Project) Snapshot() ProjectSnapshot {
	return ProjectSnapshot{Name: p.Name, Address: p.Address, Location: p.Location, Description: p.Description}
}

type Product struct {
	types.Document
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
}

func (p Product) SortKey() string { return p.Name }

func (p Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{Name: p.Name, Description: p.Description, Category: p.Category, Unit: p.Unit}
}

type BatchNumber struct {
	types.Document
	Number         string `json:"number"`
	ProductID      string `json:"product_id"`
	ProductionDate string `json:"production_date"`
	Quantity       int    `json:"quantity"`
	Notes          string `json:"notes"`
}

func (b BatchNumber) SortKey() string { return b.Number }
