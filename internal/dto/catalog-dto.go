package dto

import (
	"cert-system/internal/entities"
)

// CreateCompanyDTO: что клиент присылает для создания компании.
type CreateCompanyDTO struct {
	Name       string `json:"name" validate:"required"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	Website    string `json:"website" validate:"omitempty,url"`
	BusinessID string `json:"business_id"`
	LogoURL    string `json:"logo_url"`
}

func (d CreateCompanyDTO) ToEntity() entities.Company {
	return entities.Company{
		Name: d.Name, Address: d.Address, Phone: d.Phone, Email: d.Email,
		Website: d.Website, BusinessID: d.BusinessID, LogoURL: d.LogoURL,
	}
}

type UpdateCompanyDTO struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Address    *string `json:"address,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Website    *string `json:"website,omitempty" validate:"omitempty,url"`
	BusinessID *string `json:"business_id,omitempty"`
	LogoURL    *string `json:"logo_url,omitempty"`
}

type CreateCustomerDTO struct {
	Name          string `json:"name" validate:"required"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	ContactPerson string `json:"contact_person"`
}

func (d CreateCustomerDTO) ToEntity() entities.Customer {
	return entities.Customer{
		Name: d.Name, Address: d.Address, Phone: d.Phone, Email: d.Email, ContactPerson: d.ContactPerson,
	}
}

type UpdateCustomerDTO struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Address       *string `json:"address,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	ContactPerson *string `json:"contact_person,omitempty"`
}

// CreateProjectDTO: имя заказчика подставляет сервис.
type CreateProjectDTO struct {
	Name        string `json:"name" validate:"required"`
	CustomerID  string `json:"customer_id" validate:"required"`
	Address     string `json:"address"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func (d CreateProjectDTO) ToEntity() entities.Project {
	return entities.Project{
		Name: d.Name, CustomerID: d.CustomerID, Address: d.Address,
		Location: d.Location, Description: d.Description,
	}
}

type UpdateProjectDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	CustomerID  *string `json:"customer_id,omitempty" validate:"omitempty,min=1"`
	Address     *string `json:"address,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreateProductDTO struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
}

func (d CreateProductDTO) ToEntity() entities.Product {
	return entities.Product{Name: d.Name, Description: d.Description, Category: d.Category, Unit: d.Unit}
}

type UpdateProductDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Unit        *string `json:"unit,omitempty"`
}

type CreateBatchNumberDTO struct {
	Number         string `json:"number" validate:"required"`
	ProductID      string `json:"product_id"`
	ProductionDate string `json:"production_date" validate:"omitempty,iso_date"`
	Quantity       int    `json:"quantity" validate:"gte=0"`
	Notes          string `json:"notes"`
}

func (d CreateBatchNumberDTO) ToEntity() entities.BatchNumber {
	return entities.BatchNumber{
		Number: d.Number, ProductID: d.ProductID, ProductionDate: d.ProductionDate,
		Quantity: d.Quantity, Notes: d.Notes,
	}
}

type UpdateBatchNumberDTO struct {
	Number         *string `json:"number,omitempty" validate:"omitempty,min=1"`
	ProductID      *string `json:"product_id,omitempty"`
	ProductionDate *string `json:"production_date,omitempty" validate:"omitempty,iso_date"`
	Quantity       *int    `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Notes          *string `json:"notes,omitempty"`
}
