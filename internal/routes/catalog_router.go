package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cert-system/internal/controllers"
	"cert-system/internal/dto"
	"cert-system/internal/entities"
	"cert-system/internal/repositories"
	"cert-system/internal/services"
)

type crudHandlers interface {
	List(c echo.Context) error
	Find(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

func mountCRUD(g *echo.Group, path string, h crudHandlers) {
	g.GET(path, h.List)
	g.POST(path, h.Create)
	g.GET(path+"/:id", h.Find)
	g.PUT(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}

func runCatalogRouter(api *echo.Group, store *repositories.Store, timeout time.Duration, logger *zap.Logger) {
	var (
		companyService  = services.NewCatalogService[entities.Company](store.Companies, "companies", logger)
		customerService = services.NewCatalogService[entities.Customer](store.Customers, "customers", logger)
		projectService  = services.NewProjectService(store.Projects, store.Customers, logger)
		productService  = services.NewCatalogService[entities.Product](store.Products, "products", logger)
		batchService    = services.NewCatalogService[entities.BatchNumber](store.BatchNumbers, "batch-numbers", logger)
	)

	mountCRUD(api, "/companies", controllers.NewCatalogController[entities.Company, dto.CreateCompanyDTO, dto.UpdateCompanyDTO](
		companyService, "Компании", timeout, logger))
	mountCRUD(api, "/customers", controllers.NewCatalogController[entities.Customer, dto.CreateCustomerDTO, dto.UpdateCustomerDTO](
		customerService, "Заказчики", timeout, logger))
	mountCRUD(api, "/projects", controllers.NewCatalogController[entities.Project, dto.CreateProjectDTO, dto.UpdateProjectDTO](
		projectService, "Проекты", timeout, logger))
	mountCRUD(api, "/products", controllers.NewCatalogController[entities.Product, dto.CreateProductDTO, dto.UpdateProductDTO](
		productService, "Продукция", timeout, logger))
	mountCRUD(api, "/batch-numbers", controllers.NewCatalogController[entities.BatchNumber, dto.CreateBatchNumberDTO, dto.UpdateBatchNumberDTO](
		batchService, "Номера партий", timeout, logger))
}
