package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cert-system/internal/entities"
	"cert-system/internal/repositories"
)

// ProjectService хранит в проекте копию имени заказчика.
type ProjectService struct {
	*CatalogService[entities.Project, *entities.Project]
	customers repositories.DocumentRepositoryInterface[entities.Customer]
	now       func() time.Time
}

func NewProjectService(
	projects repositories.DocumentRepositoryInterface[entities.Project],
	customers repositories.DocumentRepositoryInterface[entities.Customer],
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		CatalogService: NewCatalogService[entities.Project](projects, "projects", logger),
		customers:      customers,
		now:            time.Now,
	}
}

func (s *ProjectService) Create(ctx context.Context, item *entities.Project) (*entities.Project, error) {
	customer, err := s.customers.Find(ctx, item.CustomerID)
	if err != nil {
		return nil, referenceError("customer_id", err)
	}
	item.CustomerName = customer.Name
	item.SnapshotAt = s.now().UTC()
	return s.CatalogService.Create(ctx, item)
}

// Update при смене заказчика обновляет и его копию.
func (s *ProjectService) Update(ctx context.Context, id string, fields map[string]interface{}) (*entities.Project, error) {
	if raw, ok := fields["customer_id"]; ok {
		customerID, _ := raw.(string)
		customer, err := s.customers.Find(ctx, customerID)
		if err != nil {
			return nil, referenceError("customer_id", err)
		}
		fields["customer_name"] = customer.Name
		fields["snapshot_at"] = s.now().UTC()
	}
	return s.CatalogService.Update(ctx, id, fields)
}
