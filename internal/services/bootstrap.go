package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cert-system/internal/dto"
	"cert-system/internal/entities"
	"cert-system/internal/repositories"
	apperrors "cert-system/pkg/errors"
)

// BootstrapService наполняет пустую базу демонстрационными справочниками
// и выполняет административную очистку.
type BootstrapService struct {
	store  *repositories.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewBootstrapService(store *repositories.Store, logger *zap.Logger) *BootstrapService {
	return &BootstrapService{store: store, logger: logger, now: time.Now}
}

// Bootstrap без force ничего не делает, если компании уже есть.
func (s *BootstrapService) Bootstrap(ctx context.Context, force bool) (*dto.BootstrapResultDTO, error) {
	result := &dto.BootstrapResultDTO{Created: map[string]int{
		repositories.Companies.Name:    0,
		repositories.Customers.Name:    0,
		repositories.Projects.Name:     0,
		repositories.Products.Name:     0,
		repositories.BatchNumbers.Name: 0,
	}}

	if !force {
		count, err := s.store.Companies.Count(ctx, false)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			s.logger.Info("Справочники уже заполнены, начальная загрузка пропущена", zap.Uint64("companies", count))
			result.Skipped = true
			return result, nil
		}
	}

	for _, c := range defaultCompanies() {
		c := c
		if err := s.store.Companies.Create(ctx, &c); err != nil {
			return nil, fmt.Errorf("компания %q: %w", c.Name, err)
		}
		result.Created[repositories.Companies.Name]++
	}

	customers := defaultCustomers()
	for i := range customers {
		if err := s.store.Customers.Create(ctx, &customers[i]); err != nil {
			return nil, fmt.Errorf("заказчик %q: %w", customers[i].Name, err)
		}
		result.Created[repositories.Customers.Name]++
	}

	snapshotAt := s.now().UTC()
	for _, p := range defaultProjects(customers) {
		p := p
		p.SnapshotAt = snapshotAt
		if err := s.store.Projects.Create(ctx, &p); err != nil {
			return nil, fmt.Errorf("проект %q: %w", p.Name, err)
		}
		result.Created[repositories.Projects.Name]++
	}

	products := defaultProducts()
	for i := range products {
		if err := s.store.Products.Create(ctx, &products[i]); err != nil {
			return nil, fmt.Errorf("изделие %q: %w", products[i].Name, err)
		}
		result.Created[repositories.Products.Name]++
	}

	for _, b := range defaultBatchNumbers(products, s.now()) {
		b := b
		if err := s.store.BatchNumbers.Create(ctx, &b); err != nil {
			return nil, fmt.Errorf("партия %q: %w", b.Number, err)
		}
		result.Created[repositories.BatchNumbers.Name]++
	}

	s.logger.Info("Начальная загрузка справочников выполнена", zap.Any("created", result.Created), zap.Bool("force", force))
	return result, nil
}

// Status: число активных записей по коллекциям.
func (s *BootstrapService) Status(ctx context.Context) (*dto.StatusReportDTO, error) {
	report := &dto.StatusReportDTO{Collections: make(map[string]uint64)}
	for name, p := range s.store.Purgers() {
		n, err := p.Count(ctx, false)
		if err != nil {
			return nil, err
		}
		report.Collections[name] = n
	}
	return report, nil
}

// Clear физически удаляет записи одной коллекции или всех ("all").
func (s *BootstrapService) Clear(ctx context.Context, collection string) (*dto.ClearResultDTO, error) {
	purgers := s.store.Purgers()
	result := &dto.ClearResultDTO{Deleted: make(map[string]int64)}

	targets := []string{collection}
	if collection == "all" {
		targets = targets[:0]
		for _, c := range repositories.AllCollections {
			targets = append(targets, c.Name)
		}
	}

	for _, name := range targets {
		p, ok := purgers[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownCollection, name)
		}
		n, err := p.HardDeleteAll(ctx)
		if err != nil {
			return nil, err
		}
		result.Deleted[name] = n
	}

	s.logger.Warn("Очистка коллекций", zap.Any("deleted", result.Deleted))
	return result, nil
}

func defaultCompanies() []entities.Company {
	return []entities.Company{{
		Name:       "Nordic Precast Oy",
		Address:    "Teollisuustie 12, 33100 Tampere",
		Phone:      "+358 3 123 4567",
		Email:      "info@nordicprecast.fi",
		Website:    "https://www.nordicprecast.fi",
		BusinessID: "1234567-8",
	}}
}

func defaultCustomers() []entities.Customer {
	return []entities.Customer{
		{Name: "Rakennus Virtanen Oy", Address: "Hämeenkatu 5, 33200 Tampere", Phone: "+358 40 111 2222", Email: "toimisto@virtanen.fi", ContactPerson: "Matti Virtanen"},
		{Name: "Koti-Rakentajat Ky", Address: "Aleksanterinkatu 20, 00100 Helsinki", Phone: "+358 50 333 4444", Email: "info@kotirakentajat.fi", ContactPerson: "Anna Korhonen"},
		{Name: "Pohjola Infra Oy", Address: "Kauppakatu 8, 90100 Oulu", Phone: "+358 44 555 6666", Email: "hankinta@pohjolainfra.fi", ContactPerson: "Juha Mäkinen"},
	}
}

// defaultProjects: по проекту на первых двух заказчиков и два на третьего.
func defaultProjects(customers []entities.Customer) []entities.Project {
	specs := []struct {
		customer                             int
		name, address, location, description string
	}{
		{0, "Omakotitalo Kaleva", "Kalevantie 14, Tampere", "Kaleva", "Single-story detached house"},
		{1, "Paritalo Munkkiniemi", "Munkkiniemen puistotie 3, Helsinki", "Munkkiniemi", "Two-story semi-detached house"},
		{2, "Varastohalli Ritaharju", "Ritaharjuntie 40, Oulu", "Ritaharju", "Precast warehouse frame"},
		{2, "Pysäköintitalo Keskusta", "Isokatu 1, Oulu", "Keskusta", "Precast parking structure"},
	}
	projects := make([]entities.Project, 0, len(specs))
	for _, sp := range specs {
		c := customers[sp.customer]
		projects = append(projects, entities.Project{
			Name:         sp.name,
			CustomerID:   c.ID,
			CustomerName: c.Name,
			Address:      sp.address,
			Location:     sp.location,
			Description:  sp.description,
		})
	}
	return projects
}

func defaultProducts() []entities.Product {
	return []entities.Product{
		{Name: "Hollow-core slab HC320", Description: "Prestressed hollow-core slab, 320 mm", Category: "Slabs", Unit: "m2"},
		{Name: "Sandwich wall element SW300", Description: "Insulated load-bearing sandwich wall, 300 mm", Category: "Walls", Unit: "pcs"},
	}
}

func defaultBatchNumbers(products []entities.Product, now time.Time) []entities.BatchNumber {
	day := now.Format("060102")
	return []entities.BatchNumber{
		{Number: "HC-" + day + "-01", ProductID: products[0].ID, ProductionDate: now.Format(entities.DateLayout), Quantity: 120, Notes: "Casting line 1"},
		{Number: "SW-" + day + "-01", ProductID: products[1].ID, ProductionDate: now.Format(entities.DateLayout), Quantity: 36, Notes: "Casting line 3"},
	}
}
