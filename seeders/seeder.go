package seeders

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cert-system/internal/dto"
	"cert-system/internal/entities"
	"cert-system/internal/export"
	"cert-system/internal/repositories"
	"cert-system/internal/services"
	"cert-system/pkg/filestorage"
	"cert-system/pkg/types"
)

// Seeder собирает сервисы, через которые CLI наполняет хранилище.
type Seeder struct {
	store        *repositories.Store
	bootstrap    *services.BootstrapService
	templates    *services.PhaseTemplateService
	deliveries   *services.WorkDeliveryService
	certificates *services.CertificateService
	logger       *zap.Logger
}

func NewSeeder(store *repositories.Store, cache repositories.CacheRepositoryInterface, files filestorage.FileStorageInterface, dateFormat string, logger *zap.Logger) *Seeder {
	prefs := services.NewPreferencesService(cache, logger)
	logos := services.NewLogoService(files, prefs, logger)
	resolver := services.NewReferenceResolver(store)
	renderer := export.NewPDFRenderer(logger)
	templates := services.NewPhaseTemplateService(store.PhaseTemplates, store.TxManager, logger)

	return &Seeder{
		store:        store,
		bootstrap:    services.NewBootstrapService(store, logger),
		templates:    templates,
		deliveries:   services.NewWorkDeliveryService(store, templates, resolver, prefs, logos, renderer, dateFormat, logger),
		certificates: services.NewCertificateService(store, resolver, prefs, logos, renderer, dateFormat, logger),
		logger:       logger,
	}
}

func (s *Seeder) Bootstrap(ctx context.Context, force bool) (*dto.BootstrapResultDTO, error) {
	return s.bootstrap.Bootstrap(ctx, force)
}

func (s *Seeder) PhaseTemplates(ctx context.Context) (int, error) {
	return s.templates.InitializeDefaults(ctx)
}

func (s *Seeder) Status(ctx context.Context) (*dto.StatusReportDTO, error) {
	return s.bootstrap.Status(ctx)
}

func (s *Seeder) Clear(ctx context.Context, collection string) (*dto.ClearResultDTO, error) {
	return s.bootstrap.Clear(ctx, collection)
}

// TestDataResult: сколько тестовых документов создано.
type TestDataResult struct {
	Certificates int `json:"certificates"`
	Deliveries   int `json:"deliveries"`
}

// TestData создаёт по документу каждого вида для каждого проекта.
// Справочники и шаблоны этапов подготавливаются, если их ещё нет.
func (s *Seeder) TestData(ctx context.Context) (*TestDataResult, error) {
	if _, err := s.bootstrap.Bootstrap(ctx, false); err != nil {
		return nil, err
	}
	if _, err := s.templates.InitializeDefaults(ctx); err != nil {
		return nil, err
	}

	all := types.Filter{}
	companies, _, err := s.store.Companies.List(ctx, all)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, fmt.Errorf("нет компаний для тестовых данных")
	}
	company := companies[0]

	projects, _, err := s.store.Projects.List(ctx, all)
	if err != nil {
		return nil, err
	}
	products, _, err := s.store.Products.List(ctx, all)
	if err != nil {
		return nil, err
	}
	batches, _, err := s.store.BatchNumbers.List(ctx, all)
	if err != nil {
		return nil, err
	}

	result := &TestDataResult{}
	for i, p := range projects {
		date := p.CreatedAt.AddDate(0, 0, -7*i).Format(entities.DateLayout)

		if len(products) > 0 {
			product := products[i%len(products)]
			cert := dto.CertificateSelectionDTO{
				CompanyID:    company.ID,
				CustomerID:   p.CustomerID,
				ProjectID:    p.ID,
				ProductID:    product.ID,
				DeliveryDate: date,
				BatchNumbers: batchNumbersFor(batches, product.ID),
				Notes:        "Testitoimitus",
			}
			if _, err := s.certificates.Create(ctx, cert); err != nil {
				return nil, fmt.Errorf("сертификат для проекта %q: %w", p.Name, err)
			}
			result.Certificates++
		}

		delivery := dto.DeliverySelectionDTO{
			CompanyID:    company.ID,
			CustomerID:   p.CustomerID,
			ProjectID:    p.ID,
			WorkType:     string(entities.WorkTypePrecastConcrete),
			DeliveryDate: date,
			Notes:        "Testitoimitus",
		}
		if i%2 == 1 {
			delivery.WorkType = string(entities.WorkTypeHouseConstruction)
			delivery.BuildingType = string(entities.BuildingTypeTwoStory)
		}
		if _, err := s.deliveries.Create(ctx, delivery); err != nil {
			return nil, fmt.Errorf("поставка для проекта %q: %w", p.Name, err)
		}
		result.Deliveries++
	}

	s.logger.Info("Тестовые документы созданы", zap.Int("certificates", result.Certificates), zap.Int("deliveries", result.Deliveries))
	return result, nil
}

func batchNumbersFor(batches []entities.BatchNumber, productID string) []string {
	numbers := make([]string, 0)
	for _, b := range batches {
		if b.ProductID == productID {
			numbers = append(numbers, b.Number)
		}
	}
	return numbers
}
