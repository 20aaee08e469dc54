package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cert-system/internal/dto"
	"cert-system/internal/entities"
	"cert-system/internal/export"
	"cert-system/internal/repositories"
	"cert-system/pkg/filestorage"
	"cert-system/pkg/types"
)

type testEnv struct {
	store        *repositories.Store
	cache        repositories.CacheRepositoryInterface
	prefs        *PreferencesService
	selections   *SelectionService
	templates    *PhaseTemplateService
	deliveries   *WorkDeliveryService
	certificates *CertificateService
	bootstrap    *BootstrapService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	store := repositories.NewMemoryStore()
	cache := repositories.NewMemoryCacheRepository()
	files, err := filestorage.NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	prefs := NewPreferencesService(cache, logger)
	logos := NewLogoService(files, prefs, logger)
	resolver := NewReferenceResolver(store)
	renderer := export.NewPDFRenderer(logger)
	templates := NewPhaseTemplateService(store.PhaseTemplates, store.TxManager, logger)

	return &testEnv{
		store:        store,
		cache:        cache,
		prefs:        prefs,
		selections:   NewSelectionService(cache, logger),
		templates:    templates,
		deliveries:   NewWorkDeliveryService(store, templates, resolver, prefs, logos, renderer, "02.01.2006", logger),
		certificates: NewCertificateService(store, resolver, prefs, logos, renderer, "02.01.2006", logger),
		bootstrap:    NewBootstrapService(store, logger),
	}
}

// seeded заполняет справочники и шаблоны этапов.
func (e *testEnv) seeded(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	_, err := e.bootstrap.Bootstrap(ctx, false)
	require.NoError(t, err)
	_, err = e.templates.InitializeDefaults(ctx)
	require.NoError(t, err)
	return e
}

type catalogIDs struct {
	company, customer, project, product string
}

// ids выбирает первый проект вместе с его заказчиком.
func (e *testEnv) ids(t *testing.T) catalogIDs {
	t.Helper()
	ctx := context.Background()

	companies, _, err := e.store.Companies.List(ctx, types.Filter{})
	require.NoError(t, err)
	require.NotEmpty(t, companies)

	projects, _, err := e.store.Projects.List(ctx, types.Filter{})
	require.NoError(t, err)
	require.NotEmpty(t, projects)

	products, _, err := e.store.Products.List(ctx, types.Filter{})
	require.NoError(t, err)
	require.NotEmpty(t, products)

	return catalogIDs{
		company:  companies[0].ID,
		customer: projects[0].CustomerID,
		project:  projects[0].ID,
		product:  products[0].ID,
	}
}

func (e *testEnv) deliverySelection(t *testing.T, workType entities.WorkType, buildingType entities.BuildingType) dto.DeliverySelectionDTO {
	ids := e.ids(t)
	return dto.DeliverySelectionDTO{
		CompanyID:    ids.company,
		CustomerID:   ids.customer,
		ProjectID:    ids.project,
		WorkType:     string(workType),
		BuildingType: string(buildingType),
		DeliveryDate: "2025-03-14",
	}
}
