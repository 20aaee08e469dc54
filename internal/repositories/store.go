package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cert-system/internal/entities"
)

// Purger: то, что нужно административной очистке и отчёту о состоянии.
type Purger interface {
	HardDeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context, withInactive bool) (uint64, error)
}

// Store собирает репозитории всех коллекций над одним хранилищем.
type Store struct {
	Companies      DocumentRepositoryInterface[entities.Company]
	Customers      DocumentRepositoryInterface[entities.Customer]
	Projects       DocumentRepositoryInterface[entities.Project]
	Products       DocumentRepositoryInterface[entities.Product]
	BatchNumbers   DocumentRepositoryInterface[entities.BatchNumber]
	Certificates   DocumentRepositoryInterface[entities.Certificate]
	WorkDeliveries DocumentRepositoryInterface[entities.WorkDelivery]
	PhaseTemplates DocumentRepositoryInterface[entities.PhaseTemplate]
	TxManager      TxManagerInterface
}

func NewPostgresStore(pool *pgxpool.Pool, logger *zap.Logger) *Store {
	return &Store{
		Companies:      NewDocumentRepository[entities.Company](pool, Companies, logger),
		Customers:      NewDocumentRepository[entities.Customer](pool, Customers, logger),
		Projects:       NewDocumentRepository[entities.Project](pool, Projects, logger),
		Products:       NewDocumentRepository[entities.Product](pool, Products, logger),
		BatchNumbers:   NewDocumentRepository[entities.BatchNumber](pool, BatchNumbers, logger),
		Certificates:   NewDocumentRepository[entities.Certificate](pool, Certificates, logger),
		WorkDeliveries: NewDocumentRepository[entities.WorkDelivery](pool, WorkDeliveries, logger),
		PhaseTemplates: NewDocumentRepository[entities.PhaseTemplate](pool, PhaseTemplates, logger),
		TxManager:      NewTxManager(pool),
	}
}

func NewMemoryStore() *Store {
	return &Store{
		Companies:      NewMemoryDocumentRepository[entities.Company](Companies),
		Customers:      NewMemoryDocumentRepository[entities.Customer](Customers),
		Projects:       NewMemoryDocumentRepository[entities.Project](Projects),
		Products:       NewMemoryDocumentRepository[entities.Product](Products),
		BatchNumbers:   NewMemoryDocumentRepository[entities.BatchNumber](BatchNumbers),
		Certificates:   NewMemoryDocumentRepository[entities.Certificate](Certificates),
		WorkDeliveries: NewMemoryDocumentRepository[entities.WorkDelivery](WorkDeliveries),
		PhaseTemplates: NewMemoryDocumentRepository[entities.PhaseTemplate](PhaseTemplates),
		TxManager:      NewMemoryTxManager(),
	}
}

// Purgers возвращает коллекции в порядке AllCollections.
func (s *Store) Purgers() map[string]Purger {
	return map[string]Purger{
		Certificates.Name:   s.Certificates,
		WorkDeliveries.Name: s.WorkDeliveries,
		PhaseTemplates.Name: s.PhaseTemplates,
		BatchNumbers.Name:   s.BatchNumbers,
		Projects.Name:       s.Projects,
		Products.Name:       s.Products,
		Customers.Name:      s.Customers,
		Companies.Name:      s.Companies,
	}
}
