package services

import (
	"context"

	"go.uber.org/zap"

	"cert-system/internal/repositories"
	"cert-system/pkg/types"
)

type CatalogServiceInterface[T any] interface {
	List(ctx context.Context, filter types.Filter) ([]T, uint64, error)
	Find(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id string) error
}

// CatalogService: общий CRUD справочников.
type CatalogService[T any, P types.DocumentPtr[T]] struct {
	repo   repositories.DocumentRepositoryInterface[T]
	label  string
	logger *zap.Logger
}

func NewCatalogService[T any, P types.DocumentPtr[T]](repo repositories.DocumentRepositoryInterface[T], label string, logger *zap.Logger) *CatalogService[T, P] {
	return &CatalogService[T, P]{repo: repo, label: label, logger: logger}
}

// List по умолчанию сортирует по имени.
func (s *CatalogService[T, P]) List(ctx context.Context, filter types.Filter) ([]T, uint64, error) {
	if len(filter.Sort) == 0 {
		filter.Sort = map[string]string{"name": "asc"}
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка получения списка", zap.String("catalog", s.label), zap.Error(err))
		return nil, 0, err
	}
	return items, total, nil
}

func (s *CatalogService[T, P]) Find(ctx context.Context, id string) (*T, error) {
	return s.repo.Find(ctx, id)
}

func (s *CatalogService[T, P]) Create(ctx context.Context, item *T) (*T, error) {
	P(item).Envelope().ID = ""
	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("Ошибка создания записи", zap.String("catalog", s.label), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Запись создана", zap.String("catalog", s.label), zap.String("id", P(item).Envelope().ID))
	return item, nil
}

// Update применяет только переданные поля.
func (s *CatalogService[T, P]) Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	if len(fields) == 0 {
		return s.repo.Find(ctx, id)
	}
	item, err := s.repo.Patch(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Запись обновлена", zap.String("catalog", s.label), zap.String("id", id))
	return item, nil
}

func (s *CatalogService[T, P]) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Запись деактивирована", zap.String("catalog", s.label), zap.String("id", id))
	return nil
}
