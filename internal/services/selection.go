package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"cert-system/internal/repositories"
	apperrors "cert-system/pkg/errors"
)

// SelectionService ведёт счётчик поколений выбора для клиентской сессии.
// Ответ на запрос со старым поколением отбрасывается.
type SelectionService struct {
	cache  repositories.CacheRepositoryInterface
	logger *zap.Logger
}

func NewSelectionService(cache repositories.CacheRepositoryInterface, logger *zap.Logger) *SelectionService {
	return &SelectionService{cache: cache, logger: logger}
}

func generationKey(session string) string { return fmt.Sprintf("selection:%s:generation", session) }

func (s *SelectionService) Next(ctx context.Context, session string) (int64, error) {
	if session == "" {
		return 0, apperrors.NewBadRequestError("Не указана сессия выбора")
	}
	return s.cache.Incr(ctx, generationKey(session))
}

func (s *SelectionService) Latest(ctx context.Context, session string) (int64, error) {
	val, err := s.cache.Get(ctx, generationKey(session))
	if errors.Is(err, repositories.ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// Check возвращает ErrStaleSelection, если после generation уже выдано более новое поколение.
// Пустая сессия означает, что клиент не отслеживает поколения.
func (s *SelectionService) Check(ctx context.Context, session string, generation int64) error {
	if session == "" {
		return nil
	}
	latest, err := s.Latest(ctx, session)
	if err != nil {
		s.logger.Warn("Не удалось получить поколение выбора", zap.String("session", session), zap.Error(err))
		return nil
	}
	if generation < latest {
		s.logger.Debug("Устаревший запрос отброшен",
			zap.String("session", session), zap.Int64("generation", generation), zap.Int64("latest", latest))
		return apperrors.ErrStaleSelection
	}
	return nil
}
