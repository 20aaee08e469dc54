package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cert-system/internal/dto"
	"cert-system/internal/entities"
	"cert-system/internal/repositories"
)

// PreferencesService хранит настройки клиента (по X-Client-ID) в кеше без срока жизни.
type PreferencesService struct {
	cache  repositories.CacheRepositoryInterface
	logger *zap.Logger
}

func NewPreferencesService(cache repositories.CacheRepositoryInterface, logger *zap.Logger) *PreferencesService {
	return &PreferencesService{cache: cache, logger: logger}
}

func logoSizeKey(clientID string) string { return fmt.Sprintf("prefs:%s:logo_size", clientID) }
func lastLogoKey(clientID string) string { return fmt.Sprintf("prefs:%s:last_logo", clientID) }

// LogoSize возвращает medium, если значение не задано или повреждено.
func (s *PreferencesService) LogoSize(ctx context.Context, clientID string) entities.LogoSize {
	val, err := s.cache.Get(ctx, logoSizeKey(clientID))
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			s.logger.Warn("Не удалось прочитать размер логотипа", zap.String("client", clientID), zap.Error(err))
		}
		return entities.LogoSizeMedium
	}
	size := entities.LogoSize(val)
	if !size.IsValid() {
		return entities.LogoSizeMedium
	}
	return size
}

func (s *PreferencesService) SetLogoSize(ctx context.Context, clientID string, size entities.LogoSize) error {
	return s.cache.Set(ctx, logoSizeKey(clientID), string(size), 0)
}

func (s *PreferencesService) LastLogo(ctx context.Context, clientID string) *dto.LastLogoDTO {
	val, err := s.cache.Get(ctx, lastLogoKey(clientID))
	if err != nil {
		return nil
	}
	var logo dto.LastLogoDTO
	if err := json.Unmarshal([]byte(val), &logo); err != nil {
		s.logger.Warn("Повреждены данные последнего логотипа", zap.String("client", clientID), zap.Error(err))
		return nil
	}
	return &logo
}

func (s *PreferencesService) SetLastLogo(ctx context.Context, clientID string, logo dto.LastLogoDTO) error {
	raw, err := json.Marshal(logo)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, lastLogoKey(clientID), raw, 0)
}

// ForgetLogo сбрасывает последний логотип, если он совпадает с удалённым.
func (s *PreferencesService) ForgetLogo(ctx context.Context, clientID, url string) {
	if last := s.LastLogo(ctx, clientID); last != nil && last.URL == url {
		_ = s.cache.Del(ctx, lastLogoKey(clientID))
	}
}

func (s *PreferencesService) Get(ctx context.Context, clientID string) dto.PreferencesDTO {
	return dto.PreferencesDTO{
		LogoSize: string(s.LogoSize(ctx, clientID)),
		LastLogo: s.LastLogo(ctx, clientID),
	}
}
