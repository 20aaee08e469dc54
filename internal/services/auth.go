package services

import (
	"context"

	"go.uber.org/zap"

	"cert-system/internal/dto"
	"cert-system/pkg/config"
	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/service"
	"cert-system/pkg/utils"
)

// AuthService выдаёт токены единственной учётной записи администратора из конфигурации.
type AuthService struct {
	admin      config.AdminConfig
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(admin config.AdminConfig, jwtService service.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{admin: admin, jwtService: jwtService, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, in dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	if s.admin.PasswordHash == "" {
		s.logger.Warn("Вход администратора отключён: не задан ADMIN_PASSWORD_HASH")
		return nil, apperrors.ErrInvalidCredentials
	}
	if in.Login != s.admin.Login {
		s.logger.Warn("Неудачная попытка входа", zap.String("login", in.Login))
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(s.admin.PasswordHash, in.Password); err != nil {
		s.logger.Warn("Неудачная попытка входа", zap.String("login", in.Login))
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(in.Login)
	if err != nil {
		s.logger.Error("Ошибка генерации токенов", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Администратор вошёл в систему", zap.String("login", in.Login))
	return &dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
	}, nil
}
