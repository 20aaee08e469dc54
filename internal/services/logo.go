package services

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"cert-system/config"
	"cert-system/internal/dto"
	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/filestorage"
	"cert-system/pkg/validation"
)

type LogoService struct {
	storage     filestorage.FileStorageInterface
	preferences *PreferencesService
	logger      *zap.Logger
	now         func() time.Time
}

func NewLogoService(storage filestorage.FileStorageInterface, preferences *PreferencesService, logger *zap.Logger) *LogoService {
	return &LogoService{storage: storage, preferences: preferences, logger: logger, now: time.Now}
}

func (s *LogoService) rules() config.UploadConfig {
	return config.UploadContexts[config.UploadContextCompanyLogo]
}

// Upload проверяет файл по содержимому и сохраняет его под префиксом логотипов.
func (s *LogoService) Upload(ctx context.Context, clientID string, fileHeader *multipart.FileHeader) (*dto.LogoDTO, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := validation.ValidateFile(fileHeader, src, config.UploadContextCompanyLogo); err != nil {
		s.logger.Warn("Логотип отклонён", zap.String("file", fileHeader.Filename), zap.Error(err))
		return nil, apperrors.NewHttpError(http.StatusBadRequest, err.Error(), apperrors.ErrUnsupportedFormat, map[string]string{"file": err.Error()})
	}

	path, err := s.storage.Save(src, fileHeader.Filename, s.rules().PathPrefix)
	if err != nil {
		s.logger.Error("Ошибка сохранения логотипа", zap.Error(err))
		return nil, err
	}

	logo := dto.LogoDTO{
		URL:        filestorage.URLPrefix + path,
		FileName:   filepath.Base(path),
		FullPath:   path,
		Size:       fileHeader.Size,
		ModifiedAt: s.now().Format("2006-01-02 15:04:05"),
	}
	last := dto.LastLogoDTO{URL: logo.URL, FileName: fileHeader.Filename, UploadedAt: logo.ModifiedAt}
	if err := s.preferences.SetLastLogo(ctx, clientID, last); err != nil {
		s.logger.Warn("Не удалось запомнить последний логотип", zap.Error(err))
	}

	s.logger.Info("Логотип загружен", zap.String("path", path), zap.Int64("size", fileHeader.Size))
	return &logo, nil
}

func (s *LogoService) List(ctx context.Context) ([]dto.LogoDTO, error) {
	files, err := s.storage.List(s.rules().PathPrefix)
	if err != nil {
		return nil, err
	}
	logos := make([]dto.LogoDTO, 0, len(files))
	for _, f := range files {
		logos = append(logos, dto.NewLogoDTO(f))
	}
	return logos, nil
}

func (s *LogoService) Delete(ctx context.Context, clientID, path string) error {
	relative := strings.TrimPrefix(strings.TrimPrefix(path, filestorage.URLPrefix), "/")
	if !strings.HasPrefix(relative, s.rules().PathPrefix+"/") {
		return apperrors.NewBadRequestError("Путь не относится к логотипам")
	}
	if err := s.storage.Delete(relative); err != nil {
		return err
	}
	s.preferences.ForgetLogo(ctx, clientID, filestorage.URLPrefix+relative)
	s.logger.Info("Логотип удалён", zap.String("path", relative))
	return nil
}

// Read возвращает содержимое логотипа по URL из карточки компании.
// Внешние URL не загружаются.
func (s *LogoService) Read(logoURL string) ([]byte, bool) {
	if !strings.HasPrefix(logoURL, filestorage.URLPrefix) {
		return nil, false
	}
	rc, err := s.storage.Open(logoURL)
	if err != nil {
		s.logger.Warn("Логотип недоступен", zap.String("url", logoURL), zap.Error(err))
		return nil, false
	}
	defer rc.Close()

	maxBytes := s.rules().MaxSizeMB * 1024 * 1024
	data, err := io.ReadAll(io.LimitReader(rc, maxBytes+1))
	if err != nil || int64(len(data)) > maxBytes {
		s.logger.Warn("Не удалось прочитать логотип", zap.String("url", logoURL), zap.Error(err))
		return nil, false
	}
	return data, true
}
