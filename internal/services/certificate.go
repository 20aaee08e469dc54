package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"cert-system/internal/dto"
	"cert-system/internal/entities"
	"cert-system/internal/export"
	"cert-system/internal/repositories"
	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/types"
	"cert-system/pkg/utils"
)

type CertificateService struct {
	repo        repositories.DocumentRepositoryInterface[entities.Certificate]
	resolver    *ReferenceResolver
	preferences *PreferencesService
	logos       *LogoService
	renderer    *export.PDFRenderer
	dateFormat  string
	logger      *zap.Logger
	now         func() time.Time
}

func NewCertificateService(
	store *repositories.Store,
	resolver *ReferenceResolver,
	preferences *PreferencesService,
	logos *LogoService,
	renderer *export.PDFRenderer,
	dateFormat string,
	logger *zap.Logger,
) *CertificateService {
	return &CertificateService{
		repo:        store.Certificates,
		resolver:    resolver,
		preferences: preferences,
		logos:       logos,
		renderer:    renderer,
		dateFormat:  dateFormat,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *CertificateService) build(ctx context.Context, form entities.CertificateForm) (*entities.Certificate, error) {
	deliveryDate, _ := form.ParsedDeliveryDate()
	refs, err := s.resolver.Resolve(ctx, ReferenceIDs{
		CompanyID:  form.CompanyID,
		CustomerID: form.CustomerID,
		ProjectID:  form.ProjectID,
		ProductID:  form.ProductID,
	})
	if err != nil {
		return nil, err
	}

	return &entities.Certificate{
		CompanyID:          form.CompanyID,
		CustomerID:         form.CustomerID,
		ProjectID:          form.ProjectID,
		ProductID:          form.ProductID,
		Company:            refs.Company.Snapshot(),
		Customer:           refs.Customer.Snapshot(),
		Project:            refs.Project.Snapshot(),
		Product:            refs.Product.Snapshot(),
		SnapshotAt:         s.now().UTC(),
		BatchNumbers:       entities.NewTagList(form.BatchNumbers...),
		DeliveryDate:       deliveryDate,
		WarrantyExpiration: entities.WarrantyExpiration(deliveryDate),
		Notes:              strings.TrimSpace(form.Notes),
		Status:             entities.CertificateStatusIssued,
	}, nil
}

func (s *CertificateService) Create(ctx context.Context, in dto.CertificateSelectionDTO) (*entities.Certificate, error) {
	form := in.ToForm()
	if missing := form.MissingFields(); len(missing) > 0 {
		return nil, apperrors.NewValidationError("Не заполнены обязательные поля", missing)
	}

	cert, err := s.build(ctx, form)
	if err != nil {
		return nil, err
	}
	cert.ID = utils.NewDocumentID(s.now())
	cert.CertificateNumber = entities.NewCertificateNumber(cert.ID)

	if err := s.repo.Create(ctx, cert); err != nil {
		s.logger.Error("Ошибка создания сертификата", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Сертификат выпущен",
		zap.String("number", cert.CertificateNumber), zap.Strings("batches", cert.BatchNumbers))
	return cert, nil
}

func (s *CertificateService) Preview(ctx context.Context, clientID string, in dto.CertificateSelectionDTO) (*dto.PreviewDTO[dto.CertificateDetailsDTO], *entities.Certificate, error) {
	form := in.ToForm()
	if missing := form.MissingFields(); len(missing) > 0 {
		return &dto.PreviewDTO[dto.CertificateDetailsDTO]{Ready: false, Missing: missing}, nil, nil
	}

	cert, err := s.build(ctx, form)
	if err != nil {
		return nil, nil, err
	}
	cert.CertificateNumber = "CERT-DRAFT"
	cert.CreatedAt = s.now()

	details := s.Details(ctx, clientID, cert)
	return &dto.PreviewDTO[dto.CertificateDetailsDTO]{Ready: true, Details: &details}, cert, nil
}

func (s *CertificateService) formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(s.dateFormat)
}

func (s *CertificateService) Details(ctx context.Context, clientID string, c *entities.Certificate) dto.CertificateDetailsDTO {
	issued := c.CreatedAt
	if issued.IsZero() {
		issued = s.now()
	}
	batches := []string(c.BatchNumbers)
	if batches == nil {
		batches = []string{}
	}

	return dto.CertificateDetailsDTO{
		CertificateNumber:  c.CertificateNumber,
		CompanyName:        c.Company.Name,
		CompanyAddress:     c.Company.Address,
		CompanyPhone:       c.Company.Phone,
		CompanyEmail:       c.Company.Email,
		CompanyWebsite:     c.Company.Website,
		CompanyBusinessID:  c.Company.BusinessID,
		CompanyLogoURL:     c.Company.LogoURL,
		CustomerName:       c.Customer.Name,
		CustomerAddress:    c.Customer.Address,
		CustomerContact:    c.Customer.ContactPerson,
		ProjectName:        c.Project.Name,
		ProjectAddress:     c.Project.Address,
		ProjectLocation:    c.Project.Location,
		ProductName:        c.Product.Name,
		ProductDescription: c.Product.Description,
		ProductCategory:    c.Product.Category,
		BatchNumbers:       batches,
		BatchNumbersText:   c.BatchNumbers.String(),
		DeliveryDate:       s.formatDate(c.DeliveryDate),
		WarrantyExpiration: s.formatDate(c.WarrantyExpiration),
		IssuedDate:         s.formatDate(issued),
		Notes:              c.Notes,
		LogoSize:           string(s.preferences.LogoSize(ctx, clientID)),
	}
}

func (s *CertificateService) ToDTO(c *entities.Certificate) dto.CertificateDTO {
	return dto.CertificateDTO{
		ID:                 c.ID,
		CertificateNumber:  c.CertificateNumber,
		CompanyID:          c.CompanyID,
		CustomerID:         c.CustomerID,
		ProjectID:          c.ProjectID,
		ProductID:          c.ProductID,
		Company:            c.Company,
		Customer:           c.Customer,
		Project:            c.Project,
		Product:            c.Product,
		SnapshotAt:         c.SnapshotAt.Format(time.RFC3339),
		BatchNumbers:       c.BatchNumbers,
		DeliveryDate:       c.DeliveryDate.Format(entities.DateLayout),
		WarrantyExpiration: c.WarrantyExpiration.Format(entities.DateLayout),
		Notes:              c.Notes,
		Status:             c.Status,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          c.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *CertificateService) List(ctx context.Context, filter types.Filter) ([]entities.Certificate, uint64, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка получения истории сертификатов", zap.Error(err))
		return nil, 0, err
	}
	return items, total, nil
}

func (s *CertificateService) Find(ctx context.Context, id string) (*entities.Certificate, error) {
	return s.repo.Find(ctx, id)
}

func (s *CertificateService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Сертификат деактивирован", zap.String("id", id))
	return nil
}

func (s *CertificateService) RenderPDF(ctx context.Context, clientID, id string) ([]byte, string, error) {
	c, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return s.render(ctx, clientID, c)
}

func (s *CertificateService) PreviewPDF(ctx context.Context, clientID string, in dto.CertificateSelectionDTO) ([]byte, string, error) {
	preview, c, err := s.Preview(ctx, clientID, in)
	if err != nil {
		return nil, "", err
	}
	if !preview.Ready {
		return nil, "", apperrors.NewValidationError("Не заполнены обязательные поля", preview.Missing)
	}
	return s.render(ctx, clientID, c)
}

func (s *CertificateService) render(ctx context.Context, clientID string, c *entities.Certificate) ([]byte, string, error) {
	details := s.Details(ctx, clientID, c)
	logo, _ := s.logos.Read(c.Company.LogoURL)

	data, err := s.renderer.Render(export.CertificateTemplate(), export.CertificateValues(details, logo))
	if err != nil {
		s.logger.Error("Ошибка формирования PDF сертификата", zap.String("number", c.CertificateNumber), zap.Error(err))
		return nil, "", err
	}
	return data, c.CertificateNumber + ".pdf", nil
}

func (s *CertificateService) ExportXLSX(ctx context.Context, filter types.Filter) ([]byte, error) {
	filter.WithPagination = false
	items, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data, err := export.WriteCertificatesXLSX(items, s.dateFormat)
	if err != nil {
		s.logger.Error("Ошибка выгрузки сертификатов в XLSX", zap.Error(err))
		return nil, err
	}
	return data, nil
}
