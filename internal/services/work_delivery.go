package services

import (
	"context"
	"net/http"
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

type WorkDeliveryService struct {
	repo        repositories.DocumentRepositoryInterface[entities.WorkDelivery]
	txManager   repositories.TxManagerInterface
	templates   *PhaseTemplateService
	resolver    *ReferenceResolver
	preferences *PreferencesService
	logos       *LogoService
	renderer    *export.PDFRenderer
	dateFormat  string
	logger      *zap.Logger
	now         func() time.Time
}

func NewWorkDeliveryService(
	store *repositories.Store,
	templates *PhaseTemplateService,
	resolver *ReferenceResolver,
	preferences *PreferencesService,
	logos *LogoService,
	renderer *export.PDFRenderer,
	dateFormat string,
	logger *zap.Logger,
) *WorkDeliveryService {
	return &WorkDeliveryService{
		repo:        store.WorkDeliveries,
		txManager:   store.TxManager,
		templates:   templates,
		resolver:    resolver,
		preferences: preferences,
		logos:       logos,
		renderer:    renderer,
		dateFormat:  dateFormat,
		logger:      logger,
		now:         time.Now,
	}
}

// resolvePhases подставляет этапы, если их нет в форме: из указанного шаблона
// или из шаблона по умолчанию для выбранного типа работ.
func (s *WorkDeliveryService) resolvePhases(ctx context.Context, form *entities.DeliveryForm) error {
	if len(form.Phases) > 0 || !form.WorkType.IsValid() {
		return nil
	}
	if form.WorkType.RequiresBuildingType() && !form.BuildingType.IsValid() {
		return nil
	}

	if form.TemplateID != "" {
		t, phases, err := s.templates.Instantiate(ctx, form.TemplateID)
		if err != nil {
			return referenceError("template_id", err)
		}
		if !t.Matches(form.WorkType, form.BuildingType) {
			return apperrors.NewHttpError(http.StatusBadRequest, "Шаблон не подходит к выбранному типу работ", apperrors.ErrBadRequest,
				map[string]string{"template_id": "не подходит"})
		}
		form.Phases = phases
		return nil
	}

	t, err := s.templates.DefaultFor(ctx, form.WorkType, form.BuildingType)
	if err != nil {
		return err
	}
	if t != nil {
		form.TemplateID = t.ID
		form.Phases = t.Instantiate()
	}
	return nil
}

func (s *WorkDeliveryService) build(ctx context.Context, form entities.DeliveryForm) (*entities.WorkDelivery, error) {
	deliveryDate, _ := form.ParsedDeliveryDate()
	refs, err := s.resolver.Resolve(ctx, ReferenceIDs{
		CompanyID:  form.CompanyID,
		CustomerID: form.CustomerID,
		ProjectID:  form.ProjectID,
	})
	if err != nil {
		return nil, err
	}

	status := form.Status
	if status == "" {
		status = entities.DeliveryStatusDraft
	}
	buildingType := form.BuildingType
	if !form.WorkType.RequiresBuildingType() {
		buildingType = ""
	}

	phases := form.Phases.Clone()
	phases.Renumber()

	return &entities.WorkDelivery{
		WorkType:     form.WorkType,
		BuildingType: buildingType,
		TemplateID:   form.TemplateID,
		CompanyID:    form.CompanyID,
		CustomerID:   form.CustomerID,
		ProjectID:    form.ProjectID,
		Company:      refs.Company.Snapshot(),
		Customer:     refs.Customer.Snapshot(),
		Project:      refs.Project.Snapshot(),
		SnapshotAt:   s.now().UTC(),
		DeliveryDate: deliveryDate,
		Notes:        strings.TrimSpace(form.Notes),
		Phases:       phases,
		Status:       status,
	}, nil
}

// Create проверяет форму до любых побочных эффектов, затем сохраняет поставку.
func (s *WorkDeliveryService) Create(ctx context.Context, in dto.DeliverySelectionDTO) (*entities.WorkDelivery, error) {
	form := in.ToForm()
	if err := s.resolvePhases(ctx, &form); err != nil {
		return nil, err
	}
	if missing := form.MissingFields(); len(missing) > 0 {
		return nil, apperrors.NewValidationError("Не заполнены обязательные поля", missing)
	}

	delivery, err := s.build(ctx, form)
	if err != nil {
		return nil, err
	}
	delivery.ID = utils.NewDocumentID(s.now())
	delivery.DeliveryNumber = entities.NewDeliveryNumber(delivery.WorkType, delivery.ID)

	if err := s.repo.Create(ctx, delivery); err != nil {
		s.logger.Error("Ошибка создания поставки", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Поставка создана",
		zap.String("number", delivery.DeliveryNumber), zap.Int("phases", len(delivery.Phases)))
	return delivery, nil
}

// Preview строит проекцию без сохранения. Неполная форма: не ошибка.
func (s *WorkDeliveryService) Preview(ctx context.Context, clientID string, in dto.DeliverySelectionDTO) (*dto.PreviewDTO[dto.DeliveryDetailsDTO], *entities.WorkDelivery, error) {
	form := in.ToForm()
	if err := s.resolvePhases(ctx, &form); err != nil {
		return nil, nil, err
	}
	if missing := form.MissingFields(); len(missing) > 0 {
		return &dto.PreviewDTO[dto.DeliveryDetailsDTO]{Ready: false, Missing: missing}, nil, nil
	}

	delivery, err := s.build(ctx, form)
	if err != nil {
		return nil, nil, err
	}
	delivery.DeliveryNumber = "WD-" + form.WorkType.Code() + "-DRAFT"
	delivery.CreatedAt = s.now()

	details := s.Details(ctx, clientID, delivery)
	return &dto.PreviewDTO[dto.DeliveryDetailsDTO]{Ready: true, Details: &details}, delivery, nil
}

func (s *WorkDeliveryService) formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(s.dateFormat)
}

// Details: плоская проекция для документа.
func (s *WorkDeliveryService) Details(ctx context.Context, clientID string, d *entities.WorkDelivery) dto.DeliveryDetailsDTO {
	rows := make([]dto.PhaseRowDTO, 0, len(d.Phases))
	for _, p := range d.Phases {
		row := dto.PhaseRowDTO{
			Number:      p.PhaseNumber,
			Name:        p.Name,
			Description: p.Description,
			IsCompleted: p.IsCompleted,
			Notes:       p.Notes,
		}
		if p.CompletedDate != nil {
			row.CompletedDate = s.formatDate(*p.CompletedDate)
		}
		rows = append(rows, row)
	}

	issued := d.CreatedAt
	if issued.IsZero() {
		issued = s.now()
	}

	return dto.DeliveryDetailsDTO{
		DeliveryNumber:    d.DeliveryNumber,
		CompanyName:       d.Company.Name,
		CompanyAddress:    d.Company.Address,
		CompanyPhone:      d.Company.Phone,
		CompanyEmail:      d.Company.Email,
		CompanyWebsite:    d.Company.Website,
		CompanyBusinessID: d.Company.BusinessID,
		CompanyLogoURL:    d.Company.LogoURL,
		CustomerName:      d.Customer.Name,
		CustomerAddress:   d.Customer.Address,
		CustomerContact:   d.Customer.ContactPerson,
		ProjectName:       d.Project.Name,
		ProjectAddress:    d.Project.Address,
		ProjectLocation:   d.Project.Location,
		WorkType:          string(d.WorkType),
		WorkTypeLabel:     d.WorkType.Label(),
		BuildingType:      string(d.BuildingType),
		BuildingTypeLabel: d.BuildingType.Label(),
		DeliveryDate:      s.formatDate(d.DeliveryDate),
		IssuedDate:        s.formatDate(issued),
		Status:            string(d.Status),
		Notes:             d.Notes,
		Phases:            rows,
		TotalPhases:       len(d.Phases),
		CompletedPhases:   d.Phases.CompletedCount(),
		CurrentPhase:      d.CurrentPhase(),
		LogoSize:          string(s.preferences.LogoSize(ctx, clientID)),
	}
}

func (s *WorkDeliveryService) ToDTO(d *entities.WorkDelivery) dto.WorkDeliveryDTO {
	return dto.WorkDeliveryDTO{
		ID:             d.ID,
		DeliveryNumber: d.DeliveryNumber,
		WorkType:       d.WorkType,
		BuildingType:   d.BuildingType,
		TemplateID:     d.TemplateID,
		CompanyID:      d.CompanyID,
		CustomerID:     d.CustomerID,
		ProjectID:      d.ProjectID,
		Company:        d.Company,
		Customer:       d.Customer,
		Project:        d.Project,
		SnapshotAt:     d.SnapshotAt.Format(time.RFC3339),
		DeliveryDate:   d.DeliveryDate.Format(entities.DateLayout),
		Notes:          d.Notes,
		Phases:         d.Phases,
		CurrentPhase:   d.CurrentPhase(),
		Status:         d.Status,
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      d.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *WorkDeliveryService) List(ctx context.Context, filter types.Filter) ([]entities.WorkDelivery, uint64, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка получения списка поставок", zap.Error(err))
		return nil, 0, err
	}
	return items, total, nil
}

func (s *WorkDeliveryService) Find(ctx context.Context, id string) (*entities.WorkDelivery, error) {
	return s.repo.Find(ctx, id)
}

// UpdateStatus не зависит от выполнения этапов.
func (s *WorkDeliveryService) UpdateStatus(ctx context.Context, id string, status entities.DeliveryStatus) (*entities.WorkDelivery, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("Недопустимый статус", []string{"status"})
	}
	d, err := s.repo.Patch(ctx, id, map[string]interface{}{"status": string(status)})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Статус поставки изменён", zap.String("id", id), zap.String("status", string(status)))
	return d, nil
}

func (s *WorkDeliveryService) UpdateNotes(ctx context.Context, id, notes string) (*entities.WorkDelivery, error) {
	return s.repo.Patch(ctx, id, map[string]interface{}{"notes": strings.TrimSpace(notes)})
}

func (s *WorkDeliveryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Поставка деактивирована", zap.String("id", id))
	return nil
}

func (s *WorkDeliveryService) phases(d *entities.WorkDelivery) *entities.PhaseList { return &d.Phases }

func (s *WorkDeliveryService) apply(ctx context.Context, id string, op PhaseOp) (*entities.WorkDelivery, error) {
	return mutatePhases[entities.WorkDelivery](ctx, s.txManager, s.repo, id, s.phases, op)
}

func (s *WorkDeliveryService) AddPhase(ctx context.Context, id string, in dto.PhaseInputDTO) (*entities.WorkDelivery, error) {
	return s.apply(ctx, id, addPhaseOp(in.Name, in.Description))
}

func (s *WorkDeliveryService) RemovePhase(ctx context.Context, id string, number int) (*entities.WorkDelivery, error) {
	return s.apply(ctx, id, removePhaseOp(number))
}

func (s *WorkDeliveryService) EditPhase(ctx context.Context, id string, number int, in dto.EditPhaseDTO) (*entities.WorkDelivery, error) {
	return s.apply(ctx, id, editPhaseOp(number, in.Name, in.Description))
}

func (s *WorkDeliveryService) MovePhase(ctx context.Context, id string, number int, dir entities.MoveDirection) (*entities.WorkDelivery, error) {
	return s.apply(ctx, id, movePhaseOp(number, dir))
}

// TogglePhase отмечает этап выполненным или снимает отметку.
func (s *WorkDeliveryService) TogglePhase(ctx context.Context, id string, number int, in dto.TogglePhaseDTO) (*entities.WorkDelivery, error) {
	now := s.now().UTC()
	d, err := s.apply(ctx, id, func(l *entities.PhaseList) (bool, error) {
		i := l.IndexOf(number)
		if i < 0 {
			return false, apperrors.ErrPhaseOutOfRange
		}
		return l.SetCompleted(i, in.IsCompleted, strings.TrimSpace(in.Notes), now), nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Отметка этапа изменена",
		zap.String("id", id), zap.Int("phase", number), zap.Bool("completed", in.IsCompleted),
		zap.Int("current_phase", d.CurrentPhase()))
	return d, nil
}

// RenderPDF печатает сохранённую поставку.
func (s *WorkDeliveryService) RenderPDF(ctx context.Context, clientID, id string) ([]byte, string, error) {
	d, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return s.render(ctx, clientID, d)
}

func (s *WorkDeliveryService) PreviewPDF(ctx context.Context, clientID string, in dto.DeliverySelectionDTO) ([]byte, string, error) {
	preview, d, err := s.Preview(ctx, clientID, in)
	if err != nil {
		return nil, "", err
	}
	if !preview.Ready {
		return nil, "", apperrors.NewValidationError("Не заполнены обязательные поля", preview.Missing)
	}
	return s.render(ctx, clientID, d)
}

func (s *WorkDeliveryService) render(ctx context.Context, clientID string, d *entities.WorkDelivery) ([]byte, string, error) {
	details := s.Details(ctx, clientID, d)
	logo, _ := s.logos.Read(d.Company.LogoURL)

	data, err := s.renderer.Render(export.WorkDeliveryTemplate(), export.DeliveryValues(details, logo))
	if err != nil {
		s.logger.Error("Ошибка формирования PDF поставки", zap.String("number", d.DeliveryNumber), zap.Error(err))
		return nil, "", err
	}
	return data, d.DeliveryNumber + ".pdf", nil
}

func (s *WorkDeliveryService) ExportXLSX(ctx context.Context, filter types.Filter) ([]byte, error) {
	filter.WithPagination = false
	items, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data, err := export.WriteDeliveriesXLSX(items, s.dateFormat)
	if err != nil {
		s.logger.Error("Ошибка выгрузки поставок в XLSX", zap.Error(err))
		return nil, err
	}
	return data, nil
}
