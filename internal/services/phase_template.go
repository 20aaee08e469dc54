package services

import (
	"context"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"cert-system/internal/dto"
	"cert-system/internal/entities"
	"cert-system/internal/repositories"
	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/types"
)

type PhaseTemplateService struct {
	repo      repositories.DocumentRepositoryInterface[entities.PhaseTemplate]
	txManager repositories.TxManagerInterface
	logger    *zap.Logger
}

func NewPhaseTemplateService(
	repo repositories.DocumentRepositoryInterface[entities.PhaseTemplate],
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) *PhaseTemplateService {
	return &PhaseTemplateService{repo: repo, txManager: txManager, logger: logger}
}

func (s *PhaseTemplateService) all(ctx context.Context, workType entities.WorkType) ([]entities.PhaseTemplate, error) {
	filter := types.Filter{Filter: map[string]interface{}{}}
	if workType != "" {
		filter.Filter["work_type"] = string(workType)
	}
	items, _, err := s.repo.List(ctx, filter)
	return items, err
}

func sortByName(items []entities.PhaseTemplate) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}

// Eligible возвращает активные шаблоны, подходящие под выбор, по имени.
// Без типа работ возвращаются все активные шаблоны.
func (s *PhaseTemplateService) Eligible(ctx context.Context, workType entities.WorkType, buildingType entities.BuildingType) ([]entities.PhaseTemplate, error) {
	items, err := s.all(ctx, workType)
	if err != nil {
		s.logger.Error("Ошибка получения шаблонов этапов", zap.Error(err))
		return nil, err
	}
	if workType == "" {
		sortByName(items)
		return items, nil
	}

	eligible := make([]entities.PhaseTemplate, 0, len(items))
	for _, t := range items {
		if t.Matches(workType, buildingType) {
			eligible = append(eligible, t)
		}
	}
	sortByName(eligible)
	return eligible, nil
}

// DefaultFor выбирает шаблон для выбора без явного шаблона:
// сначала системный, иначе первый по имени. nil: подходящих нет.
func (s *PhaseTemplateService) DefaultFor(ctx context.Context, workType entities.WorkType, buildingType entities.BuildingType) (*entities.PhaseTemplate, error) {
	eligible, err := s.Eligible(ctx, workType, buildingType)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, nil
	}
	for i := range eligible {
		if eligible[i].IsDefault {
			return &eligible[i], nil
		}
	}
	return &eligible[0], nil
}

func (s *PhaseTemplateService) Find(ctx context.Context, id string) (*entities.PhaseTemplate, error) {
	return s.repo.Find(ctx, id)
}

// Instantiate копирует этапы шаблона для нового документа.
func (s *PhaseTemplateService) Instantiate(ctx context.Context, id string) (*entities.PhaseTemplate, entities.PhaseList, error) {
	t, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return t, t.Instantiate(), nil
}

func templateFromDTO(in dto.CreatePhaseTemplateDTO) (entities.PhaseTemplate, error) {
	t := entities.PhaseTemplate{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		WorkType:     entities.WorkType(in.WorkType),
		BuildingType: entities.BuildingType(in.BuildingType),
		IsDefault:    in.IsDefault,
		Phases:       dto.PhaseInputs(in.Phases),
	}
	if t.WorkType.RequiresBuildingType() && !t.BuildingType.IsValid() {
		return t, apperrors.NewValidationError("Для строительства дома нужен тип здания", []string{"building_type"})
	}
	if !t.WorkType.RequiresBuildingType() {
		t.BuildingType = ""
	}
	if len(t.Phases) == 0 {
		return t, apperrors.ErrEmptyPhaseTemplate
	}
	return t, nil
}

func (s *PhaseTemplateService) Create(ctx context.Context, in dto.CreatePhaseTemplateDTO) (*entities.PhaseTemplate, error) {
	t, err := templateFromDTO(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &t); err != nil {
		s.logger.Error("Ошибка создания шаблона этапов", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Шаблон этапов создан", zap.String("id", t.ID), zap.Int("phases", len(t.Phases)))
	return &t, nil
}

// Update полностью заменяет содержимое шаблона.
func (s *PhaseTemplateService) Update(ctx context.Context, id string, in dto.UpdatePhaseTemplateDTO) (*entities.PhaseTemplate, error) {
	next, err := templateFromDTO(in.CreatePhaseTemplateDTO)
	if err != nil {
		return nil, err
	}

	var result *entities.PhaseTemplate
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.repo.FindForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		next.Document = current.Document
		if err := s.repo.Replace(ctx, tx, &next); err != nil {
			return err
		}
		result = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Шаблон этапов обновлён", zap.String("id", id))
	return result, nil
}

func (s *PhaseTemplateService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Шаблон этапов деактивирован", zap.String("id", id))
	return nil
}

// InitializeDefaults создаёт системные шаблоны, только если шаблонов ещё нет совсем
// (включая деактивированные).
func (s *PhaseTemplateService) InitializeDefaults(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx, true)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Info("Шаблоны этапов уже существуют, инициализация пропущена", zap.Uint64("count", count))
		return 0, nil
	}

	created := 0
	for _, t := range entities.DefaultPhaseTemplates() {
		t := t
		if err := s.repo.Create(ctx, &t); err != nil {
			return created, err
		}
		created++
	}
	s.logger.Info("Созданы шаблоны этапов по умолчанию", zap.Int("created", created))
	return created, nil
}

func (s *PhaseTemplateService) phases(t *entities.PhaseTemplate) *entities.PhaseList {
	return &t.Phases
}

func (s *PhaseTemplateService) apply(ctx context.Context, id string, op PhaseOp) (*entities.PhaseTemplate, error) {
	return mutatePhases[entities.PhaseTemplate](ctx, s.txManager, s.repo, id, s.phases, op)
}

func (s *PhaseTemplateService) AddPhase(ctx context.Context, id string, in dto.PhaseInputDTO) (*entities.PhaseTemplate, error) {
	return s.apply(ctx, id, addPhaseOp(in.Name, in.Description))
}

// RemovePhase не удаляет единственный этап шаблона.
func (s *PhaseTemplateService) RemovePhase(ctx context.Context, id string, number int) (*entities.PhaseTemplate, error) {
	remove := removePhaseOp(number)
	return s.apply(ctx, id, func(l *entities.PhaseList) (bool, error) {
		if len(*l) == 1 && l.IndexOf(number) == 0 {
			return false, apperrors.ErrEmptyPhaseTemplate
		}
		return remove(l)
	})
}

func (s *PhaseTemplateService) EditPhase(ctx context.Context, id string, number int, in dto.EditPhaseDTO) (*entities.PhaseTemplate, error) {
	return s.apply(ctx, id, editPhaseOp(number, in.Name, in.Description))
}

func (s *PhaseTemplateService) MovePhase(ctx context.Context, id string, number int, dir entities.MoveDirection) (*entities.PhaseTemplate, error) {
	return s.apply(ctx, id, movePhaseOp(number, dir))
}
