package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cert-system/internal/dto"
	"cert-system/internal/entities"
	apperrors "cert-system/pkg/errors"
)

func TestPhaseTemplateInitializeDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.templates.InitializeDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	created, err = env.templates.InitializeDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)

	// деактивированные шаблоны тоже считаются
	all, err := env.templates.Eligible(ctx, "", "")
	require.NoError(t, err)
	for _, tpl := range all {
		require.NoError(t, env.templates.Delete(ctx, tpl.ID))
	}
	created, err = env.templates.InitializeDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestPhaseTemplateEligible(t *testing.T) {
	env := newTestEnv(t).seeded(t)
	ctx := context.Background()

	single, err := env.templates.Eligible(ctx, entities.WorkTypeHouseConstruction, entities.BuildingTypeSingleStory)
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Len(t, single[0].Phases, 8)

	precast, err := env.templates.DefaultFor(ctx, entities.WorkTypePrecastConcrete, "")
	require.NoError(t, err)
	require.NotNil(t, precast)
	assert.Len(t, precast.Phases, 5)

	all, err := env.templates.Eligible(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPhaseTemplateCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.templates.Create(ctx, dto.CreatePhaseTemplateDTO{
		Name:     "Без этапов",
		WorkType: string(entities.WorkTypePrecastConcrete),
	})
	assert.ErrorIs(t, err, apperrors.ErrEmptyPhaseTemplate)

	_, err = env.templates.Create(ctx, dto.CreatePhaseTemplateDTO{
		Name:     "Дом",
		WorkType: string(entities.WorkTypeHouseConstruction),
		Phases:   []dto.PhaseInputDTO{{Name: "Фундамент"}},
	})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Contains(t, httpErr.Fields, "building_type")

	tpl, err := env.templates.Create(ctx, dto.CreatePhaseTemplateDTO{
		Name:         "Склад",
		WorkType:     string(entities.WorkTypePrecastConcrete),
		BuildingType: string(entities.BuildingTypeTwoStory),
		Phases:       []dto.PhaseInputDTO{{Name: "Колонны"}, {Name: "Ригели"}},
	})
	require.NoError(t, err)
	assert.Empty(t, tpl.BuildingType)
	assert.Equal(t, 2, tpl.Phases[1].PhaseNumber)
}

func TestPhaseTemplateUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tpl, err := env.templates.Create(ctx, dto.CreatePhaseTemplateDTO{
		Name:     "Склад",
		WorkType: string(entities.WorkTypePrecastConcrete),
		Phases:   []dto.PhaseInputDTO{{Name: "Колонны"}},
	})
	require.NoError(t, err)

	updated, err := env.templates.Update(ctx, tpl.ID, dto.UpdatePhaseTemplateDTO{CreatePhaseTemplateDTO: dto.CreatePhaseTemplateDTO{
		Name:     "Склад v2",
		WorkType: string(entities.WorkTypePrecastConcrete),
		Phases:   []dto.PhaseInputDTO{{Name: "Колонны"}, {Name: "Плиты"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, tpl.ID, updated.ID)
	assert.Equal(t, tpl.CreatedAt, updated.CreatedAt)

	stored, err := env.templates.Find(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Склад v2", stored.Name)
	assert.Len(t, stored.Phases, 2)
}

func TestPhaseTemplateRemoveLastPhase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tpl, err := env.templates.Create(ctx, dto.CreatePhaseTemplateDTO{
		Name:     "Одна фаза",
		WorkType: string(entities.WorkTypePrecastConcrete),
		Phases:   []dto.PhaseInputDTO{{Name: "Монтаж"}},
	})
	require.NoError(t, err)

	_, err = env.templates.RemovePhase(ctx, tpl.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrEmptyPhaseTemplate)

	tpl, err = env.templates.AddPhase(ctx, tpl.ID, dto.PhaseInputDTO{Name: "Приёмка"})
	require.NoError(t, err)
	tpl, err = env.templates.RemovePhase(ctx, tpl.ID, 1)
	require.NoError(t, err)
	require.Len(t, tpl.Phases, 1)
	assert.Equal(t, "Приёмка", tpl.Phases[0].Name)
	assert.Equal(t, 1, tpl.Phases[0].PhaseNumber)
}

func TestPhaseTemplateInstantiateIsCopy(t *testing.T) {
	env := newTestEnv(t).seeded(t)
	ctx := context.Background()

	tpl, err := env.templates.DefaultFor(ctx, entities.WorkTypePrecastConcrete, "")
	require.NoError(t, err)
	require.NotNil(t, tpl)

	d, err := env.deliveries.Create(ctx, env.deliverySelection(t, entities.WorkTypePrecastConcrete, ""))
	require.NoError(t, err)
	_, err = env.deliveries.EditPhase(ctx, d.ID, 1, dto.EditPhaseDTO{Name: strPtr("Переименован")})
	require.NoError(t, err)

	again, err := env.templates.Find(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, tpl.Phases[0].Name, again.Phases[0].Name)
}

func strPtr(s string) *string { return &s }
