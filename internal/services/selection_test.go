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

func TestSelectionGenerations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.selections.Next(ctx, "tab-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, first)
	require.NoError(t, env.selections.Check(ctx, "tab-1", first))

	second, err := env.selections.Next(ctx, "tab-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, second)

	assert.ErrorIs(t, env.selections.Check(ctx, "tab-1", first), apperrors.ErrStaleSelection)
	assert.NoError(t, env.selections.Check(ctx, "tab-1", second))

	// сессии независимы
	assert.NoError(t, env.selections.Check(ctx, "tab-2", 0))
	assert.NoError(t, env.selections.Check(ctx, "", 0))

	_, err = env.selections.Next(ctx, "")
	assert.Error(t, err)
}

func TestPreferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.Equal(t, entities.LogoSizeMedium, env.prefs.LogoSize(ctx, "client-1"))

	require.NoError(t, env.prefs.SetLogoSize(ctx, "client-1", entities.LogoSizeSmall))
	assert.Equal(t, entities.LogoSizeSmall, env.prefs.LogoSize(ctx, "client-1"))
	assert.Equal(t, entities.LogoSizeMedium, env.prefs.LogoSize(ctx, "client-2"))

	require.NoError(t, env.prefs.SetLogoSize(ctx, "client-3", "huge"))
	assert.Equal(t, entities.LogoSizeMedium, env.prefs.LogoSize(ctx, "client-3"))

	last := dto.LastLogoDTO{URL: "/uploads/logos/a.png", FileName: "a.png"}
	require.NoError(t, env.prefs.SetLastLogo(ctx, "client-1", last))
	got := env.prefs.Get(ctx, "client-1")
	assert.Equal(t, "small", got.LogoSize)
	require.NotNil(t, got.LastLogo)
	assert.Equal(t, last.URL, got.LastLogo.URL)

	env.prefs.ForgetLogo(ctx, "client-1", "/uploads/logos/other.png")
	assert.NotNil(t, env.prefs.LastLogo(ctx, "client-1"))
	env.prefs.ForgetLogo(ctx, "client-1", last.URL)
	assert.Nil(t, env.prefs.LastLogo(ctx, "client-1"))
}
