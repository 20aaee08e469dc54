package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cert-system/internal/entities"
	"cert-system/internal/repositories"
	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/types"
)

func TestBootstrap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.bootstrap.Bootstrap(ctx, false)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, map[string]int{
		"companies":     1,
		"customers":     3,
		"projects":      4,
		"products":      2,
		"batch_numbers": 2,
	}, result.Created)

	again, err := env.bootstrap.Bootstrap(ctx, false)
	require.NoError(t, err)
	assert.True(t, again.Skipped)
	assert.Zero(t, again.Created["companies"])

	forced, err := env.bootstrap.Bootstrap(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, forced.Created["companies"])

	status, err := env.bootstrap.Status(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, status.Collections["companies"])
	assert.EqualValues(t, 8, status.Collections["projects"])
}

func TestBootstrapProjectsReferenceCustomers(t *testing.T) {
	env := newTestEnv(t).seeded(t)
	ctx := context.Background()

	projects, _, err := env.store.Projects.List(ctx, types.Filter{})
	require.NoError(t, err)
	for _, p := range projects {
		c, err := env.store.Customers.Find(ctx, p.CustomerID)
		require.NoError(t, err, p.Name)
		assert.Equal(t, c.Name, p.CustomerName)
	}
}

func TestClear(t *testing.T) {
	env := newTestEnv(t).seeded(t)
	ctx := context.Background()

	result, err := env.bootstrap.Clear(ctx, repositories.Projects.Name)
	require.NoError(t, err)
	assert.EqualValues(t, 4, result.Deleted["projects"])

	_, err = env.bootstrap.Clear(ctx, "orders")
	assert.ErrorIs(t, err, apperrors.ErrUnknownCollection)

	result, err = env.bootstrap.Clear(ctx, "all")
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Deleted["phase_templates"])

	status, err := env.bootstrap.Status(ctx)
	require.NoError(t, err)
	for name, n := range status.Collections {
		assert.Zero(t, n, name)
	}

	// после очистки шаблоны снова инициализируются
	created, err := env.templates.InitializeDefaults(ctx)
	require.NoError(t, err)
	assert.Len(t, entities.DefaultPhaseTemplates(), created)
}
