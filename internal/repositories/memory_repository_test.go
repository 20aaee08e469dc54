package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cert-system/internal/entities"
	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/types"
)

func newProjects(t *testing.T) DocumentRepositoryInterface[entities.Project] {
	t.Helper()
	return NewMemoryDocumentRepository[entities.Project](Projects)
}

func TestMemoryDocumentRepository_CreateFind(t *testing.T) {
	ctx := context.Background()
	repo := newProjects(t)

	p := &entities.Project{Name: "Koivurinne", CustomerID: "cu-1"}
	require.NoError(t, repo.Create(ctx, p))
	require.NotEmpty(t, p.ID)
	assert.True(t, p.IsActive)
	assert.False(t, p.CreatedAt.IsZero())

	found, err := repo.Find(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Koivurinne", found.Name)
	assert.Equal(t, p.ID, found.ID)

	// найденная копия не связана с хранилищем
	found.Name = "changed"
	again, err := repo.Find(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Koivurinne", again.Name)

	dup := &entities.Project{Document: types.Document{ID: p.ID}, Name: "dup"}
	assert.ErrorIs(t, repo.Create(ctx, dup), apperrors.ErrConflict)
}

func TestMemoryDocumentRepository_ListFilterSortSearch(t *testing.T) {
	ctx := context.Background()
	repo := newProjects(t)

	for _, p := range []entities.Project{
		{Name: "Beta", CustomerID: "cu-1"},
		{Name: "Alpha", CustomerID: "cu-2"},
		{Name: "Gamma", CustomerID: "cu-1"},
	} {
		p := p
		require.NoError(t, repo.Create(ctx, &p))
	}

	t.Run("по умолчанию новые первыми", func(t *testing.T) {
		items, total, err := repo.List(ctx, types.Filter{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Equal(t, "Gamma", items[0].Name)
		assert.Equal(t, "Beta", items[2].Name)
	})

	t.Run("фильтр и сортировка", func(t *testing.T) {
		items, total, err := repo.List(ctx, types.Filter{
			Filter: map[string]interface{}{"customer_id": "cu-1"},
			Sort:   map[string]string{"name": "asc"},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Equal(t, "Beta", items[0].Name)
		assert.Equal(t, "Gamma", items[1].Name)
	})

	t.Run("поиск без учёта регистра", func(t *testing.T) {
		items, _, err := repo.List(ctx, types.Filter{Search: "alp"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Alpha", items[0].Name)
	})

	t.Run("пагинация", func(t *testing.T) {
		items, total, err := repo.List(ctx, types.Filter{
			Sort: map[string]string{"name": "asc"}, WithPagination: true, Limit: 2, Offset: 2,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, items, 1)
		assert.Equal(t, "Gamma", items[0].Name)
	})
}

func TestMemoryDocumentRepository_PatchKeepsEnvelope(t *testing.T) {
	ctx := context.Background()
	repo := newProjects(t)

	p := &entities.Project{Name: "Old", Address: "Katu 1"}
	require.NoError(t, repo.Create(ctx, p))

	updated, err := repo.Patch(ctx, p.ID, map[string]interface{}{
		"name":       "New",
		"id":         "hijack",
		"created_at": "2000-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "Katu 1", updated.Address)
	assert.Equal(t, p.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(p.CreatedAt))

	_, err = repo.Patch(ctx, "missing", map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryDocumentRepository_SoftAndHardDelete(t *testing.T) {
	ctx := context.Background()
	repo := newProjects(t)

	a := &entities.Project{Name: "A"}
	b := &entities.Project{Name: "B"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.SoftDelete(ctx, a.ID))
	assert.ErrorIs(t, repo.SoftDelete(ctx, a.ID), apperrors.ErrNotFound)

	_, err := repo.Find(ctx, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	active, err := repo.Count(ctx, false)
	require.NoError(t, err)
	all, err := repo.Count(ctx, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, active)
	assert.EqualValues(t, 2, all)

	items, _, err := repo.List(ctx, types.Filter{WithInactive: true})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	n, err := repo.HardDeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	all, _ = repo.Count(ctx, true)
	assert.Zero(t, all)
}

func TestMemoryTxManager_PassesError(t *testing.T) {
	m := NewMemoryTxManager()
	err := m.RunInTransaction(context.Background(), func(tx pgx.Tx) error { return apperrors.ErrConflict })
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
