//go:build integration

package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cert-system/internal/entities"
	"cert-system/pkg/database/postgresql"
	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/types"
)

// testPool подключается к TEST_DATABASE_URL и применяет миграции.
// Без переменной окружения тесты пропускаются.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан")
	}
	pool, err := postgresql.ConnectDB(context.Background(), dsn, zap.NewNop())
	require.NoError(t, err, "Не удалось подключиться к тестовой БД")
	require.NoError(t, postgresql.Migrate(pool))
	t.Cleanup(pool.Close)
	return pool
}

func cleanupTables(t *testing.T, store *Store) {
	t.Helper()
	for name, p := range store.Purgers() {
		_, err := p.HardDeleteAll(context.Background())
		require.NoError(t, err, "Не удалось очистить %s", name)
	}
}

func TestDocumentRepository_Integration(t *testing.T) {
	pool := testPool(t)
	store := NewPostgresStore(pool, zap.NewNop())
	cleanupTables(t, store)
	ctx := context.Background()

	customer := &entities.Customer{Name: "Rakennus Oy"}
	require.NoError(t, store.Customers.Create(ctx, customer))

	project := &entities.Project{Name: "Koivurinne", CustomerID: customer.ID}
	require.NoError(t, store.Projects.Create(ctx, project))

	t.Run("find", func(t *testing.T) {
		found, err := store.Projects.Find(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, "Koivurinne", found.Name)
		assert.Equal(t, customer.ID, found.CustomerID)
	})

	t.Run("filter по полю документа", func(t *testing.T) {
		items, total, err := store.Projects.List(ctx, types.Filter{
			Filter: map[string]interface{}{"customer_id": customer.ID},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, items, 1)
	})

	t.Run("patch", func(t *testing.T) {
		updated, err := store.Projects.Patch(ctx, project.ID, map[string]interface{}{"address": "Katu 5"})
		require.NoError(t, err)
		assert.Equal(t, "Katu 5", updated.Address)
		assert.Equal(t, "Koivurinne", updated.Name)
	})

	t.Run("replace в транзакции", func(t *testing.T) {
		err := store.TxManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			p, err := store.Projects.FindForUpdate(ctx, tx, project.ID)
			if err != nil {
				return err
			}
			p.Description = "в работе"
			return store.Projects.Replace(ctx, tx, p)
		})
		require.NoError(t, err)
		found, err := store.Projects.Find(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, "в работе", found.Description)
	})

	t.Run("soft delete", func(t *testing.T) {
		require.NoError(t, store.Projects.SoftDelete(ctx, project.ID))
		_, err := store.Projects.Find(ctx, project.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		n, err := store.Projects.Count(ctx, true)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("конфликт идентификатора", func(t *testing.T) {
		dup := &entities.Customer{Document: types.Document{ID: customer.ID}, Name: "dup"}
		assert.ErrorIs(t, store.Customers.Create(ctx, dup), apperrors.ErrConflict)
	})
}
