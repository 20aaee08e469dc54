package seeders

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cert-system/internal/entities"
	"cert-system/internal/repositories"
	"cert-system/pkg/filestorage"
	"cert-system/pkg/types"
)

func newMemorySeeder(t *testing.T) (*Seeder, *repositories.Store) {
	t.Helper()
	store := repositories.NewMemoryStore()
	files, err := filestorage.NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)
	return NewSeeder(store, repositories.NewMemoryCacheRepository(), files, "02.01.2006", zap.NewNop()), store
}

func TestSeederTestData(t *testing.T) {
	seeder, store := newMemorySeeder(t)
	ctx := context.Background()

	result, err := seeder.TestData(ctx)
	require.NoError(t, err)

	projects, _, err := store.Projects.List(ctx, types.Filter{})
	require.NoError(t, err)
	require.Len(t, projects, 4)
	assert.Equal(t, len(projects), result.Certificates)
	assert.Equal(t, len(projects), result.Deliveries)

	certificates, _, err := store.Certificates.List(ctx, types.Filter{})
	require.NoError(t, err)
	deliveries, _, err := store.WorkDeliveries.List(ctx, types.Filter{})
	require.NoError(t, err)

	certsPerProject := map[string]int{}
	for _, c := range certificates {
		certsPerProject[c.ProjectID]++
		assert.NotEmpty(t, c.BatchNumbers, c.CertificateNumber)
	}
	deliveriesPerProject := map[string]int{}
	for _, d := range deliveries {
		deliveriesPerProject[d.ProjectID]++
		assert.True(t, entities.IsDeliveryNumber(d.DeliveryNumber), d.DeliveryNumber)
		assert.NotEmpty(t, d.Phases)
	}
	for _, p := range projects {
		assert.Equal(t, 1, certsPerProject[p.ID], p.Name)
		assert.Equal(t, 1, deliveriesPerProject[p.ID], p.Name)
	}

	// справочники повторно не создаются
	again, err := seeder.TestData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, again.Deliveries)
	companies, err := store.Companies.Count(ctx, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, companies)
}

func TestBatchNumbersFor(t *testing.T) {
	batches := []entities.BatchNumber{
		{Number: "HC-1", ProductID: "p1"},
		{Number: "BM-1", ProductID: "p2"},
		{Number: "HC-2", ProductID: "p1"},
	}
	assert.Equal(t, []string{"HC-1", "HC-2"}, batchNumbersFor(batches, "p1"))
	assert.Empty(t, batchNumbersFor(batches, "p3"))
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("UPLOADS_DIR", t.TempDir())

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestClearCommandRequiresConfirmation(t *testing.T) {
	_, err := runCommand(t, "clear", "all", "--driver", "memory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestStatusCommand(t *testing.T) {
	out, err := runCommand(t, "status", "--driver", "memory")
	require.NoError(t, err)

	var report struct {
		Collections map[string]uint64 `json:"collections"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	assert.Contains(t, report.Collections, "work_deliveries")
	for name, n := range report.Collections {
		assert.Zero(t, n, name)
	}
}
