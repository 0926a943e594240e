// Package postgres provides PostgreSQL repository implementations with integration tests.
package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/edrostering/edflow/internal/entity"
)

// postgresTestHelper provisions a disposable PostgreSQL container for
// exercising the real driver instead of mocking database/sql.
type postgresTestHelper struct {
	store     *Store
	container testcontainers.Container
	ctx       context.Context
}

func newPostgresTestHelper(ctx context.Context, t *testing.T) *postgresTestHelper {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "edflow_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/edflow_test?sslmode=disable", host, port.Port())

	store, err := NewStore(connStr)
	require.NoError(t, err)

	return &postgresTestHelper{store: store, container: container, ctx: ctx}
}

func (h *postgresTestHelper) Close(t *testing.T) {
	if err := h.store.Close(); err != nil {
		t.Logf("warning: failed to close database: %v", err)
	}
	if err := h.container.Terminate(h.ctx); err != nil {
		t.Logf("warning: failed to terminate container: %v", err)
	}
}

func TestSimulationRunRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()
	helper := newPostgresTestHelper(ctx, t)
	defer helper.Close(t)

	repo := helper.store.SimulationRunRepository()

	run := &entity.SimulationRun{
		StartedAt:       time.Now().UTC(),
		ConfigHash:      "abc123",
		CycleCount:      4,
		PatientsTreated: 900,
	}
	require.NoError(t, repo.Create(ctx, run))

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	require.Equal(t, run.ConfigHash, got.ConfigHash)

	got.FinishedAt = time.Now().UTC()
	got.CycleCount = 5
	require.NoError(t, repo.Update(ctx, got))

	runs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, 5, runs[0].CycleCount)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestRosterRunAndDemandAdjustmentRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()
	helper := newPostgresTestHelper(ctx, t)
	defer helper.Close(t)

	simRepo := helper.store.SimulationRunRepository()
	rosterRepo := helper.store.RosterRunRepository()
	adjustmentRepo := helper.store.DemandAdjustmentRepository()

	simRun := &entity.SimulationRun{StartedAt: time.Now().UTC(), ConfigHash: "xyz"}
	require.NoError(t, simRepo.Create(ctx, simRun))

	rosterRun := &entity.RosterRun{
		SimulationRunID: simRun.ID,
		RoleClass:       entity.RoleClassNurse,
		CycleIndex:      0,
		Feasible:        true,
		TotalCost:       4200,
		SolverStatus:    "OPTIMAL",
	}
	require.NoError(t, rosterRepo.Create(ctx, rosterRun))

	byCycle, err := rosterRepo.ListByCycle(ctx, simRun.ID, 0)
	require.NoError(t, err)
	require.Len(t, byCycle, 1)

	adj := &entity.DemandAdjustment{
		SimulationRunID: simRun.ID,
		CycleIndex:      0,
		RejectionRate:   0.02,
		AvgWaitMinutes:  30,
		Factor:          1.0,
		Timestamp:       time.Now().UTC(),
	}
	require.NoError(t, adjustmentRepo.Create(ctx, adj))

	entries, err := adjustmentRepo.ListBySimulationRun(ctx, simRun.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
