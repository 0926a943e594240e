package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/repository"
)

func TestSimulationRunCreateAndGet(t *testing.T) {
	repo := NewSimulationRunRepository()
	ctx := context.Background()

	run := &entity.SimulationRun{CycleCount: 4, PatientsTreated: 100}
	require.NoError(t, repo.Create(ctx, run))
	assert.NotEqual(t, uuid.Nil, run.ID)

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.CycleCount, got.CycleCount)
}

func TestSimulationRunGetByIDNotFound(t *testing.T) {
	repo := NewSimulationRunRepository()
	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.True(t, repository.IsNotFound(err))
}

func TestSimulationRunUpdate(t *testing.T) {
	repo := NewSimulationRunRepository()
	ctx := context.Background()

	run := &entity.SimulationRun{CycleCount: 1}
	require.NoError(t, repo.Create(ctx, run))

	run.CycleCount = 2
	require.NoError(t, repo.Update(ctx, run))

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CycleCount)
}

func TestSimulationRunUpdateMissingReturnsNotFound(t *testing.T) {
	repo := NewSimulationRunRepository()
	err := repo.Update(context.Background(), &entity.SimulationRun{ID: uuid.New()})
	assert.True(t, repository.IsNotFound(err))
}

func TestSimulationRunListAndCount(t *testing.T) {
	repo := NewSimulationRunRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.SimulationRun{}))
	require.NoError(t, repo.Create(ctx, &entity.SimulationRun{}))

	runs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
