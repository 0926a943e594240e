package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edrostering/edflow/internal/entity"
)

func TestDemandAdjustmentCreateAndList(t *testing.T) {
	repo := NewDemandAdjustmentRepository()
	ctx := context.Background()
	simID := uuid.New()

	require.NoError(t, repo.Create(ctx, &entity.DemandAdjustment{SimulationRunID: simID, CycleIndex: 0, Factor: 1.15}))
	require.NoError(t, repo.Create(ctx, &entity.DemandAdjustment{SimulationRunID: simID, CycleIndex: 1, Factor: 0.90}))
	require.NoError(t, repo.Create(ctx, &entity.DemandAdjustment{SimulationRunID: uuid.New(), CycleIndex: 0, Factor: 1.0}))

	entries, err := repo.ListBySimulationRun(ctx, simID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1.15, entries[0].Factor)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
