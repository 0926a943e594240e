// Package job drives the orchestrator's per-cycle work (C10) as asynq tasks
// against Redis, so a long horizon can be worked off by a pool instead of
// one blocking call (spec.md's ambient job-orchestration stack, SPEC_FULL.md
// §4.12).
package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/edrostering/edflow/internal/entity"
)

// Task type names.
const (
	TypeRosterOptimize = "roster:optimize"
	TypeCycleSimulate  = "cycle:simulate"
)

// RosterOptimizePayload is the payload for a roster:optimize task: solve one
// staff class's ILP roster for one cycle and persist the result.
type RosterOptimizePayload struct {
	SimulationRunID uuid.UUID       `json:"simulation_run_id"`
	CycleIndex      int             `json:"cycle_index"`
	RoleClass       entity.RoleClass `json:"role_class"`
}

// CycleSimulatePayload is the payload for a cycle:simulate task: wait for
// all four roster:optimize tasks of a cycle to land, then run the DEPFS
// simulation for that cycle's window.
type CycleSimulatePayload struct {
	SimulationRunID uuid.UUID `json:"simulation_run_id"`
	CycleIndex      int       `json:"cycle_index"`
}

// JobScheduler enqueues cycle work onto an asynq/Redis queue.
type JobScheduler struct {
	client *asynq.Client
}

// NewJobScheduler creates a new job scheduler against the given Redis address.
func NewJobScheduler(redisAddr string) (*JobScheduler, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})

	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &JobScheduler{client: client}, nil
}

// EnqueueRosterOptimize enqueues one per-class roster solve for a cycle.
func (s *JobScheduler) EnqueueRosterOptimize(ctx context.Context, simulationRunID uuid.UUID, cycleIndex int, class entity.RoleClass) (*asynq.TaskInfo, error) {
	payload, err := json.Marshal(RosterOptimizePayload{
		SimulationRunID: simulationRunID,
		CycleIndex:      cycleIndex,
		RoleClass:       class,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal roster:optimize payload: %w", err)
	}

	task := asynq.NewTask(TypeRosterOptimize, payload)
	info, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(2), asynq.Timeout(5*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue roster:optimize job: %w", err)
	}
	return info, nil
}

// EnqueueCycleSimulate enqueues the simulation step for a cycle, to run once
// every roster:optimize task of that cycle has landed.
func (s *JobScheduler) EnqueueCycleSimulate(ctx context.Context, simulationRunID uuid.UUID, cycleIndex int) (*asynq.TaskInfo, error) {
	payload, err := json.Marshal(CycleSimulatePayload{
		SimulationRunID: simulationRunID,
		CycleIndex:      cycleIndex,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cycle:simulate payload: %w", err)
	}

	task := asynq.NewTask(TypeCycleSimulate, payload)
	info, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(5), asynq.Timeout(10*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue cycle:simulate job: %w", err)
	}
	return info, nil
}

// Close releases the scheduler's Redis connection.
func (s *JobScheduler) Close() error {
	return s.client.Close()
}
