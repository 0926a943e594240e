package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/edrostering/edflow/internal/entity"
)

// Database provides access to all repositories backing one storage engine.
type Database interface {
	SimulationRunRepository() SimulationRunRepository
	RosterRunRepository() RosterRunRepository
	DemandAdjustmentRepository() DemandAdjustmentRepository

	Close() error
	Health(ctx context.Context) error
}

// SimulationRunRepository stores one row per orchestrator invocation.
type SimulationRunRepository interface {
	Create(ctx context.Context, run *entity.SimulationRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SimulationRun, error)
	Update(ctx context.Context, run *entity.SimulationRun) error
	List(ctx context.Context) ([]*entity.SimulationRun, error)
	Count(ctx context.Context) (int64, error)
}

// RosterRunRepository stores one row per per-class ILP solve.
type RosterRunRepository interface {
	Create(ctx context.Context, run *entity.RosterRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RosterRun, error)
	ListBySimulationRun(ctx context.Context, simulationRunID uuid.UUID) ([]*entity.RosterRun, error)
	ListByCycle(ctx context.Context, simulationRunID uuid.UUID, cycleIndex int) ([]*entity.RosterRun, error)
	Count(ctx context.Context) (int64, error)
}

// DemandAdjustmentRepository stores the audit trail of feedback-controller
// demand adjustments.
type DemandAdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.DemandAdjustment) error
	ListBySimulationRun(ctx context.Context, simulationRunID uuid.UUID) ([]*entity.DemandAdjustment, error)
	Count(ctx context.Context) (int64, error)
}

// NotFoundError represents a record not found error.
type NotFoundError struct {
	ResourceType string
	ResourceID   string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return "not found: " + e.ResourceType + " " + e.ResourceID
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// ValidationError represents a validation error.
type ValidationError struct {
	Message string
	Field   string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
