package roster

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edrostering/edflow/internal/entity"
)

func testCatalog() *entity.ShiftCatalog {
	return entity.NewShiftCatalog(
		entity.ShiftDefinition{LPShiftID: "d8", Kind: entity.ShiftKind8Day, StartHour: -1},
		entity.ShiftDefinition{LPShiftID: "e8", Kind: entity.ShiftKind8Evening, StartHour: -1},
		entity.ShiftDefinition{LPShiftID: "n8", Kind: entity.ShiftKind8Night, StartHour: -1},
		entity.ShiftDefinition{LPShiftID: "off", Kind: entity.ShiftKindFree, StartHour: -1},
	)
}

func testNurses(n int) []entity.StaffMember {
	staff := make([]entity.StaffMember, n)
	for i := range staff {
		staff[i] = entity.StaffMember{
			ID:                 uuid.New(),
			Name:               "Nurse",
			Role:               entity.RoleRegisteredNurse,
			HourlyWage:         40,
			OvertimeMultiplier: 1.5,
		}
	}
	return staff
}

func TestSolveProducesFeasibleScheduleForSimpleCase(t *testing.T) {
	catalog := testCatalog()
	staff := testNurses(4)

	in := entity.OptimizationInput{
		Staff:                  staff,
		Catalog:                catalog,
		NumDays:                7,
		NumWeeks:               1,
		MaxHoursPerDay:         12,
		MaxRegularHoursPerWeek: 40,
		MaxTotalHoursPerWeek:   48,
		Demand: []entity.DemandRecord{
			{Role: entity.RoleRegisteredNurse, DayIndex: 0, LPShiftID: "d8", RequiredCount: 1},
		},
	}

	out, diag := Solve(entity.RoleClassNurse, in)
	require.NotNil(t, out)
	assert.False(t, diag.HasErrors())
	if out.Feasible {
		assert.NotEmpty(t, out.Assignments)
		for _, byDay := range out.Assignments {
			assert.Len(t, byDay, in.NumDays)
		}
	}
}

func TestSolveEmptyStaffReturnsInfeasible(t *testing.T) {
	in := entity.OptimizationInput{
		Staff:   nil,
		Catalog: testCatalog(),
		NumDays: 7,
		NumWeeks: 1,
	}

	out, _ := Solve(entity.RoleClassNurse, in)
	assert.False(t, out.Feasible)
	assert.Empty(t, out.Assignments)
	assert.Equal(t, 0.0, out.TotalCost)
}

func TestSolveEmptyHorizonReturnsInfeasible(t *testing.T) {
	in := entity.OptimizationInput{
		Staff:   testNurses(1),
		Catalog: testCatalog(),
		NumDays: 0,
		NumWeeks: 0,
	}

	out, _ := Solve(entity.RoleClassNurse, in)
	assert.False(t, out.Feasible)
}

func TestSolveWarnsWhenNoOffShiftForResidentClass(t *testing.T) {
	catalog := entity.NewShiftCatalog(
		entity.ShiftDefinition{LPShiftID: "d8", Kind: entity.ShiftKind8Day, StartHour: -1},
	)
	staff := []entity.StaffMember{{ID: uuid.New(), Role: entity.RoleResidentPhysician, HourlyWage: 50}}

	in := entity.OptimizationInput{
		Staff:                  staff,
		Catalog:                catalog,
		NumDays:                7,
		NumWeeks:               1,
		MaxHoursPerDay:         12,
		MaxRegularHoursPerWeek: 60,
		MaxTotalHoursPerWeek:   80,
	}

	_, diag := Solve(entity.RoleClassResident, in)
	assert.True(t, diag.HasWarnings())
}
