package entity

import "github.com/google/uuid"

// OptimizationInput is everything one ILP roster solve needs for a single
// staff class.
type OptimizationInput struct {
	Staff                   []StaffMember
	Catalog                 *ShiftCatalog
	Demand                  []DemandRecord
	NumDays                 int
	NumWeeks                int
	MaxHoursPerDay          int
	MaxRegularHoursPerWeek  int
	MaxTotalHoursPerWeek    int
	SolveTimeLimitSeconds   float64 // 0 means no limit
}

// WeeklyHours is the regular/overtime/actual hour split for one staff member
// in one week.
type WeeklyHours struct {
	Regular     float64
	Overtime    float64
	ActualTotal float64
}

// OptimizedSchedule is the result of one ILP solve.
type OptimizedSchedule struct {
	RoleClass    RoleClass
	Feasible     bool
	SolverStatus string
	TotalCost    float64

	// Assignments maps staff id -> day index -> LP shift id.
	Assignments map[uuid.UUID]map[int]string

	// Hours maps staff id -> week index -> hour breakdown.
	Hours map[uuid.UUID]map[int]WeeklyHours

	Diagnostics []string
}

// NewInfeasibleSchedule builds the "solver could not produce a result"
// shape required by spec.md §4.7/§7: empty maps, zero cost, feasible=false.
func NewInfeasibleSchedule(class RoleClass, status string, diagnostics ...string) *OptimizedSchedule {
	return &OptimizedSchedule{
		RoleClass:    class,
		Feasible:     false,
		SolverStatus: status,
		TotalCost:    0,
		Assignments:  map[uuid.UUID]map[int]string{},
		Hours:        map[uuid.UUID]map[int]WeeklyHours{},
		Diagnostics:  diagnostics,
	}
}

// ShiftOn resolves a staff member's concrete shift kind for a given day
// within the horizon, or false if the day is outside the schedule's range.
func (s *OptimizedSchedule) ShiftOn(staffID uuid.UUID, day int, catalog *ShiftCatalog) (ShiftDefinition, bool) {
	byDay, ok := s.Assignments[staffID]
	if !ok {
		return ShiftDefinition{}, false
	}
	lpID, ok := byDay[day]
	if !ok {
		return ShiftDefinition{}, false
	}
	return catalog.Get(lpID)
}

// WeekdayNames are the seven days of a schedule week, Monday first.
var WeekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekView resolves one staff member's shift kind for each day of week w,
// within a horizon of numDays total days. Days beyond numDays are omitted,
// per spec.md §4.8.
func (s *OptimizedSchedule) WeekView(staffID uuid.UUID, week, numDays int, catalog *ShiftCatalog) map[string]ShiftKind {
	out := make(map[string]ShiftKind)
	for i := 0; i < 7; i++ {
		day := week*7 + i
		if day >= numDays {
			break
		}
		def, ok := s.ShiftOn(staffID, day, catalog)
		if !ok {
			continue
		}
		out[WeekdayNames[i]] = def.Kind
	}
	return out
}
