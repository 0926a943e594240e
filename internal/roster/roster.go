// Package roster builds and solves the four class-specific ILP roster
// models (nurse, attending, resident, admin) described in spec.md §4.7,
// and extracts a schedule from a solved model. One call to Solve handles
// one staff class; the orchestrator runs the four classes independently
// (they don't share decision variables) and merges the results.
package roster

import (
	"fmt"
	"math"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/google/uuid"

	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/validation"
)

const (
	attendingMaxRegularHours  = 40
	residentWeeklyHourCap     = 80
	residentMinDaysOffPerWeek = 1
	adminMinDaysOffPerWeek    = 2

	// wageScale converts fractional hourly wages to integer cents so the
	// CP-SAT objective, which only accepts integer coefficients, can encode
	// the linear cost function.
	wageScale = 100
)

type assignKey struct {
	staff int
	day   int
	shift string
}

type weekKey struct {
	staff int
	week  int
}

// Solve builds the ILP for one staff class and returns the extracted
// schedule plus any diagnostics collected along the way (e.g. a missing
// off-shift warning). An infeasible or error solver status yields an
// OptimizedSchedule with Feasible=false, not a Go error — a bad roster
// solve for one class must not abort the rest of the system.
func Solve(class entity.RoleClass, in entity.OptimizationInput) (*entity.OptimizedSchedule, *validation.Result) {
	diagnostics := validation.NewResult()

	if len(in.Staff) == 0 {
		return entity.NewInfeasibleSchedule(class, "NO_STAFF", "no staff members in this class"), diagnostics
	}
	if in.NumDays <= 0 || in.NumWeeks <= 0 {
		return entity.NewInfeasibleSchedule(class, "EMPTY_HORIZON"), diagnostics
	}

	offID, hasOff := in.Catalog.OffShiftID()
	if !hasOff {
		diagnostics.AddWarning(validation.CodeMissingOffShift,
			fmt.Sprintf("shift catalog has no off-shift entry for role class %s", class))
	}

	model := cpmodel.NewCpModelBuilder()
	shiftIDs := in.Catalog.IDs()

	x := make(map[assignKey]cpmodel.BoolVar, len(in.Staff)*in.NumDays*len(shiftIDs))
	for n := range in.Staff {
		for d := 0; d < in.NumDays; d++ {
			for _, s := range shiftIDs {
				x[assignKey{n, d, s}] = model.NewBoolVar().WithName(fmt.Sprintf("x_n%d_d%d_%s", n, d, s))
			}
		}
	}

	maxRegular := in.MaxRegularHoursPerWeek
	if class == entity.RoleClassAttending {
		maxRegular = attendingMaxRegularHours
	}
	maxTotal := in.MaxTotalHoursPerWeek
	if class == entity.RoleClassResident {
		maxTotal = int(math.Min(float64(maxTotal), residentWeeklyHourCap))
	}

	regH := make(map[weekKey]cpmodel.IntVar, len(in.Staff)*in.NumWeeks)
	otH := make(map[weekKey]cpmodel.IntVar, len(in.Staff)*in.NumWeeks)
	actualH := make(map[weekKey]cpmodel.IntVar, len(in.Staff)*in.NumWeeks)
	for n := range in.Staff {
		for w := 0; w < in.NumWeeks; w++ {
			key := weekKey{n, w}
			regH[key] = model.NewIntVar(0, int64(maxRegular)).WithName(fmt.Sprintf("reg_n%d_w%d", n, w))
			otH[key] = model.NewIntVar(0, int64(maxTotal)).WithName(fmt.Sprintf("ot_n%d_w%d", n, w))
			actualH[key] = model.NewIntVar(0, int64(maxTotal)).WithName(fmt.Sprintf("actual_n%d_w%d", n, w))
		}
	}

	// K1: exactly one shift per staff member per day.
	for n := range in.Staff {
		for d := 0; d < in.NumDays; d++ {
			vars := make([]cpmodel.BoolVar, 0, len(shiftIDs))
			for _, s := range shiftIDs {
				vars = append(vars, x[assignKey{n, d, s}])
			}
			model.AddExactlyOne(vars...)
		}
	}

	// K4: daily hour cap.
	for n := range in.Staff {
		for d := 0; d < in.NumDays; d++ {
			expr := cpmodel.NewLinearExpr()
			for _, s := range shiftIDs {
				def, _ := in.Catalog.Get(s)
				if length := def.LengthHours(); length > 0 {
					expr.AddTerm(x[assignKey{n, d, s}], int64(length))
				}
			}
			model.AddLessOrEqual(expr, cpmodel.NewConstant(int64(in.MaxHoursPerDay)))
		}
	}

	// K2/K3: weekly hours definition and the regular/overtime split.
	for n := range in.Staff {
		for w := 0; w < in.NumWeeks; w++ {
			key := weekKey{n, w}
			weekExpr := cpmodel.NewLinearExpr()
			for d := w * 7; d < (w+1)*7 && d < in.NumDays; d++ {
				for _, s := range shiftIDs {
					def, _ := in.Catalog.Get(s)
					if length := def.LengthHours(); length > 0 {
						weekExpr.AddTerm(x[assignKey{n, d, s}], int64(length))
					}
				}
			}
			model.AddEquality(actualH[key], weekExpr)

			splitExpr := cpmodel.NewLinearExpr()
			splitExpr.AddTerm(regH[key], 1)
			splitExpr.AddTerm(otH[key], 1)
			model.AddEquality(actualH[key], splitExpr)
		}
	}

	// K5: demand coverage via the shift-covers relation.
	for _, d := range in.Demand {
		required, ok := in.Catalog.Get(d.LPShiftID)
		if !ok {
			diagnostics.AddWarning(validation.CodeMissingRequiredKey,
				fmt.Sprintf("demand references unknown LP shift id %q, skipped", d.LPShiftID))
			continue
		}
		var covering []cpmodel.BoolVar
		for n, staff := range in.Staff {
			if staff.Role != d.Role {
				continue
			}
			for _, s := range shiftIDs {
				def, _ := in.Catalog.Get(s)
				if def.Covers(required) {
					covering = append(covering, x[assignKey{n, d.DayIndex, s}])
				}
			}
		}
		if len(covering) == 0 {
			continue
		}
		expr := cpmodel.NewLinearExpr()
		for _, v := range covering {
			expr.Add(v)
		}
		model.AddLessOrEqual(cpmodel.NewConstant(int64(d.RequiredCount)), expr)
	}

	// K6: minimum rest after a long (>=12h) shift.
	for n := range in.Staff {
		for d := 0; d < in.NumDays; d++ {
			for _, longID := range shiftIDs {
				longDef, _ := in.Catalog.Get(longID)
				if !longDef.IsWork() || longDef.LengthHours() < 12 {
					continue
				}
				longEnd := longDef.EffectiveStartHour() + longDef.LengthHours()
				for _, dOffset := range []int{0, 1} {
					d2 := d + dOffset
					if d2 >= in.NumDays {
						continue
					}
					for _, otherID := range shiftIDs {
						if dOffset == 0 && otherID == longID {
							continue
						}
						otherDef, _ := in.Catalog.Get(otherID)
						if !otherDef.IsWork() {
							continue
						}
						absStart := otherDef.EffectiveStartHour() + 24*dOffset
						if absStart < longEnd+10 {
							model.AddAtMostOne(x[assignKey{n, d, longID}], x[assignKey{n, d2, otherID}])
						}
					}
				}
			}
		}
	}

	// Class-specific rules beyond K1-K6.
	switch class {
	case entity.RoleClassResident:
		if in.NumWeeks > 0 {
			horizonExpr := cpmodel.NewLinearExpr()
			for w := 0; w < in.NumWeeks; w++ {
				for n := range in.Staff {
					horizonExpr.AddTerm(actualH[weekKey{n, w}], 1)
				}
			}
			model.AddLessOrEqual(horizonExpr, cpmodel.NewConstant(int64(residentWeeklyHourCap*in.NumWeeks*len(in.Staff))))
		}
		if hasOff {
			addMinDaysOff(model, x, in, offID, residentMinDaysOffPerWeek)
		} else {
			diagnostics.AddWarning(validation.CodeMissingOffShift, "resident-class day-off rule skipped: no off-shift in catalog")
		}
	case entity.RoleClassAdmin:
		if hasOff {
			addMinDaysOff(model, x, in, offID, adminMinDaysOffPerWeek)
		} else {
			diagnostics.AddWarning(validation.CodeMissingOffShift, "admin-class day-off rule skipped: no off-shift in catalog")
		}
	}

	// Objective: minimize total wage cost across regular and overtime hours.
	objective := cpmodel.NewLinearExpr()
	for n, staff := range in.Staff {
		wageCents := int64(math.Round(staff.HourlyWage * wageScale))
		otCents := int64(math.Round(staff.HourlyWage * staff.OvertimeMultiplier * wageScale))
		for w := 0; w < in.NumWeeks; w++ {
			key := weekKey{n, w}
			objective.AddTerm(regH[key], wageCents)
			objective.AddTerm(otH[key], otCents)
		}
	}
	model.Minimize(objective)

	builtModel, err := model.Model()
	if err != nil {
		diagnostics.AddError(validation.CodeSolverError, fmt.Sprintf("failed to build CP model: %v", err))
		return entity.NewInfeasibleSchedule(class, "BUILD_ERROR", diagnostics.Summary()), diagnostics
	}

	var response *cpmodel.CpSolverResponse
	if in.SolveTimeLimitSeconds > 0 {
		params := cpmodel.NewSatParameters(fmt.Sprintf("max_time_in_seconds:%f", in.SolveTimeLimitSeconds))
		response, err = cpmodel.SolveCpModelWithParameters(builtModel, params)
	} else {
		response, err = cpmodel.SolveCpModel(builtModel)
	}
	if err != nil {
		diagnostics.AddError(validation.CodeSolverError, fmt.Sprintf("solver error: %v", err))
		return entity.NewInfeasibleSchedule(class, "SOLVER_ERROR", diagnostics.Summary()), diagnostics
	}

	status := response.GetStatus().String()
	if status != "OPTIMAL" && status != "FEASIBLE" {
		diagnostics.AddError(validation.CodeSolverInfeasible,
			fmt.Sprintf("no feasible roster found for role class %s (status %s)", class, status))
		return entity.NewInfeasibleSchedule(class, status, diagnostics.Summary()), diagnostics
	}

	return extractSolution(class, in, x, regH, otH, actualH, response, status), diagnostics
}

// addMinDaysOff requires at least minDays occurrences of the off-shift
// within every 7-day week window.
func addMinDaysOff(model *cpmodel.CpModelBuilder, x map[assignKey]cpmodel.BoolVar, in entity.OptimizationInput, offID string, minDays int) {
	for n := range in.Staff {
		for w := 0; w < in.NumWeeks; w++ {
			expr := cpmodel.NewLinearExpr()
			for d := w * 7; d < (w+1)*7 && d < in.NumDays; d++ {
				expr.Add(x[assignKey{n, d, offID}])
			}
			model.AddLessOrEqual(cpmodel.NewConstant(int64(minDays)), expr)
		}
	}
}

func extractSolution(
	class entity.RoleClass,
	in entity.OptimizationInput,
	x map[assignKey]cpmodel.BoolVar,
	regH, otH, actualH map[weekKey]cpmodel.IntVar,
	response *cpmodel.CpSolverResponse,
	status string,
) *entity.OptimizedSchedule {
	out := &entity.OptimizedSchedule{
		RoleClass:    class,
		Feasible:     true,
		SolverStatus: status,
		Assignments:  make(map[uuid.UUID]map[int]string, len(in.Staff)),
		Hours:        make(map[uuid.UUID]map[int]entity.WeeklyHours, len(in.Staff)),
	}

	shiftIDs := in.Catalog.IDs()
	totalCost := 0.0

	for n, staff := range in.Staff {
		byDay := make(map[int]string, in.NumDays)
		for d := 0; d < in.NumDays; d++ {
			for _, s := range shiftIDs {
				if cpmodel.SolutionBooleanValue(response, x[assignKey{n, d, s}]) {
					byDay[d] = s
					break
				}
			}
		}
		out.Assignments[staff.ID] = byDay

		byWeek := make(map[int]entity.WeeklyHours, in.NumWeeks)
		for w := 0; w < in.NumWeeks; w++ {
			key := weekKey{n, w}
			reg := float64(cpmodel.SolutionIntegerValue(response, regH[key]))
			ot := float64(cpmodel.SolutionIntegerValue(response, otH[key]))
			actual := float64(cpmodel.SolutionIntegerValue(response, actualH[key]))
			byWeek[w] = entity.WeeklyHours{Regular: reg, Overtime: ot, ActualTotal: actual}
			totalCost += reg*staff.HourlyWage + ot*staff.HourlyWage*staff.OvertimeMultiplier
		}
		out.Hours[staff.ID] = byWeek
	}

	out.TotalCost = totalCost
	return out
}
