package config

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/edrostering/edflow/internal/entity"
)

// BuildStaffRoster synthesizes one entity.StaffMember per configured head
// count, named by role and a 1-based ordinal (e.g. "REGISTERED_NURSE-3"),
// waged from HourlyWages and the configured overtime multiplier. The
// orchestrator only needs a roster shaped correctly for the ILP solve; it
// has no notion of a real employee directory, so the config document's
// counts are the only input a deployment actually supplies.
func (c *Config) BuildStaffRoster() []entity.StaffMember {
	var out []entity.StaffMember
	for _, class := range entity.AllRoleClasses {
		for _, role := range entity.RolesInClass(class) {
			count := c.StaffCounts[role]
			wage := c.HourlyWages[role]
			for i := 1; i <= count; i++ {
				out = append(out, entity.StaffMember{
					ID:                 uuid.New(),
					Name:               fmt.Sprintf("%s-%d", role, i),
					Role:               role,
					HourlyWage:         wage,
					OvertimeMultiplier: c.overtimeMultiplierOrDefault(),
				})
			}
		}
	}
	return out
}

func (c *Config) overtimeMultiplierOrDefault() float64 {
	if c.OvertimeMultiplier > 0 {
		return c.OvertimeMultiplier
	}
	return 1.5
}

// DefaultShiftCatalog is the fixed catalog of shift shapes C7 solves
// against: one 8-hour day/evening/night shift plus a free (off) shift,
// matching spec.md §9's shift-catalog containment note. Its LP ids
// (d8/e8/n8) are the ones internal/demand emits. Deployments that need the
// 10/12-hour or on-call kinds build their own entity.ShiftCatalog directly;
// this is the shape the CLI and server bootstraps use, and the orchestrator
// and roster tests build an equivalent catalog of their own.
func DefaultShiftCatalog() *entity.ShiftCatalog {
	return entity.NewShiftCatalog(
		entity.ShiftDefinition{LPShiftID: "d8", Kind: entity.ShiftKind8Day, StartHour: -1},
		entity.ShiftDefinition{LPShiftID: "e8", Kind: entity.ShiftKind8Evening, StartHour: -1},
		entity.ShiftDefinition{LPShiftID: "n8", Kind: entity.ShiftKind8Night, StartHour: -1},
		entity.ShiftDefinition{LPShiftID: "off", Kind: entity.ShiftKindFree, StartHour: -1},
	)
}
