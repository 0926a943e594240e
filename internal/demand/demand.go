// Package demand derives per-role, per-shift minimum staffing counts from
// configured trauma/non-trauma patient volume estimates, following the
// Oregon ED staffing planning ratios (spec.md §4.6). It is a pure function
// of its inputs: no I/O, no shared state.
package demand

import (
	"math"

	"github.com/edrostering/edflow/internal/entity"
)

// DayPartVolume is the trauma/non-trauma patient estimate for one day-part.
type DayPartVolume struct {
	Trauma    int
	NonTrauma int
}

// Total is the census for this day-part: trauma plus non-trauma patients.
func (v DayPartVolume) Total() int {
	return v.Trauma + v.NonTrauma
}

// Inputs is everything the generator needs for one planning horizon.
type Inputs struct {
	Day     DayPartVolume
	Evening DayPartVolume
	Night   DayPartVolume

	LPNRatio float64
	CNARatio float64

	NumDays int
}

var dayPartShiftID = map[entity.DayPart]string{
	entity.DayPartDay:     "d8",
	entity.DayPartEvening: "e8",
	entity.DayPartNight:   "n8",
}

func ceilDiv(total int, ratio float64) int {
	if ratio <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / ratio))
}

// roleCounts computes the six per-role minimum headcounts for one
// day-part's patient volume.
func roleCounts(v DayPartVolume, lpnRatio, cnaRatio float64) map[entity.Role]int {
	total := v.Total()

	counts := map[entity.Role]int{
		entity.RoleRegisteredNurse:   v.Trauma + int(math.Ceil(float64(v.NonTrauma)/4)),
		entity.RoleLicensedPracticalNurse: ceilDiv(total, lpnRatio),
		entity.RoleCertifiedNursingAssistant: ceilDiv(total, cnaRatio),
		entity.RoleAttendingPhysician: int(math.Max(1, math.Ceil(float64(total)/20))),
		entity.RoleResidentPhysician:  int(math.Ceil(float64(total) / 15)),
		entity.RoleAdminClerk:         int(math.Max(1, math.Ceil(float64(total)/50))),
	}
	return counts
}

// Generate produces the demand list for a planning horizon of in.NumDays
// days: the Cartesian product of {day, evening, night} day-parts, every day
// in the horizon, and every staffed role, mapped onto the 8-hour LP shift
// ids (d8/e8/n8).
func Generate(in Inputs) []entity.DemandRecord {
	volumes := map[entity.DayPart]DayPartVolume{
		entity.DayPartDay:     in.Day,
		entity.DayPartEvening: in.Evening,
		entity.DayPartNight:   in.Night,
	}

	var records []entity.DemandRecord
	for day := 0; day < in.NumDays; day++ {
		for _, part := range entity.AllDayParts {
			counts := roleCounts(volumes[part], in.LPNRatio, in.CNARatio)
			shiftID := dayPartShiftID[part]
			for role, count := range counts {
				if count == 0 {
					continue
				}
				records = append(records, entity.DemandRecord{
					Role:          role,
					DayIndex:      day,
					LPShiftID:     shiftID,
					RequiredCount: count,
				})
			}
		}
	}
	return records
}
