package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edrostering/edflow/internal/entity"
)

const validDoc = `{
	"populationSize": 1000,
	"ERName": "Test ED",
	"ERCapacity": 20,
	"ERTreatmentRooms": 6,
	"interarrivalTimeMins": 10,
	"maxHoursPerDay": 12,
	"maxRegularHoursPerWeek": 40,
	"maxTotalHoursPerWeek": 48,
	"overtimeMultiplier": 1.5,
	"staffCounts": {"REGISTERED_NURSE": 4, "ATTENDING_PHYSICIAN": 1, "RESIDENT_PHYSICIAN": 1},
	"hourlyWages": {"REGISTERED_NURSE": 40, "ATTENDING_PHYSICIAN": 120, "RESIDENT_PHYSICIAN": 60},
	"CNARatio": 1,
	"LPNRatio": 1,
	"estTraumaPatientsDay": 2,
	"estTraumaPatientsEvening": 1,
	"estTraumaPatientsNight": 1,
	"estNonTraumaPatientsDay": 8,
	"estNonTraumaPatientsEvening": 6,
	"estNonTraumaPatientsNight": 3,
	"triageNurseRequirements": {"RED": 1, "ORANGE": 1, "YELLOW": 0.5, "GREEN": 0.25, "BLUE": 0.1},
	"triagePhysicianRequirements": {"RED": 1, "ORANGE": 0.5, "YELLOW": 0.25, "GREEN": 0.1, "BLUE": 0.05},
	"triageRPRequirements": {"RED": 0.5, "ORANGE": 0.25, "YELLOW": 0.1, "GREEN": 0.05, "BLUE": 0},
	"avgTreatmentTimesMins": {"RED": 90, "ORANGE": 60, "YELLOW": 45, "GREEN": 30, "BLUE": 15},
	"patientArrivalFunctions": {"flat": "5"},
	"defaultArrivalFunction": "flat",
	"patientMinAge": 5,
	"patientMaxAge": 100
}`

func TestLoadFromValidDocument(t *testing.T) {
	cfg, result, err := LoadFrom(strings.NewReader(validDoc))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.False(t, result.HasErrors())
	assert.Equal(t, 20, cfg.ERCapacity)
	assert.Equal(t, 28, cfg.SchedulingPeriodDays, "default scheduling period")
	assert.Equal(t, int64(1), cfg.RandomSeed, "default random seed")
}

func TestLoadFromRejectsUnknownFields(t *testing.T) {
	_, _, err := LoadFrom(strings.NewReader(`{"populationSize": 1, "bogusField": true}`))
	assert.Error(t, err)
}

func TestLoadFromFlagsMissingRequiredKeys(t *testing.T) {
	_, result, err := LoadFrom(strings.NewReader(`{}`))
	assert.Error(t, err)
	require.NotNil(t, result)
	assert.True(t, result.HasErrors())
}

func TestLoadFromFlagsUnknownDefaultArrivalFunction(t *testing.T) {
	doc := strings.Replace(validDoc, `"defaultArrivalFunction": "flat"`, `"defaultArrivalFunction": "missing"`, 1)
	_, result, err := LoadFrom(strings.NewReader(doc))
	assert.Error(t, err)
	assert.True(t, result.HasErrors())
}

func TestStaffClassCountSumsRolesInClass(t *testing.T) {
	cfg, _, err := LoadFrom(strings.NewReader(validDoc))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.StaffClassCount(entity.RoleClassNurse))
	assert.Equal(t, 1, cfg.StaffClassCount(entity.RoleClassAttending))
	assert.Equal(t, 1, cfg.StaffClassCount(entity.RoleClassResident))
}

func TestBuildStaffRosterMatchesConfiguredCounts(t *testing.T) {
	cfg, _, err := LoadFrom(strings.NewReader(validDoc))
	require.NoError(t, err)

	staff := cfg.BuildStaffRoster()

	counts := map[entity.Role]int{}
	for _, s := range staff {
		counts[s.Role]++
		assert.NotEqual(t, "", s.ID.String())
		assert.Equal(t, 1.5, s.OvertimeMultiplier)
	}
	assert.Equal(t, 4, counts[entity.RoleRegisteredNurse])
	assert.Equal(t, 1, counts[entity.RoleAttendingPhysician])
	assert.Equal(t, 1, counts[entity.RoleResidentPhysician])
}

func TestBuildStaffRosterDefaultsOvertimeMultiplier(t *testing.T) {
	cfg, _, err := LoadFrom(strings.NewReader(validDoc))
	require.NoError(t, err)
	cfg.OvertimeMultiplier = 0

	staff := cfg.BuildStaffRoster()
	require.NotEmpty(t, staff)
	for _, s := range staff {
		assert.Equal(t, 1.5, s.OvertimeMultiplier)
	}
}

func TestDefaultShiftCatalogCoversAllThreeShiftWindows(t *testing.T) {
	catalog := DefaultShiftCatalog()
	require.NotNil(t, catalog)

	for _, id := range []string{"d8", "e8", "n8", "off"} {
		_, ok := catalog.Get(id)
		assert.True(t, ok, "catalog missing %s", id)
	}
	off, _ := catalog.Get("off")
	assert.True(t, off.IsOff())
}
