package entity

import "github.com/google/uuid"

// Role is one of the eleven concrete staff job titles.
type Role string

const (
	RoleRegisteredNurse                   Role = "REGISTERED_NURSE"
	RoleLicensedPracticalNurse            Role = "LICENSED_PRACTICAL_NURSE"
	RoleCertifiedNursingAssistant         Role = "CERTIFIED_NURSING_ASSISTANT"
	RoleNursePractitioner                 Role = "NURSE_PRACTITIONER"
	RoleClinicalNurseSpecialist           Role = "CLINICAL_NURSE_SPECIALIST"
	RoleCertifiedRegisteredNurseAnesthetist Role = "CERTIFIED_REGISTERED_NURSE_ANESTHETIST"
	RoleResidentPhysician                 Role = "RESIDENT_PHYSICIAN"
	RoleAttendingPhysician                Role = "ATTENDING_PHYSICIAN"
	RoleSurgeon                           Role = "SURGEON"
	RoleCardiologist                      Role = "CARDIOLOGIST"
	RoleAdminClerk                        Role = "ADMIN_CLERK"
)

// RoleClass groups roles for scheduling purposes.
type RoleClass string

const (
	RoleClassNurse     RoleClass = "NURSE"
	RoleClassAttending RoleClass = "ATTENDING"
	RoleClassResident  RoleClass = "RESIDENT"
	RoleClassAdmin     RoleClass = "ADMIN"
)

// nurseClassRoles, attendingClassRoles, etc. fix class membership.
var (
	nurseClassRoles = map[Role]bool{
		RoleRegisteredNurse:                     true,
		RoleLicensedPracticalNurse:              true,
		RoleCertifiedNursingAssistant:           true,
		RoleNursePractitioner:                   true,
		RoleClinicalNurseSpecialist:              true,
		RoleCertifiedRegisteredNurseAnesthetist: true,
	}
	attendingClassRoles = map[Role]bool{
		RoleAttendingPhysician: true,
		RoleSurgeon:            true,
		RoleCardiologist:       true,
	}
	residentClassRoles = map[Role]bool{
		RoleResidentPhysician: true,
	}
	adminClassRoles = map[Role]bool{
		RoleAdminClerk: true,
	}
)

// Class returns the scheduling class a role belongs to.
func (r Role) Class() RoleClass {
	switch {
	case nurseClassRoles[r]:
		return RoleClassNurse
	case attendingClassRoles[r]:
		return RoleClassAttending
	case residentClassRoles[r]:
		return RoleClassResident
	case adminClassRoles[r]:
		return RoleClassAdmin
	default:
		return ""
	}
}

// AllRoleClasses lists the four scheduling classes, in the order C7 solves them.
var AllRoleClasses = []RoleClass{RoleClassNurse, RoleClassAttending, RoleClassResident, RoleClassAdmin}

// RolesInClass returns every role belonging to a class.
func RolesInClass(class RoleClass) []Role {
	var set map[Role]bool
	switch class {
	case RoleClassNurse:
		set = nurseClassRoles
	case RoleClassAttending:
		set = attendingClassRoles
	case RoleClassResident:
		set = residentClassRoles
	case RoleClassAdmin:
		set = adminClassRoles
	}
	roles := make([]Role, 0, len(set))
	for r := range set {
		roles = append(roles, r)
	}
	return roles
}

// PooledGroup is a treatment-gating resource counter in the ED state.
type PooledGroup string

const (
	PooledNurses    PooledGroup = "Nurses"
	PooledPhysicians PooledGroup = "Physicians"
	PooledResidents PooledGroup = "Residents"
)

// StaffMember is a scheduling unit: one person, one role, one wage.
//
// The source's StaffMemberInterface plus five concrete subclasses collapses
// to this single struct with a RoleClass discriminator; schedulers switch on
// the discriminator once and then operate on a uniform list.
type StaffMember struct {
	ID                 uuid.UUID
	Name               string
	Role               Role
	HourlyWage         float64
	OvertimeMultiplier float64
}

// Class is a convenience accessor for the staff member's scheduling class.
func (s StaffMember) Class() RoleClass {
	return s.Role.Class()
}
