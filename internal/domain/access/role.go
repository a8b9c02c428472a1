package access

import "github.com/google/uuid"

type Role int

const (
	RoleUnknown Role = iota
	RolePatient
	RoleHospitalAdmin
	RoleSuperAdmin
	RoleDoctor
)

// Role identifiers as stored in users.role_id.
var (
	PatientRoleID       = uuid.MustParse("8497eb6c-0eea-40e7-8467-f8e393f56811")
	HospitalAdminRoleID = uuid.MustParse("8497eb6c-0eea-40e7-8467-f8e393f56822")
	SuperAdminRoleID    = uuid.MustParse("8497eb6c-0eea-40e7-8467-f8e393f56833")
	DoctorRoleID        = uuid.MustParse("8497eb6c-0eea-40e7-8467-f8e393f56844")
)

var roleByID = map[uuid.UUID]Role{
	PatientRoleID:       RolePatient,
	HospitalAdminRoleID: RoleHospitalAdmin,
	SuperAdminRoleID:    RoleSuperAdmin,
	DoctorRoleID:        RoleDoctor,
}

// String is the tag stored as a chat message's sender_type.
func (r Role) String() string {
	switch r {
	case RolePatient:
		return "user"
	case RoleHospitalAdmin:
		return "hospital_admin"
	case RoleSuperAdmin:
		return "super_admin"
	case RoleDoctor:
		return "doctor"
	default:
		return "unknown"
	}
}

func (r Role) Known() bool {
	return r != RoleUnknown
}

// FromID maps a role identifier to its role. Nil and unrecognised ids are
// RoleUnknown.
func FromID(id *uuid.UUID) Role {
	if id == nil {
		return RoleUnknown
	}
	if r, ok := roleByID[*id]; ok {
		return r
	}
	return RoleUnknown
}

// IDOf is the inverse of FromID.
func IDOf(r Role) (uuid.UUID, bool) {
	for id, role := range roleByID {
		if role == r {
			return id, true
		}
	}
	return uuid.Nil, false
}
