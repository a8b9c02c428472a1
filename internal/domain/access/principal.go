package access

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Principal is the authenticated user a request acts for.
type Principal struct {
	ID     uuid.UUID
	RoleID *uuid.UUID
}

func PrincipalOf(u *models.User) Principal {
	return Principal{ID: u.ID, RoleID: u.RoleID}
}

func RoleOf(p Principal) Role {
	return FromID(p.RoleID)
}

// IsHospitalAdmin holds when the hospital has an admin assigned, that admin
// is p, and p carries a recognised role.
func IsHospitalAdmin(p Principal, h *models.Hospital) bool {
	if h == nil || h.AdminID == nil {
		return false
	}
	if !RoleOf(p).Known() {
		return false
	}
	return *h.AdminID == p.ID
}

// CanManageDoctor allows super admins everywhere and hospital admins inside
// their own hospital.
func CanManageDoctor(p Principal, h *models.Hospital) bool {
	if RoleOf(p) == RoleSuperAdmin {
		return true
	}
	return IsHospitalAdmin(p, h)
}
