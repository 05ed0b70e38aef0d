package constants

import (
	"fmt"

	authModel "reflectify_backend/internals/features/users/auth/model"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess      = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlySuperAdminsCanAccess = "❌ Hanya super admin yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorSuperAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlySuperAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AdminRoles = []string{
		authModel.RoleAdmin,
		authModel.RoleSuperAdmin,
	}

	SuperAdminOnly = []string{
		authModel.RoleSuperAdmin,
	}
)
