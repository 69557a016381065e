package models

// Operations gated by role. Handlers check these before calling into
// services; services themselves only enforce ownership.
const (
	OpCreateVault = "vault:create"
	OpListVaults  = "vault:list"
	OpAddLocker   = "locker:add"
)

var rolePermissions = map[string][]string{
	OpCreateVault: {RoleAdmin},
	OpListVaults:  {RoleStaff, RoleAdmin},
	OpAddLocker:   {RoleStaff, RoleAdmin},
}

// Permits reports whether a role may perform an operation. Operations not
// listed in the table are open to any authenticated user.
func Permits(role, operation string) bool {
	allowed, ok := rolePermissions[operation]
	if !ok {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
