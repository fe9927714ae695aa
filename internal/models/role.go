package models

// Role tiers are fixed by id; the backend never sends a permission list.
const (
	RoleAdmin    int64 = 1
	RoleOperator int64 = 2
	RoleViewer   int64 = 3
)

// Role is rename-only through the dashboard: roles are never created or
// deleted here.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tier maps a role id onto its permission tier. Lower is more privileged.
// Unknown ids rank below Viewer so they fail every gate.
func Tier(roleID int64) int {
	switch roleID {
	case RoleAdmin:
		return 1
	case RoleOperator:
		return 2
	case RoleViewer:
		return 3
	default:
		return 4
	}
}

// TierAllows reports whether a holder of roleID clears the gate set at
// required (one of the Role* ids).
func TierAllows(roleID, required int64) bool {
	return Tier(roleID) <= Tier(required)
}
