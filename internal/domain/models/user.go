package models

// UserRole splits principals into administrators and regular users.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// IsValid reports whether the value is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Permission is an atomic capability checked before allowing a mutation.
type Permission string

const (
	PermManageInventory Permission = "MANAGE_INVENTORY"
	PermManageOrders    Permission = "MANAGE_ORDERS"
	PermManageLogistics Permission = "MANAGE_LOGISTICS"
	PermManageUsers     Permission = "MANAGE_USERS"
	PermViewReports     Permission = "VIEW_REPORTS"
)

// AllPermissions lists every capability the system knows about.
func AllPermissions() []Permission {
	return []Permission{
		PermManageInventory,
		PermManageOrders,
		PermManageLogistics,
		PermManageUsers,
		PermViewReports,
	}
}

// IsValid reports whether the value is a known permission.
func (p Permission) IsValid() bool {
	for _, known := range AllPermissions() {
		if p == known {
			return true
		}
	}
	return false
}

// User is an authenticated principal. The password is an opaque credential
// compared by exact match; changing that would break the export/import
// document format, so hashing is deliberately not introduced here.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Password    string   `json:"password,omitempty"`
	DisplayName string   `json:"displayName"`
	Role        UserRole `json:"role"`
	GroupID     string   `json:"groupId,omitempty"`
}

// Group bundles permissions granted to its member users.
type Group struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// Grants reports whether the group carries the given permission.
func (g Group) Grants(p Permission) bool {
	for _, granted := range g.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}
