package hruser

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleHR    Role = "HR"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleHR
}

var permissions = map[Role][]string{
	RoleAdmin: {
		"view_all_applications", "manage_applications", "manage_users", "reports_analytics",
		"system_settings", "delete_users", "create_users", "update_users",
	},
	RoleHR: {
		"view_all_applications", "manage_applications", "reports_analytics", "view_users",
	},
}

var descriptions = map[Role]string{
	RoleAdmin: "System Administrator - Full access to all features including user management",
	RoleHR:    "HR Manager - Can view and manage applications, generate reports",
}

func (r Role) Description() string {
	return descriptions[r]
}

// Permissions lists what a role may do.
func (r Role) Permissions() []string {
	p := permissions[r]
	out := make([]string, len(p))
	copy(out, p)
	return out
}

func Roles() []Role {
	return []Role{RoleAdmin, RoleHR}
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
