package users

import "time"

const (
	RoleAdmin      = "admin"
	RoleLeadership = "leadership"
	RoleDirector   = "director"
	RoleMember     = "member"
)

// Roles lists every role an account may hold.
var Roles = []string{RoleAdmin, RoleLeadership, RoleDirector, RoleMember}

// User is an editor account. Role decides which content pages it may save.
type User struct {
	ID       uint `gorm:"primaryKey"`
	Name     string
	Email    string `gorm:"not null;uniqueIndex:idx_users_email"`
	Password string `gorm:"not null"`
	Role     string `gorm:"type:varchar(20);not null;default:'member'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
