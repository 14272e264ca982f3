package model

import "time"

// Role names.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// Role groups backoffice permissions.
type Role struct {
	Base
	Name        string `json:"name" gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string `json:"description"`
}

// User is a backoffice account. Credentials live at the identity provider;
// ProviderID links the local row to the provider's subject.
type User struct {
	Base
	SoftDelete
	ProviderID  string     `json:"provider_id" gorm:"type:varchar(255);not null;uniqueIndex"`
	Email       string     `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Name        string     `json:"name"`
	RoleID      string     `json:"role_id" gorm:"type:uuid;not null;index"`
	Role        *Role      `json:"role,omitempty"`
	IsActive    bool       `json:"is_active" gorm:"not null"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// RoleName returns the joined role name or an empty string when it was not loaded.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// PasswordResetCode is a short-lived one-time code mailed to a user.
type PasswordResetCode struct {
	Base
	UserID    string     `json:"user_id" gorm:"type:uuid;not null;index"`
	CodeHash  string     `json:"-" gorm:"not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	UsedAt    *time.Time `json:"used_at"`
	Attempts  int        `json:"attempts" gorm:"not null;default:0"`
}

// Usable reports whether the code can still be redeemed at now.
func (p *PasswordResetCode) Usable(now time.Time, maxAttempts int) bool {
	return p.UsedAt == nil && now.Before(p.ExpiresAt) && p.Attempts < maxAttempts
}
