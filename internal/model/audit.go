package model

// Audit actions.
const (
	AuditCreate  = "create"
	AuditUpdate  = "update"
	AuditDelete  = "delete"
	AuditReorder = "reorder"
	AuditStatus  = "status"
	AuditLogin   = "login"
	AuditLogout  = "logout"
	AuditUpload  = "upload"

	AuditPasswordReset = "password_reset"
)

// AuditLog records who changed what in the backoffice.
type AuditLog struct {
	Base
	UserID    *string        `json:"user_id" gorm:"type:uuid;index"`
	Action    string         `json:"action" gorm:"type:varchar(32);not null;index"`
	Entity    string         `json:"entity" gorm:"type:varchar(64);not null;index"`
	EntityID  string         `json:"entity_id" gorm:"type:varchar(64)"`
	Details   map[string]any `json:"details,omitempty" gorm:"type:jsonb;serializer:json"`
	IPAddress string         `json:"ip_address" gorm:"type:varchar(64)"`
}
