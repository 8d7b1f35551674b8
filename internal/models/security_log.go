package models

import "time"

// SecurityLog rows are append-only.
type SecurityLog struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"size:64;index;not null" json:"tenant_id"`

	UserID   *uint  `json:"user_id"`
	Action   string `gorm:"size:50;not null" json:"action"`
	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	IP       string `gorm:"size:64" json:"ip"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
