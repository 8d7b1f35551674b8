package models

import "time"

// StaffShift is a recurring weekly working window. DayOfWeek follows time.Weekday (0 = Sunday).
type StaffShift struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"size:64;index;not null" json:"tenant_id"`
	StaffID  uint   `gorm:"index" json:"staff_id"`

	DayOfWeek int    `json:"day_of_week"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
