package models

import "time"

type Reservation struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"size:64;index;not null" json:"tenant_id"`

	UserID uint `json:"user_id"`
	User   User `json:"user,omitempty"`

	// nil means the customer had no staff preference
	StaffID *uint  `json:"staff_id"`
	Staff   *Staff `json:"staff,omitempty"`

	MenuID uint `json:"menu_id"`
	Menu   Menu `json:"menu,omitempty"`

	Date        string `gorm:"size:10;index;not null" json:"date"`
	Time        string `gorm:"size:5;not null" json:"time"`
	StartMinute int    `json:"-"`
	EndMinute   int    `json:"-"`
	DurationMin int    `json:"duration_min"`

	Status       string `gorm:"size:20;default:'CONFIRMED'" json:"status"`
	Notes        string `gorm:"size:500" json:"notes"`
	ReminderSent bool   `gorm:"default:false" json:"reminder_sent"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
