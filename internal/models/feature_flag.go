package models

import "time"

// FeatureFlag holds one row of switches per tenant.
type FeatureFlag struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	TenantID string `gorm:"size:64;uniqueIndex;not null" json:"-"`

	OnlineBooking        bool `json:"online_booking"`
	StaffSelection       bool `json:"staff_selection"`
	RequireConfirmation  bool `json:"require_confirmation"`
	EmailReminders       bool `json:"email_reminders"`
	CustomerCancellation bool `json:"customer_cancellation"`
	CustomerReschedule   bool `json:"customer_reschedule"`
	ReservationNotes     bool `json:"reservation_notes"`
	PublicStaffDirectory bool `json:"public_staff_directory"`
	AnalyticsDashboard   bool `json:"analytics_dashboard"`
	MenuImages           bool `json:"menu_images"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}
