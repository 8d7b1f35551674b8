package featureflag

import (
	"sort"

	"github.com/BruksfildServices01/reservation-scheduler/internal/config"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type Key string

const (
	OnlineBooking        Key = "online_booking"
	StaffSelection       Key = "staff_selection"
	RequireConfirmation  Key = "require_confirmation"
	EmailReminders       Key = "email_reminders"
	CustomerCancellation Key = "customer_cancellation"
	CustomerReschedule   Key = "customer_reschedule"
	ReservationNotes     Key = "reservation_notes"
	PublicStaffDirectory Key = "public_staff_directory"
	AnalyticsDashboard   Key = "analytics_dashboard"
	MenuImages           Key = "menu_images"
)

// Flags always carries all ten keys.
type Flags map[Key]bool

func Keys() []Key {
	keys := []Key{
		OnlineBooking, StaffSelection, RequireConfirmation, EmailReminders,
		CustomerCancellation, CustomerReschedule, ReservationNotes,
		PublicStaffDirectory, AnalyticsDashboard, MenuImages,
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func IsKnown(k Key) bool {
	for _, known := range Keys() {
		if known == k {
			return true
		}
	}
	return false
}

// Disabled is the fail-closed value.
func Disabled() Flags {
	f := make(Flags, 10)
	for _, k := range Keys() {
		f[k] = false
	}
	return f
}

func fromRow(row *models.FeatureFlag) Flags {
	return Flags{
		OnlineBooking:        row.OnlineBooking,
		StaffSelection:       row.StaffSelection,
		RequireConfirmation:  row.RequireConfirmation,
		EmailReminders:       row.EmailReminders,
		CustomerCancellation: row.CustomerCancellation,
		CustomerReschedule:   row.CustomerReschedule,
		ReservationNotes:     row.ReservationNotes,
		PublicStaffDirectory: row.PublicStaffDirectory,
		AnalyticsDashboard:   row.AnalyticsDashboard,
		MenuImages:           row.MenuImages,
	}
}

func applyTo(row *models.FeatureFlag, f Flags) {
	row.OnlineBooking = f[OnlineBooking]
	row.StaffSelection = f[StaffSelection]
	row.RequireConfirmation = f[RequireConfirmation]
	row.EmailReminders = f[EmailReminders]
	row.CustomerCancellation = f[CustomerCancellation]
	row.CustomerReschedule = f[CustomerReschedule]
	row.ReservationNotes = f[ReservationNotes]
	row.PublicStaffDirectory = f[PublicStaffDirectory]
	row.AnalyticsDashboard = f[AnalyticsDashboard]
	row.MenuImages = f[MenuImages]
}

func fromDefaults(d config.FeatureDefaults) Flags {
	return Flags{
		OnlineBooking:        d.OnlineBooking,
		StaffSelection:       d.StaffSelection,
		RequireConfirmation:  d.RequireConfirmation,
		EmailReminders:       d.EmailReminders,
		CustomerCancellation: d.CustomerCancellation,
		CustomerReschedule:   d.CustomerReschedule,
		ReservationNotes:     d.ReservationNotes,
		PublicStaffDirectory: d.PublicStaffDirectory,
		AnalyticsDashboard:   d.AnalyticsDashboard,
		MenuImages:           d.MenuImages,
	}
}
