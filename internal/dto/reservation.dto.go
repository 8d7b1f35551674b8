package dto

import (
	"time"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

// ReservationDTO is the flattened view used by every reservation listing.
type ReservationDTO struct {
	ID           uint       `json:"id"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	EndTime      string     `json:"end_time"`
	DurationMin  int        `json:"duration_min"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
	ReminderSent bool       `json:"reminder_sent"`
	UserID       uint       `json:"user_id"`
	CustomerName string     `json:"customer_name"`
	MenuID       uint       `json:"menu_id"`
	MenuName     string     `json:"menu_name"`
	Price        float64    `json:"price"`
	StaffID      *uint      `json:"staff_id"`
	StaffName    string     `json:"staff_name,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ToReservationDTO(r *models.Reservation) ReservationDTO {
	out := ReservationDTO{
		ID:           r.ID,
		Date:         r.Date,
		Time:         r.Time,
		EndTime:      domain.FormatClock(r.EndMinute),
		DurationMin:  r.DurationMin,
		Status:       r.Status,
		Notes:        r.Notes,
		ReminderSent: r.ReminderSent,
		UserID:       r.UserID,
		CustomerName: r.User.Name,
		MenuID:       r.MenuID,
		MenuName:     r.Menu.Name,
		Price:        r.Menu.Price,
		StaffID:      r.StaffID,
		CancelledAt:  r.CancelledAt,
		CompletedAt:  r.CompletedAt,
		CreatedAt:    r.CreatedAt,
	}
	if r.Staff != nil {
		out.StaffName = r.Staff.Name
	}
	return out
}

func ToReservationDTOs(rs []models.Reservation) []ReservationDTO {
	out := make([]ReservationDTO, 0, len(rs))
	for i := range rs {
		out = append(out, ToReservationDTO(&rs[i]))
	}
	return out
}

// UserDTO never exposes credentials.
type UserDTO struct {
	ID       uint        `json:"id"`
	TenantID string      `json:"tenant_id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Role     models.Role `json:"role"`
	Active   bool        `json:"active"`
}

func ToUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		TenantID: u.TenantID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		Active:   u.Active,
	}
}

func ToUserDTOs(us []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(us))
	for i := range us {
		out = append(out, ToUserDTO(&us[i]))
	}
	return out
}
