package reservation

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

var allStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range allStatuses {
		if st == candidate {
			return st, nil
		}
	}
	return "", httperr.Validation("invalid status", map[string]string{"status": "oneof=PENDING CONFIRMED CANCELLED COMPLETED NO_SHOW"})
}

// IsOccupying reports whether a reservation in this status holds its slot.
func IsOccupying(s Status) bool {
	return s != StatusCancelled
}

// CanEdit allows changes only while the reservation is still upcoming.
func CanEdit(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.New(httperr.CodeInvalidState, "reservation can no longer be changed")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.New(httperr.CodeInvalidState, "reservation can no longer be cancelled")
	}
	return nil
}

// InitialStatus is CONFIRMED unless the tenant confirms bookings by hand.
func InitialStatus(requireConfirmation bool) Status {
	if requireConfirmation {
		return StatusPending
	}
	return StatusConfirmed
}

func Cancel(r *models.Reservation, now time.Time) error {
	if err := CanCancel(Status(r.Status)); err != nil {
		return err
	}
	r.Status = string(StatusCancelled)
	r.CancelledAt = &now
	return nil
}

// ApplyStatus is the admin path. Timestamps follow the new status; callers
// check the slot first when a cancelled reservation comes back.
func ApplyStatus(r *models.Reservation, st Status, now time.Time) {
	if Status(r.Status) == st {
		return
	}
	r.Status = string(st)
	r.CancelledAt = nil
	r.CompletedAt = nil
	switch st {
	case StatusCancelled:
		r.CancelledAt = &now
	case StatusCompleted:
		r.CompletedAt = &now
	}
}

// Reoccupies reports whether moving from one status to the other takes the slot back.
func Reoccupies(from, to Status) bool {
	return !IsOccupying(from) && IsOccupying(to)
}
