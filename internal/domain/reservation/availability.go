package reservation

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type AvailabilityInput struct {
	TenantID string
	Date     string
	MenuID   uint
	Staff    StaffChoice
}

type TimeSlot struct {
	Time      string `json:"time"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// StaffDay is one staff member's calendar for a single date.
type StaffDay struct {
	StaffID    uint
	Shifts     []Interval
	OnVacation bool
	Busy       []Interval
}

// DaySchedule folds everything that affects bookings on one date.
type DaySchedule struct {
	Staff      []StaffDay
	Blocked    []Interval
	Unassigned []Interval
	// Earliest is the first minute a slot may start at; later than zero only for today.
	Earliest int
}

// NewDaySchedule builds the schedule for date (local midnight in the tenant timezone).
// Reservation excludeID is ignored so an edit does not collide with itself.
func NewDaySchedule(
	date time.Time,
	staff []models.Staff,
	shifts []models.StaffShift,
	vacations []models.StaffVacation,
	blocks []models.BlockedTimeSlot,
	reservations []models.Reservation,
	excludeID uint,
) DaySchedule {
	dateStr := date.Format(DateLayout)

	byStaff := make(map[uint]*StaffDay, len(staff))
	order := make([]uint, 0, len(staff))
	for _, s := range staff {
		if !s.Active {
			continue
		}
		if _, ok := byStaff[s.ID]; ok {
			continue
		}
		byStaff[s.ID] = &StaffDay{StaffID: s.ID}
		order = append(order, s.ID)
	}

	weekday := int(date.Weekday())
	for _, sh := range shifts {
		sd, ok := byStaff[sh.StaffID]
		if !ok || !sh.Active || sh.DayOfWeek != weekday {
			continue
		}
		start, err1 := ParseClock(sh.StartTime)
		end, err2 := ParseClock(sh.EndTime)
		iv := Interval{Start: start, End: end}
		if err1 != nil || err2 != nil || !iv.Valid() {
			continue
		}
		sd.Shifts = append(sd.Shifts, iv)
	}

	for _, v := range vacations {
		if sd, ok := byStaff[v.StaffID]; ok && v.StartDate <= dateStr && dateStr <= v.EndDate {
			sd.OnVacation = true
		}
	}

	var day DaySchedule

	dayEnd := date.AddDate(0, 0, 1)
	for _, b := range blocks {
		if !b.EndAt.After(date) || !b.StartAt.Before(dayEnd) {
			continue
		}
		iv := Interval{Start: 0, End: int(dayEnd.Sub(date) / time.Minute)}
		if b.StartAt.After(date) {
			iv.Start = int(b.StartAt.Sub(date) / time.Minute)
		}
		if b.EndAt.Before(dayEnd) {
			iv.End = int(b.EndAt.Sub(date) / time.Minute)
		}
		if iv.Start < iv.End {
			day.Blocked = append(day.Blocked, iv)
		}
	}

	for _, r := range reservations {
		if r.ID == excludeID && excludeID != 0 {
			continue
		}
		if r.Date != dateStr || !IsOccupying(Status(r.Status)) {
			continue
		}
		iv := Interval{Start: r.StartMinute, End: r.EndMinute}
		if r.StaffID == nil {
			day.Unassigned = append(day.Unassigned, iv)
			continue
		}
		if sd, ok := byStaff[*r.StaffID]; ok {
			sd.Busy = append(sd.Busy, iv)
		}
	}

	for _, id := range order {
		sd := byStaff[id]
		sort.Slice(sd.Shifts, func(i, j int) bool { return sd.Shifts[i].Start < sd.Shifts[j].Start })
		day.Staff = append(day.Staff, *sd)
	}
	return day
}

// Slots lays out slots of the given duration for a staff choice.
// An assigned staff member gets slots per shift; no preference spans the
// earliest shift start to the latest shift end across working staff.
func (d DaySchedule) Slots(choice StaffChoice, duration int) []TimeSlot {
	if duration <= 0 {
		return []TimeSlot{}
	}

	var windows []Interval
	switch c := choice.(type) {
	case Assigned:
		sd, ok := d.staff(c.StaffID)
		if !ok || sd.OnVacation {
			return []TimeSlot{}
		}
		windows = sd.Shifts
	default:
		if w, ok := d.unionWindow(); ok {
			windows = []Interval{w}
		}
	}

	slots := []TimeSlot{}
	for _, w := range windows {
		for start := w.Start; start+duration <= w.End; start += duration {
			slot := Interval{Start: start, End: start + duration}
			slots = append(slots, TimeSlot{
				Time:      FormatClock(slot.Start),
				End:       FormatClock(slot.End),
				Available: d.CanBook(choice, slot),
			})
		}
	}
	return slots
}

// CanBook reports whether slot can take one more reservation for choice.
// Every overlapping unassigned reservation needs a free staff member of its own.
func (d DaySchedule) CanBook(choice StaffChoice, slot Interval) bool {
	if !slot.Valid() || slot.Start < d.Earliest {
		return false
	}
	for _, b := range d.Blocked {
		if b.Overlaps(slot) {
			return false
		}
	}

	free := d.FreeStaff(slot)
	pending := 0
	for _, u := range d.Unassigned {
		if u.Overlaps(slot) {
			pending++
		}
	}

	switch c := choice.(type) {
	case Assigned:
		for _, id := range free {
			if id == c.StaffID {
				return len(free)-1 >= pending
			}
		}
		return false
	default:
		return len(free) > pending
	}
}

// FreeStaff lists staff who work the whole slot and have no overlapping booking.
func (d DaySchedule) FreeStaff(slot Interval) []uint {
	var ids []uint
	for _, sd := range d.Staff {
		if sd.OnVacation || !sd.works(slot) {
			continue
		}
		busy := false
		for _, b := range sd.Busy {
			if b.Overlaps(slot) {
				busy = true
				break
			}
		}
		if !busy {
			ids = append(ids, sd.StaffID)
		}
	}
	return ids
}

// FindSlot returns the slot starting at hhmm, if any.
func FindSlot(slots []TimeSlot, hhmm string) (TimeSlot, bool) {
	for _, s := range slots {
		if s.Time == hhmm {
			return s, true
		}
	}
	return TimeSlot{}, false
}

func (d DaySchedule) staff(id uint) (StaffDay, bool) {
	for _, sd := range d.Staff {
		if sd.StaffID == id {
			return sd, true
		}
	}
	return StaffDay{}, false
}

func (d DaySchedule) unionWindow() (Interval, bool) {
	var w Interval
	found := false
	for _, sd := range d.Staff {
		if sd.OnVacation {
			continue
		}
		for _, sh := range sd.Shifts {
			if !found {
				w = sh
				found = true
				continue
			}
			w.Start = min(w.Start, sh.Start)
			w.End = max(w.End, sh.End)
		}
	}
	return w, found
}

func (sd StaffDay) works(slot Interval) bool {
	for _, sh := range sd.Shifts {
		if sh.Contains(slot) {
			return true
		}
	}
	return false
}
