package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

// 2030-01-07 is a Monday.
var monday = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

func uptr(v uint) *uint { return &v }

func activeStaff(ids ...uint) []models.Staff {
	out := make([]models.Staff, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Staff{ID: id, Name: "staff", Active: true})
	}
	return out
}

func shift(staffID uint, weekday int, start, end string) models.StaffShift {
	return models.StaffShift{StaffID: staffID, DayOfWeek: weekday, StartTime: start, EndTime: end, Active: true}
}

func booked(id uint, staffID *uint, start, end int) models.Reservation {
	return models.Reservation{
		ID:          id,
		StaffID:     staffID,
		Date:        "2030-01-07",
		Time:        FormatClock(start),
		StartMinute: start,
		EndMinute:   end,
		Status:      string(StatusConfirmed),
	}
}

func times(slots []TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time)
	}
	return out
}

func TestSlots_FullMondayShift(t *testing.T) {
	day := NewDaySchedule(monday, activeStaff(1), []models.StaffShift{shift(1, 1, "09:00", "18:00")}, nil, nil, nil, 0)

	slots := day.Slots(Assigned{StaffID: 1}, 60)

	require.Len(t, slots, 9)
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}, times(slots))
	for _, s := range slots {
		assert.True(t, s.Available, s.Time)
	}
	assert.Equal(t, "18:00", slots[8].End)
}

func TestSlots_BlockedNoonMarkedUnavailable(t *testing.T) {
	block := models.BlockedTimeSlot{
		StartAt: monday.Add(12 * time.Hour),
		EndAt:   monday.Add(13 * time.Hour),
	}
	day := NewDaySchedule(monday, activeStaff(1), []models.StaffShift{shift(1, 1, "09:00", "18:00")}, nil, []models.BlockedTimeSlot{block}, nil, 0)

	slots := day.Slots(Assigned{StaffID: 1}, 60)

	require.Len(t, slots, 9)
	for _, s := range slots {
		assert.Equal(t, s.Time != "12:00", s.Available, s.Time)
	}
}

func TestSlots_ShiftUntilMidnight(t *testing.T) {
	day := NewDaySchedule(monday, activeStaff(1), []models.StaffShift{shift(1, 1, "22:00", "24:00")}, nil, nil, nil, 0)

	slots := day.Slots(Assigned{StaffID: 1}, 60)

	assert.Equal(t, []string{"22:00", "23:00"}, times(slots))
	require.Len(t, slots, 2)
	assert.True(t, slots[1].Available)
	assert.Equal(t, "24:00", slots[1].End)
}

func TestSlots_DurationMustFitWindow(t *testing.T) {
	day := NewDaySchedule(monday, activeStaff(1), []models.StaffShift{shift(1, 1, "09:00", "11:00")}, nil, nil, nil, 0)

	assert.Equal(t, []string{"09:00"}, times(day.Slots(Assigned{StaffID: 1}, 90)))
}

func TestSlots_ClosedDayIsEmpty(t *testing.T) {
	// shift exists only on Tuesday
	day := NewDaySchedule(monday, activeStaff(1), []models.StaffShift{shift(1, 2, "09:00", "18:00")}, nil, nil, nil, 0)

	assert.Empty(t, day.Slots(Assigned{StaffID: 1}, 60))
	assert.Empty(t, day.Slots(Unassigned{}, 60))
}

func TestSlots_VacationCoveringDateIsEmpty(t *testing.T) {
	vac := models.StaffVacation{StaffID: 1, StartDate: "2030-01-05", EndDate: "2030-01-07"}
	day := NewDaySchedule(monday, activeStaff(1), []models.StaffShift{shift(1, 1, "09:00", "18:00")}, []models.StaffVacation{vac}, nil, nil, 0)

	assert.Empty(t, day.Slots(Assigned{StaffID: 1}, 60))
	assert.Empty(t, day.Slots(Unassigned{}, 60))
}

func TestSlots_InactiveShiftAndStaffIgnored(t *testing.T) {
	off := shift(1, 1, "09:00", "18:00")
	off.Active = false
	staff := []models.Staff{{ID: 2, Active: false}}
	day := NewDaySchedule(monday, append(activeStaff(1), staff...), []models.StaffShift{off, shift(2, 1, "09:00", "18:00")}, nil, nil, nil, 0)

	assert.Empty(t, day.Slots(Unassigned{}, 60))
}

func TestSlots_ReservationOccupiesStaff(t *testing.T) {
	res := []models.Reservation{booked(10, uptr(1), 600, 660)}
	day := NewDaySchedule(monday, activeStaff(1), []models.StaffShift{shift(1, 1, "09:00", "12:00")}, nil, nil, res, 0)

	slots := day.Slots(Assigned{StaffID: 1}, 60)
	require.Len(t, slots, 3)
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)

	// editing reservation 10 must not collide with itself
	day = NewDaySchedule(monday, activeStaff(1), []models.StaffShift{shift(1, 1, "09:00", "12:00")}, nil, nil, res, 10)
	assert.True(t, day.CanBook(Assigned{StaffID: 1}, Interval{Start: 600, End: 660}))
}

func TestSlots_CancelledReservationDoesNotOccupy(t *testing.T) {
	r := booked(10, uptr(1), 600, 660)
	r.Status = string(StatusCancelled)
	day := NewDaySchedule(monday, activeStaff(1), []models.StaffShift{shift(1, 1, "09:00", "12:00")}, nil, nil, []models.Reservation{r}, 0)

	assert.True(t, day.CanBook(Assigned{StaffID: 1}, Interval{Start: 600, End: 660}))
}

func TestSlots_NoPreferenceNeedsOneFreeStaff(t *testing.T) {
	shifts := []models.StaffShift{shift(1, 1, "09:00", "12:00"), shift(2, 1, "09:00", "12:00")}
	res := []models.Reservation{booked(10, uptr(1), 540, 600)}
	day := NewDaySchedule(monday, activeStaff(1, 2), shifts, nil, nil, res, 0)

	slot := Interval{Start: 540, End: 600}
	assert.True(t, day.CanBook(Unassigned{}, slot))
	assert.False(t, day.CanBook(Assigned{StaffID: 1}, slot))
	assert.True(t, day.CanBook(Assigned{StaffID: 2}, slot))

	res = append(res, booked(11, uptr(2), 540, 600))
	day = NewDaySchedule(monday, activeStaff(1, 2), shifts, nil, nil, res, 0)
	assert.False(t, day.CanBook(Unassigned{}, slot))
}

func TestSlots_UnassignedReservationsConsumeCapacity(t *testing.T) {
	shifts := []models.StaffShift{shift(1, 1, "09:00", "12:00"), shift(2, 1, "09:00", "12:00")}
	res := []models.Reservation{booked(10, nil, 540, 600)}
	day := NewDaySchedule(monday, activeStaff(1, 2), shifts, nil, nil, res, 0)

	slot := Interval{Start: 540, End: 600}
	assert.True(t, day.CanBook(Unassigned{}, slot))
	assert.True(t, day.CanBook(Assigned{StaffID: 2}, slot))

	res = append(res, booked(11, nil, 540, 600))
	day = NewDaySchedule(monday, activeStaff(1, 2), shifts, nil, nil, res, 0)
	assert.False(t, day.CanBook(Unassigned{}, slot))
	assert.False(t, day.CanBook(Assigned{StaffID: 1}, slot))
}

func TestSlots_GapBetweenShiftsIsUnavailable(t *testing.T) {
	shifts := []models.StaffShift{shift(1, 1, "09:00", "12:00"), shift(2, 1, "14:00", "18:00")}
	day := NewDaySchedule(monday, activeStaff(1, 2), shifts, nil, nil, nil, 0)

	slots := day.Slots(Unassigned{}, 60)

	require.Len(t, slots, 9)
	for _, s := range slots {
		inGap := s.Time == "12:00" || s.Time == "13:00"
		assert.Equal(t, !inGap, s.Available, s.Time)
	}
}

func TestSlots_EarliestHidesPastSlots(t *testing.T) {
	day := NewDaySchedule(monday, activeStaff(1), []models.StaffShift{shift(1, 1, "09:00", "12:00")}, nil, nil, nil, 0)
	day.Earliest = 601

	slots := day.Slots(Assigned{StaffID: 1}, 60)
	require.Len(t, slots, 3)
	assert.False(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)
}

func TestSlots_BlockSpanningMidnightClipped(t *testing.T) {
	block := models.BlockedTimeSlot{
		StartAt: monday.Add(-2 * time.Hour),
		EndAt:   monday.Add(10 * time.Hour),
	}
	day := NewDaySchedule(monday, activeStaff(1), []models.StaffShift{shift(1, 1, "09:00", "12:00")}, nil, []models.BlockedTimeSlot{block}, nil, 0)

	require.Len(t, day.Blocked, 1)
	assert.Equal(t, Interval{Start: 0, End: 600}, day.Blocked[0])
}

func TestFindSlot(t *testing.T) {
	slots := []TimeSlot{{Time: "09:00", Available: true}, {Time: "10:00"}}

	s, ok := FindSlot(slots, "10:00")
	assert.True(t, ok)
	assert.False(t, s.Available)

	_, ok = FindSlot(slots, "09:30")
	assert.False(t, ok)
}
