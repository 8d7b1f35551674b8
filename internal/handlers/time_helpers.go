package handlers

import (
	"sort"
	"time"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

func invalidRange(message string) error {
	return httperr.New(httperr.CodeInvalidTimeRange, message)
}

// clockWindow parses an "HH:MM" pair; end must come after start.
func clockWindow(start, end string) (domain.Interval, error) {
	s, err := domain.ParseClock(start)
	if err != nil {
		return domain.Interval{}, httperr.Validation("invalid time", map[string]string{"start_time": "format=HH:MM"})
	}
	e, err := domain.ParseClock(end)
	if err != nil {
		return domain.Interval{}, httperr.Validation("invalid time", map[string]string{"end_time": "format=HH:MM"})
	}
	w := domain.Interval{Start: s, End: e}
	if !w.Valid() {
		return domain.Interval{}, invalidRange("end_time must be after start_time")
	}
	return w, nil
}

// checkShifts rejects malformed windows and overlapping shifts on the same weekday.
func checkShifts(shifts []models.StaffShift) error {
	byDay := map[int][]domain.Interval{}
	for _, sh := range shifts {
		if sh.DayOfWeek < 0 || sh.DayOfWeek > 6 {
			return httperr.Validation("invalid shift", map[string]string{"day_of_week": "min=0,max=6"})
		}
		w, err := clockWindow(sh.StartTime, sh.EndTime)
		if err != nil {
			return err
		}
		if sh.Active {
			byDay[sh.DayOfWeek] = append(byDay[sh.DayOfWeek], w)
		}
	}

	for _, ws := range byDay {
		sort.Slice(ws, func(i, j int) bool { return ws[i].Start < ws[j].Start })
		for i := 1; i < len(ws); i++ {
			if ws[i].Overlaps(ws[i-1]) {
				return invalidRange("shifts on the same day must not overlap")
			}
		}
	}
	return nil
}

// dateRange validates inclusive "YYYY-MM-DD" bounds.
func dateRange(from, to string) error {
	f, err := time.Parse(domain.DateLayout, from)
	if err != nil {
		return httperr.Validation("invalid date", map[string]string{"start_date": "format=YYYY-MM-DD"})
	}
	t, err := time.Parse(domain.DateLayout, to)
	if err != nil {
		return httperr.Validation("invalid date", map[string]string{"end_date": "format=YYYY-MM-DD"})
	}
	if t.Before(f) {
		return invalidRange("end_date must not be before start_date")
	}
	return nil
}
