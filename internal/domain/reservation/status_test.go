package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" no_show ")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, st)

	_, err = ParseStatus("DONE")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestCanEditAndCancel(t *testing.T) {
	for _, st := range []Status{StatusPending, StatusConfirmed} {
		assert.NoError(t, CanEdit(st))
		assert.NoError(t, CanCancel(st))
	}
	for _, st := range []Status{StatusCancelled, StatusCompleted, StatusNoShow} {
		assert.True(t, httperr.IsBusiness(CanEdit(st), httperr.CodeInvalidState))
		assert.True(t, httperr.IsBusiness(CanCancel(st), httperr.CodeInvalidState))
	}
}

func TestCancel_KeepsRow(t *testing.T) {
	now := time.Now()
	r := &models.Reservation{ID: 3, Status: string(StatusConfirmed)}

	require.NoError(t, Cancel(r, now))
	assert.Equal(t, string(StatusCancelled), r.Status)
	require.NotNil(t, r.CancelledAt)

	assert.Error(t, Cancel(r, now))
}

func TestApplyStatus(t *testing.T) {
	r := &models.Reservation{Status: string(StatusCancelled)}
	ApplyStatus(r, StatusCompleted, time.Now())

	assert.Equal(t, string(StatusCompleted), r.Status)
	assert.NotNil(t, r.CompletedAt)
	assert.Nil(t, r.CancelledAt)

	ApplyStatus(r, StatusConfirmed, time.Now())
	assert.Nil(t, r.CompletedAt)
	assert.Nil(t, r.CancelledAt)

	done := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
	r.Status, r.CompletedAt = string(StatusCompleted), &done
	ApplyStatus(r, StatusCompleted, time.Now())
	assert.Equal(t, &done, r.CompletedAt)
}

func TestReoccupies(t *testing.T) {
	assert.True(t, Reoccupies(StatusCancelled, StatusConfirmed))
	assert.True(t, Reoccupies(StatusCancelled, StatusCompleted))
	assert.False(t, Reoccupies(StatusCancelled, StatusCancelled))
	assert.False(t, Reoccupies(StatusConfirmed, StatusNoShow))
	assert.False(t, Reoccupies(StatusPending, StatusCancelled))
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 1440, true},
		{"24:01", 0, false},
		{"25:00", 0, false},
		{" 09:30", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if !tc.ok {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
	assert.Equal(t, "24:00", FormatClock(1440))
}

func TestStaffChoice(t *testing.T) {
	assert.Equal(t, Unassigned{}, ChoiceFromID(nil))
	assert.Equal(t, Unassigned{}, ChoiceFromID(uptr(0)))
	assert.Equal(t, Assigned{StaffID: 4}, ChoiceFromID(uptr(4)))

	assert.Nil(t, StaffIDOf(Unassigned{}))
	assert.Equal(t, uint(4), *StaffIDOf(Assigned{StaffID: 4}))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusConfirmed, InitialStatus(false))
	assert.Equal(t, StatusPending, InitialStatus(true))
}
