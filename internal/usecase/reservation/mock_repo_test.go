package reservation

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

// ==================== memRepo ====================

type memRepo struct {
	mu   sync.Mutex
	book sync.Mutex

	menus        map[uint]models.Menu
	staff        map[uint]models.Staff
	users        map[uint]models.User
	shifts       []models.StaffShift
	vacations    []models.StaffVacation
	blocks       []models.BlockedTimeSlot
	reservations map[uint]models.Reservation
	nextID       uint

	markErr map[uint]error
}

var _ domain.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		menus:        map[uint]models.Menu{},
		staff:        map[uint]models.Staff{},
		users:        map[uint]models.User{},
		reservations: map[uint]models.Reservation{},
		markErr:      map[uint]error{},
	}
}

func (m *memRepo) GetMenu(_ context.Context, tenantID string, id uint) (*models.Menu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	menu, ok := m.menus[id]
	if !ok || menu.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return &menu, nil
}

func (m *memRepo) GetStaff(_ context.Context, tenantID string, id uint) (*models.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.staff[id]
	if !ok || s.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (m *memRepo) ListActiveStaff(_ context.Context, tenantID string) ([]models.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Staff
	for _, s := range m.staff {
		if s.TenantID == tenantID && s.Active {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) ListShifts(_ context.Context, tenantID string, weekday int) ([]models.StaffShift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.StaffShift
	for _, sh := range m.shifts {
		if sh.TenantID == tenantID && sh.DayOfWeek == weekday {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (m *memRepo) ListVacationsOn(_ context.Context, tenantID string, date string) ([]models.StaffVacation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.StaffVacation
	for _, v := range m.vacations {
		if v.TenantID == tenantID && v.StartDate <= date && date <= v.EndDate {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memRepo) ListBlockedBetween(_ context.Context, tenantID string, from, to time.Time) ([]models.BlockedTimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.BlockedTimeSlot
	for _, b := range m.blocks {
		if b.TenantID == tenantID && b.StartAt.Before(to) && b.EndAt.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memRepo) ListReservationsOn(_ context.Context, tenantID string, date string) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.TenantID == tenantID && r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) CreateReservation(_ context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = time.Now()
	m.reservations[r.ID] = *r
	return nil
}

func (m *memRepo) GetReservation(_ context.Context, tenantID string, id uint) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok || r.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (m *memRepo) UpdateReservation(_ context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[r.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.reservations[r.ID] = *r
	return nil
}

func (m *memRepo) UpdateStatus(_ context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.reservations[r.ID]
	if !ok || cur.TenantID != r.TenantID {
		return gorm.ErrRecordNotFound
	}
	cur.Status = r.Status
	cur.CancelledAt = r.CancelledAt
	cur.CompletedAt = r.CompletedAt
	m.reservations[r.ID] = cur
	return nil
}

func (m *memRepo) ListReservations(_ context.Context, f domain.ListFilter) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reservation
	for _, r := range m.reservations {
		switch {
		case r.TenantID != f.TenantID:
		case f.From != "" && r.Date < f.From:
		case f.To != "" && r.Date > f.To:
		case f.UserID != nil && r.UserID != *f.UserID:
		case f.StaffID != nil && (r.StaffID == nil || *r.StaffID != *f.StaffID):
		case f.Status != "" && r.Status != f.Status:
		default:
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) ListDueReminders(_ context.Context, tenantID string, date string) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reservation
	for _, r := range m.reservations {
		st := domain.Status(r.Status)
		if r.TenantID != tenantID || r.Date != date || r.ReminderSent {
			continue
		}
		if st != domain.StatusPending && st != domain.StatusConfirmed {
			continue
		}
		r.User = m.users[r.UserID]
		r.Menu = m.menus[r.MenuID]
		if r.StaffID != nil {
			s := m.staff[*r.StaffID]
			r.Staff = &s
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) MarkReminderSent(_ context.Context, tenantID string, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.markErr[id]; err != nil {
		return err
	}
	r, ok := m.reservations[id]
	if !ok || r.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	r.ReminderSent = true
	m.reservations[id] = r
	return nil
}

// Atomic serializes callers the way the booking lock does in Postgres.
func (m *memRepo) Atomic(_ context.Context, _ string, _ []string, fn func(repo domain.Repository) error) error {
	m.book.Lock()
	defer m.book.Unlock()
	return fn(m)
}

// ==================== raceRepo ====================

// raceRepo runs between once, right after the first read that happens outside Atomic.
type raceRepo struct {
	*memRepo
	once    sync.Once
	between func(m *memRepo)
}

func (r *raceRepo) GetReservation(ctx context.Context, tenantID string, id uint) (*models.Reservation, error) {
	res, err := r.memRepo.GetReservation(ctx, tenantID, id)
	r.once.Do(func() { r.between(r.memRepo) })
	return res, err
}

// ==================== fixtures ====================

const tenant = "salon-1"

type flagSet map[featureflag.Key]bool

func (f flagSet) IsEnabled(_ context.Context, _ string, key featureflag.Key) bool {
	return f[key]
}

func defaultFlags() flagSet {
	f := flagSet{}
	for _, k := range featureflag.Keys() {
		f[k] = true
	}
	f[featureflag.RequireConfirmation] = false
	return f
}

// Sunday 2030-01-06 10:00 UTC; the next day is a Monday.
var fixedNow = time.Date(2030, 1, 6, 10, 0, 0, 0, time.UTC)

func testSettings() Settings {
	return Settings{
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	}
}

const (
	mondayDate  = "2030-01-07"
	tuesdayDate = "2030-01-08"
)

// seedSalon: one 60 minute menu, staff 1 and 2 working Monday 09:00-18:00, customers 100 and 101.
func seedSalon() *memRepo {
	m := newMemRepo()
	m.menus[1] = models.Menu{ID: 1, TenantID: tenant, Name: "Haircut", DurationMin: 60, Active: true}
	m.menus[2] = models.Menu{ID: 2, TenantID: tenant, Name: "Retired", DurationMin: 30, Active: false}
	m.staff[1] = models.Staff{ID: 1, TenantID: tenant, Name: "Ana", Active: true}
	m.staff[2] = models.Staff{ID: 2, TenantID: tenant, Name: "Bruno", Active: true}
	m.shifts = []models.StaffShift{
		{TenantID: tenant, StaffID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", Active: true},
		{TenantID: tenant, StaffID: 2, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", Active: true},
	}
	m.users[100] = models.User{ID: 100, TenantID: tenant, Name: "Carla", Email: "carla@example.com", Role: models.RoleCustomer}
	m.users[101] = models.User{ID: 101, TenantID: tenant, Name: "Diego", Email: "diego@example.com", Role: models.RoleCustomer}
	return m
}

func ptr[T any](v T) *T { return &v }

// ==================== fakeMailer ====================

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail map[string]error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[to]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}
