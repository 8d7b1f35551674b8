package reservation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/metrics"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
	"github.com/BruksfildServices01/reservation-scheduler/internal/timezone"
)

type ReminderFailure struct {
	ReservationID uint   `json:"reservation_id"`
	Error         string `json:"error"`
}

type ReminderReport struct {
	RunID    string            `json:"run_id"`
	Date     string            `json:"date"`
	Eligible int               `json:"eligible"`
	Sent     int               `json:"sent"`
	Failed   int               `json:"failed"`
	Errors   []ReminderFailure `json:"errors"`
}

// SendReminders emails customers booked for tomorrow. Each reservation is sent
// then flagged on its own, so a rerun skips what already went out.
type SendReminders struct {
	repo     domain.Repository
	flags    FlagChecker
	mailer   Mailer
	settings Settings
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewSendReminders(
	repo domain.Repository,
	flags FlagChecker,
	mailer Mailer,
	settings Settings,
	metrics *metrics.Metrics,
	log *zap.Logger,
) *SendReminders {
	if log == nil {
		log = zap.NewNop()
	}
	return &SendReminders{
		repo:     repo,
		flags:    flags,
		mailer:   mailer,
		settings: settings,
		metrics:  metrics,
		log:      log,
	}
}

func (uc *SendReminders) Execute(ctx context.Context, tenantID string) (*ReminderReport, error) {
	if !uc.flags.IsEnabled(ctx, tenantID, featureflag.EmailReminders) {
		return nil, featureDisabled(featureflag.EmailReminders)
	}

	report := &ReminderReport{
		RunID:  uuid.NewString(),
		Date:   timezone.Tomorrow(uc.settings.now(), uc.settings.loc()),
		Errors: []ReminderFailure{},
	}
	log := uc.log.With(zap.String("run_id", report.RunID), zap.String("date", report.Date))

	due, err := uc.repo.ListDueReminders(ctx, tenantID, report.Date)
	if err != nil {
		return nil, err
	}
	report.Eligible = len(due)

	for i := range due {
		r := &due[i]
		if err := uc.remind(ctx, tenantID, r); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, ReminderFailure{ReservationID: r.ID, Error: err.Error()})
			uc.metrics.Reminder(false)
			log.Warn("reminder failed", zap.Uint("reservation_id", r.ID), zap.Error(err))
			continue
		}
		report.Sent++
		uc.metrics.Reminder(true)
	}

	log.Info("reminder run finished",
		zap.Int("eligible", report.Eligible),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (uc *SendReminders) remind(ctx context.Context, tenantID string, r *models.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st := domain.Status(r.Status)
	if r.ReminderSent || (st != domain.StatusPending && st != domain.StatusConfirmed) {
		return fmt.Errorf("reservation not eligible")
	}
	to := strings.TrimSpace(r.User.Email)
	if to == "" {
		return fmt.Errorf("customer has no email address")
	}

	subject, body := reminderEmail(r)
	if err := uc.mailer.Send(ctx, to, subject, body); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	if err := uc.repo.MarkReminderSent(ctx, tenantID, r.ID); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	return nil
}

func reminderEmail(r *models.Reservation) (string, string) {
	subject := fmt.Sprintf("Reminder: %s tomorrow at %s", r.Menu.Name, r.Time)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", r.User.Name)
	fmt.Fprintf(&b, "This is a reminder of your reservation on %s at %s.\n", r.Date, r.Time)
	fmt.Fprintf(&b, "Service: %s (%d min)\n", r.Menu.Name, r.DurationMin)
	if r.Staff != nil {
		fmt.Fprintf(&b, "With: %s\n", r.Staff.Name)
	}
	if r.Status == string(domain.StatusPending) {
		b.WriteString("\nYour reservation is still waiting for confirmation.\n")
	}
	b.WriteString("\nSee you soon!\n")
	return subject, b.String()
}
