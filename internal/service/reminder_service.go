package service

import (
	"context"
	"fmt"
	"time"

	"habit-tracker/internal/logger"
	"habit-tracker/internal/model"
)

const (
	windowLayout = "2006-01-02T15"
	// claimRetention is how long delivery claims are kept after their window.
	claimRetention = 7 * 24 * time.Hour
)

// ReminderOptions tunes the dispatcher. Zero values fall back to defaults.
type ReminderOptions struct {
	Location     *time.Location
	StoreTimeout time.Duration
	SendTimeout  time.Duration
	// Pace is waited between consecutive sends.
	Pace time.Duration
	Now  func() time.Time
}

// DispatchResult summarises one dispatcher run.
type DispatchResult struct {
	Hour    string `json:"hour"`
	Sent    int    `json:"sent"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// ReminderService notifies owners of habits due in the current hour window.
type ReminderService struct {
	store    ReminderStore
	notifier Notifier
	opts     ReminderOptions
}

func NewReminderService(store ReminderStore, notifier Notifier, opts ReminderOptions) *ReminderService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ReminderService{store: store, notifier: notifier, opts: opts}
}

// Dispatch runs the reminders for the hour window containing now.
func (s *ReminderService) Dispatch(ctx context.Context) (DispatchResult, error) {
	return s.DispatchAt(ctx, s.opts.Now())
}

// DispatchAt runs the reminders for the hour window containing at. Habits
// already completed today, owners that cannot be reached and reminders
// already sent in this window are skipped. A failed send is counted and the
// batch continues.
func (s *ReminderService) DispatchAt(ctx context.Context, at time.Time) (DispatchResult, error) {
	local := at.In(s.opts.Location)
	from, to := hourWindow(local)
	day := local.Format(model.DateLayout)
	window := local.Format(windowLayout)
	result := DispatchResult{Hour: from}

	queryCtx, cancel := bounded(ctx, s.opts.StoreTimeout)
	habits, err := s.store.ListHabitsDueBetween(queryCtx, from, to, day)
	cancel()
	if err != nil {
		return result, fmt.Errorf("list due habits: %w", err)
	}

	logger.Info("running reminders", "window", from, "due", len(habits))

	attempted := 0
	for _, habit := range habits {
		if habit.CompletedOn(day) {
			result.Skipped++
			continue
		}
		if !habit.Owner.Reachable() {
			result.Skipped++
			continue
		}

		claimCtx, cancel := bounded(ctx, s.opts.StoreTimeout)
		claimed, err := s.store.ClaimReminder(claimCtx, habit.ID, window)
		cancel()
		if err != nil {
			logger.Error("claim reminder", "window", from, "habit", habit.ID, "err", err)
			result.Failed++
			continue
		}
		if !claimed {
			result.Skipped++
			continue
		}

		if attempted > 0 && s.opts.Pace > 0 {
			timer := time.NewTimer(s.opts.Pace)
			select {
			case <-ctx.Done():
				timer.Stop()
				return result, ctx.Err()
			case <-timer.C:
			}
		}
		attempted++

		sendCtx, cancel := bounded(ctx, s.opts.SendTimeout)
		err = s.notifier.Send(sendCtx, *habit.Owner.Phone, reminderMessage(habit.Name))
		cancel()
		if err != nil {
			logger.Error("send reminder", "window", from, "habit", habit.ID, "err", err)
			result.Failed++
			continue
		}
		logger.Debug("reminder sent", "window", from, "habit", habit.ID)
		result.Sent++
	}

	logger.Info("reminders completed", "window", from, "sent", result.Sent, "skipped", result.Skipped, "failed", result.Failed)
	s.prune(ctx, local)
	return result, nil
}

// prune drops delivery claims older than claimRetention. Failures only log;
// stale claims never block a later window.
func (s *ReminderService) prune(ctx context.Context, at time.Time) {
	cutoff := at.Add(-claimRetention).Format(windowLayout)
	pruneCtx, cancel := bounded(ctx, s.opts.StoreTimeout)
	defer cancel()
	n, err := s.store.PruneReminders(pruneCtx, cutoff)
	if err != nil {
		logger.Warn("prune reminder claims", "before", cutoff, "err", err)
		return
	}
	if n > 0 {
		logger.Debug("pruned reminder claims", "before", cutoff, "count", n)
	}
}

// hourWindow returns the [from, to) HH:MM bounds of the hour containing t.
// The last hour of the day ends at "24:00" so string comparison still works.
func hourWindow(t time.Time) (string, string) {
	return fmt.Sprintf("%02d:00", t.Hour()), fmt.Sprintf("%02d:00", t.Hour()+1)
}
