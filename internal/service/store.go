package service

import (
	"context"
	"time"

	"habit-tracker/internal/model"
)

// CompletionStore is the persistence used by the conversational engine.
type CompletionStore interface {
	// FindProfileByPhone returns gorm.ErrRecordNotFound for unknown addresses.
	FindProfileByPhone(ctx context.Context, phone string) (*model.Profile, error)
	// ListActiveHabits returns the owner's active habits with logs dated on or
	// after since preloaded; an empty since loads every log.
	ListActiveHabits(ctx context.Context, userID, since string) ([]model.Habit, error)
	// CreateLog inserts entry unless a log for the same habit and day exists,
	// reporting whether a row was written.
	CreateLog(ctx context.Context, entry *model.HabitLog) (bool, error)
}

// ToggleStore is the persistence used to flip a habit's state for today.
type ToggleStore interface {
	ListActiveHabits(ctx context.Context, userID, since string) ([]model.Habit, error)
	CreateLog(ctx context.Context, entry *model.HabitLog) (bool, error)
	DeleteLog(ctx context.Context, id string) error
}

// ReminderStore is the persistence used by the reminder dispatcher.
type ReminderStore interface {
	// ListHabitsDueBetween returns active habits whose reminder time is in
	// [from, to), with their owner and the logs dated day preloaded.
	ListHabitsDueBetween(ctx context.Context, from, to, day string) ([]model.Habit, error)
	// ClaimReminder records the delivery for habit and window, returning false
	// when it was already claimed.
	ClaimReminder(ctx context.Context, habitID, window string) (bool, error)
	// PruneReminders deletes claims for windows before the given key.
	PruneReminders(ctx context.Context, before string) (int64, error)
}

// Notifier delivers a plain-text message to a channel address.
type Notifier interface {
	Send(ctx context.Context, to, text string) error
}

// bounded limits an external call to d; a non-positive d only inherits ctx.
func bounded(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
