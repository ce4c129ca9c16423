package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"habit-tracker/internal/model"
)

// LogRepository writes completion logs and reminder deliveries.
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Create inserts entry unless the habit already has a log for that day.
// The unique (habit_id, completed_at) index arbitrates concurrent writers.
func (r *LogRepository) Create(ctx context.Context, entry *model.HabitLog) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "habit_id"}, {Name: "completed_at"}},
			DoNothing: true,
		}).
		Create(entry)
	if res.Error != nil {
		return false, fmt.Errorf("create habit log: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *LogRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.HabitLog{})
	if res.Error != nil {
		return fmt.Errorf("delete habit log: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete habit log %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// ClaimReminder records a reminder for habit in window, returning false if
// one was already recorded.
func (r *LogRepository) ClaimReminder(ctx context.Context, habitID, window string) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "habit_id"}, {Name: "window_key"}},
			DoNothing: true,
		}).
		Create(&model.ReminderDelivery{HabitID: habitID, Window: window})
	if res.Error != nil {
		return false, fmt.Errorf("claim reminder: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// PruneReminders deletes claims for windows earlier than before (2006-01-02T15).
func (r *LogRepository) PruneReminders(ctx context.Context, before string) (int64, error) {
	res := r.db.WithContext(ctx).Where("window_key < ?", before).Delete(&model.ReminderDelivery{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune reminders: %w", res.Error)
	}
	return res.RowsAffected, nil
}
