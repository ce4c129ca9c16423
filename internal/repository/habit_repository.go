package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// HabitRepository reads habits together with their completion logs.
type HabitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

// ListActive returns the user's active habits in creation order with logs
// dated on or after since; an empty since loads every log.
func (r *HabitRepository) ListActive(ctx context.Context, userID, since string) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.db.WithContext(ctx).
		Preload("Logs", func(tx *gorm.DB) *gorm.DB {
			if since != "" {
				tx = tx.Where("completed_at >= ?", since)
			}
			return tx.Order("completed_at DESC")
		}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC, id ASC").
		Find(&habits).Error
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

// ListDueBetween returns active habits of every owner whose reminder time is
// in [from, to), with owner profile and the logs dated day.
func (r *HabitRepository) ListDueBetween(ctx context.Context, from, to, day string) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Logs", "completed_at = ?", day).
		Where("is_active = ? AND reminder_time IS NOT NULL AND reminder_time >= ? AND reminder_time < ?", true, from, to).
		Order("reminder_time ASC, created_at ASC").
		Find(&habits).Error
	if err != nil {
		return nil, fmt.Errorf("list due habits: %w", err)
	}
	return habits, nil
}
