package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// HabitService covers the web-style operations on a user's habits.
type HabitService struct {
	store ToggleStore
	loc   *time.Location
	now   func() time.Time
}

func NewHabitService(store ToggleStore, loc *time.Location) *HabitService {
	if loc == nil {
		loc = time.Local
	}
	return &HabitService{store: store, loc: loc, now: time.Now}
}

// Today returns the calendar day the service considers current.
func (s *HabitService) Today() string {
	return model.Day(s.now(), s.loc)
}

// ListWithLogs returns the user's active habits with their full log history.
func (s *HabitService) ListWithLogs(ctx context.Context, userID string) ([]model.Habit, error) {
	return s.store.ListActiveHabits(ctx, userID, "")
}

// ToggleToday completes the habit for today, or removes exactly today's log
// when it is already complete. It reports the resulting state.
func (s *HabitService) ToggleToday(ctx context.Context, userID, habitID string) (bool, error) {
	today := s.Today()
	habits, err := s.store.ListActiveHabits(ctx, userID, today)
	if err != nil {
		return false, fmt.Errorf("load habits: %w", err)
	}

	for _, habit := range habits {
		if habit.ID != habitID {
			continue
		}
		for _, entry := range habit.Logs {
			if entry.CompletedAt == today {
				if err := s.store.DeleteLog(ctx, entry.ID); err != nil {
					return true, fmt.Errorf("uncomplete habit: %w", err)
				}
				return false, nil
			}
		}
		if _, err := s.store.CreateLog(ctx, &model.HabitLog{HabitID: habitID, CompletedAt: today, Source: model.SourceWeb}); err != nil {
			return false, fmt.Errorf("complete habit: %w", err)
		}
		return true, nil
	}

	return false, fmt.Errorf("habit %s: %w", habitID, gorm.ErrRecordNotFound)
}
