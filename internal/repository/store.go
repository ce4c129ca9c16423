package repository

import (
	"context"

	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// Store bundles the repositories behind the interfaces the services consume.
type Store struct {
	Profiles *ProfileRepository
	Habits   *HabitRepository
	Logs     *LogRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		Profiles: NewProfileRepository(db),
		Habits:   NewHabitRepository(db),
		Logs:     NewLogRepository(db),
	}
}

func (s *Store) FindProfileByPhone(ctx context.Context, phone string) (*model.Profile, error) {
	return s.Profiles.FindByPhone(ctx, phone)
}

func (s *Store) ListActiveHabits(ctx context.Context, userID, since string) ([]model.Habit, error) {
	return s.Habits.ListActive(ctx, userID, since)
}

func (s *Store) ListHabitsDueBetween(ctx context.Context, from, to, day string) ([]model.Habit, error) {
	return s.Habits.ListDueBetween(ctx, from, to, day)
}

func (s *Store) CreateLog(ctx context.Context, entry *model.HabitLog) (bool, error) {
	return s.Logs.Create(ctx, entry)
}

func (s *Store) DeleteLog(ctx context.Context, id string) error {
	return s.Logs.Delete(ctx, id)
}

func (s *Store) ClaimReminder(ctx context.Context, habitID, window string) (bool, error) {
	return s.Logs.ClaimReminder(ctx, habitID, window)
}

func (s *Store) PruneReminders(ctx context.Context, before string) (int64, error) {
	return s.Logs.PruneReminders(ctx, before)
}
