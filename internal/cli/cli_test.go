package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/config"
	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/stats"
)

func TestRenderStats(t *testing.T) {
	now := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)
	habits := []model.Habit{
		{
			ID: "a", Name: "Meditar", IsActive: true, TargetPerWeek: 7,
			CreatedAt: now.AddDate(0, 0, -10),
			Logs:      []model.HabitLog{{CompletedAt: "2026-10-18"}, {CompletedAt: "2026-10-17"}},
		},
		{ID: "b", Name: "Leitura", IsActive: true, TargetPerWeek: 7, CreatedAt: now.AddDate(0, 0, -10)},
	}

	out := renderStats(habits, stats.Week, now)
	assert.Contains(t, out, "1/2 hábitos")
	assert.Contains(t, out, "Hábitos (7d)")
	assert.Contains(t, out, "Meditar")
	assert.Contains(t, out, "2/7 dias, sequência 2, recorde 2")
	assert.Contains(t, out, "Leitura")
	assert.Contains(t, out, "Esta semana")
	assert.Contains(t, out, "3 semanas atrás")

	assert.Equal(t, "Nenhum hábito ativo\n", renderStats(nil, stats.Week, now))
}

func TestFindHabit(t *testing.T) {
	habits := []model.HabitWithStatus{
		{ID: "1f0c", Name: "Meditar"},
		{ID: "9a2b", Name: "Leitura"},
	}

	h, ok := findHabit(habits, "9a2b")
	require.True(t, ok)
	assert.Equal(t, "Leitura", h.Name)

	h, ok = findHabit(habits, "medit")
	require.True(t, ok)
	assert.Equal(t, "1f0c", h.ID)

	_, ok = findHabit(habits, "natação")
	assert.False(t, ok)
}

func TestToggleCmd(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "habits.db")
	db, err := repository.NewDB(dsn)
	require.NoError(t, err)
	phone := "5511999990000"
	owner := &model.Profile{Phone: &phone, MessagingEnabled: true}
	require.NoError(t, db.Create(owner).Error)
	habit := &model.Habit{UserID: owner.ID, Name: "Leitura", IsActive: true}
	require.NoError(t, db.Create(habit).Error)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	ctx := &Context{Config: config.Config{DatabaseURL: dsn, Timezone: "UTC"}}
	countLogs := func() int64 {
		var n int64
		require.NoError(t, db.Model(&model.HabitLog{}).Where("habit_id = ?", habit.ID).Count(&n).Error)
		return n
	}

	require.NoError(t, (&ToggleCmd{User: phone, Habit: "leitura"}).Run(ctx))
	assert.EqualValues(t, 1, countLogs())

	require.NoError(t, (&ToggleCmd{User: owner.ID, Habit: habit.ID}).Run(ctx))
	assert.EqualValues(t, 0, countLogs())

	assert.Error(t, (&ToggleCmd{User: "unknown", Habit: "leitura"}).Run(ctx))
	assert.Error(t, (&ToggleCmd{User: phone, Habit: "natação"}).Run(ctx))
}
