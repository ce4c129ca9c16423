package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/model"
)

var today = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) // a Sunday

func day(offset int) string {
	return today.AddDate(0, 0, -offset).Format(model.DateLayout)
}

func habit(id string, offsets ...int) model.Habit {
	h := model.Habit{ID: id, Name: id, IsActive: true, TargetPerWeek: 7, CreatedAt: today.AddDate(0, 0, -60)}
	for _, o := range offsets {
		h.Logs = append(h.Logs, model.HabitLog{HabitID: id, CompletedAt: day(o)})
	}
	return h
}

func TestDailyRate(t *testing.T) {
	t.Run("no active habits", func(t *testing.T) {
		inactive := habit("a", 0)
		inactive.IsActive = false
		assert.Equal(t, DayRate{Date: day(0)}, DailyRate([]model.Habit{inactive}, day(0)))
	})

	t.Run("rounds to nearest percent", func(t *testing.T) {
		r := DailyRate([]model.Habit{habit("a", 0), habit("b"), habit("c")}, day(0))
		assert.Equal(t, 1, r.Completed)
		assert.Equal(t, 3, r.Total)
		assert.Equal(t, 33, r.Rate)

		r = DailyRate([]model.Habit{habit("a", 0), habit("b", 0), habit("c")}, day(0))
		assert.Equal(t, 67, r.Rate)
	})
}

func TestCalculateStreaks(t *testing.T) {
	t.Run("three consecutive days ending today", func(t *testing.T) {
		s := CalculateStreaks([]model.Habit{habit("a", 0, 1, 2)}, today)
		assert.GreaterOrEqual(t, s.Current, 3)
		assert.Equal(t, 3, s.Best)
		require.Len(t, s.Habits, 1)
		assert.Equal(t, 3, s.Habits[0].Current)
	})

	t.Run("incomplete today does not break streak", func(t *testing.T) {
		s := CalculateStreaks([]model.Habit{habit("a", 1, 2)}, today)
		assert.Equal(t, 2, s.Current)
		assert.Equal(t, 2, s.Habits[0].Current)
	})

	t.Run("incomplete today is never counted", func(t *testing.T) {
		with := CalculateStreaks([]model.Habit{habit("a", 0, 1, 2)}, today)
		without := CalculateStreaks([]model.Habit{habit("a", 1, 2)}, today)
		assert.Equal(t, with.Current-1, without.Current)

		none := CalculateStreaks([]model.Habit{habit("a")}, today)
		assert.Equal(t, 0, none.Current)
		assert.Equal(t, 0, none.Best)
	})

	t.Run("gap resets the run", func(t *testing.T) {
		s := CalculateStreaks([]model.Habit{habit("a", 0, 1, 3, 4, 5, 6)}, today)
		assert.Equal(t, 2, s.Current)
		assert.Equal(t, 4, s.Best)
	})

	t.Run("aggregate needs every habit", func(t *testing.T) {
		s := CalculateStreaks([]model.Habit{habit("a", 0, 1, 2), habit("b", 0, 2)}, today)
		assert.Equal(t, 1, s.Current)
		assert.Equal(t, 1, s.Best)
		assert.Equal(t, 3, s.Habits[0].Current)
		assert.Equal(t, 1, s.Habits[1].Current)
	})

	t.Run("no habits", func(t *testing.T) {
		s := CalculateStreaks(nil, today)
		assert.Zero(t, s.Current)
		assert.Zero(t, s.Best)
		assert.Empty(t, s.Habits)
	})
}

func TestPeriodStats(t *testing.T) {
	t.Run("seven day window sorted by rate", func(t *testing.T) {
		got := PeriodStats([]model.Habit{habit("low", 0, 8, 9), habit("high", 0, 1, 2, 3, 4, 5, 6)}, Week, today)
		require.Len(t, got, 2)
		assert.Equal(t, "high", got[0].ID)
		assert.Equal(t, 100, got[0].Rate)
		assert.Equal(t, 7, got[0].TotalDays)
		assert.Equal(t, "low", got[1].ID)
		assert.Equal(t, 1, got[1].CompletedDays)
		assert.Equal(t, 14, got[1].Rate)
	})

	t.Run("all time is capped", func(t *testing.T) {
		h := habit("new", 0, 1, 2)
		h.CreatedAt = today.Add(-12 * time.Hour)
		got := PeriodStats([]model.Habit{h}, AllTime, today)
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].TotalDays)
		assert.Equal(t, 100, got[0].Rate)
	})

	t.Run("created now yields zero days", func(t *testing.T) {
		h := habit("fresh")
		h.CreatedAt = today
		got := PeriodStats([]model.Habit{h}, AllTime, today)
		assert.Equal(t, 1, got[0].TotalDays)
		assert.Equal(t, 0, got[0].Rate)
	})
}

func TestParsePeriod(t *testing.T) {
	for raw, want := range map[string]Period{"7": Week, "30": Month, "all": AllTime, "ALL": AllTime} {
		got, err := ParsePeriod(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParsePeriod("14")
	assert.Error(t, err)
}

func TestWeeklyChart(t *testing.T) {
	weeks := WeeklyChart([]model.Habit{habit("a", 0, 1)}, today)
	require.Len(t, weeks, 4)
	assert.Equal(t, "Esta semana", weeks[3].Label)
	assert.Equal(t, "Semana passada", weeks[2].Label)
	assert.Equal(t, "3 semanas atrás", weeks[0].Label)

	current := weeks[3]
	require.Len(t, current.Days, 7)
	assert.Equal(t, "2026-10-12", current.Days[0].Date) // Monday
	assert.Equal(t, day(0), current.Days[6].Date)
	assert.Equal(t, 29, current.AverageRate) // 2 of 7 days complete
}
