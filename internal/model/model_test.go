package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestHabit_Normalize(t *testing.T) {
	h := Habit{Name: "Meditar", TargetPerWeek: 2}
	h.Normalize()
	assert.Equal(t, FrequencyDaily, h.Frequency)
	assert.Equal(t, 7, h.TargetPerWeek)

	w := Habit{Name: "Yoga", Frequency: FrequencyWeekly, TargetPerWeek: 3}
	w.Normalize()
	assert.Equal(t, 3, w.TargetPerWeek)
}

func TestHabit_Validate(t *testing.T) {
	valid := func() Habit {
		return Habit{Name: "Yoga", Frequency: FrequencyWeekly, TargetPerWeek: 3, ReminderTime: strPtr("07:30")}
	}

	require.NoError(t, func() error { h := valid(); return h.Validate() }())

	cases := map[string]func(h *Habit){
		"empty name":        func(h *Habit) { h.Name = "" },
		"long name":         func(h *Habit) { h.Name = strings.Repeat("a", 101) },
		"long description":  func(h *Habit) { h.Description = strPtr(strings.Repeat("d", 501)) },
		"unknown frequency": func(h *Habit) { h.Frequency = "hourly" },
		"target zero":       func(h *Habit) { h.TargetPerWeek = 0 },
		"target eight":      func(h *Habit) { h.TargetPerWeek = 8 },
		"bad reminder":      func(h *Habit) { h.ReminderTime = strPtr("24:00") },
		"unpadded reminder": func(h *Habit) { h.ReminderTime = strPtr("7:30") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			h := valid()
			mutate(&h)
			assert.Error(t, h.Validate())
		})
	}

	h := valid()
	h.Name = strings.Repeat("á", 100)
	assert.NoError(t, h.Validate(), "length counts runes")
}

func TestProfile_Reachable(t *testing.T) {
	var missing *Profile
	assert.False(t, missing.Reachable())
	assert.False(t, (&Profile{MessagingEnabled: true}).Reachable())
	assert.False(t, (&Profile{MessagingEnabled: true, Phone: strPtr("")}).Reachable())
	assert.False(t, (&Profile{Phone: strPtr("5511999990000")}).Reachable())
	assert.True(t, (&Profile{MessagingEnabled: true, Phone: strPtr("5511999990000")}).Reachable())
}

func TestWithStatus(t *testing.T) {
	habits := []Habit{
		{ID: "a", Name: "Meditar", Logs: []HabitLog{{CompletedAt: "2026-10-17"}}},
		{ID: "b", Name: "Leitura", Logs: []HabitLog{{CompletedAt: "2026-10-18"}}},
		{ID: "c", Name: "Correr"},
	}

	statuses := WithStatus(habits, "2026-10-18")
	assert.Equal(t, []HabitWithStatus{
		{ID: "a", Name: "Meditar"},
		{ID: "b", Name: "Leitura", IsCompletedToday: true},
		{ID: "c", Name: "Correr"},
	}, statuses)

	pending := Pending(statuses)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].ID)
	assert.Equal(t, "c", pending[1].ID)
	assert.Equal(t, []HabitWithStatus{{ID: "b", Name: "Leitura", IsCompletedToday: true}}, Completed(statuses))
}

func TestDay(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	at := time.Date(2026, 10, 19, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-10-19", Day(at, time.UTC))
	assert.Equal(t, "2026-10-18", Day(at, saoPaulo))
}
