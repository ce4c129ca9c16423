package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"habit-tracker/internal/model"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", progressBar(0))
	assert.Equal(t, "▓▓▓░░░░░░░", progressBar(33))
	assert.Equal(t, "▓▓▓▓▓▓▓░░░", progressBar(67))
	assert.Equal(t, "▓▓▓▓▓▓▓▓▓▓", progressBar(100))
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, msgNoHabits, statusMessage(nil))

	all := []model.HabitWithStatus{{Name: "A", IsCompletedToday: true}, {Name: "B", IsCompletedToday: true}}
	assert.Equal(t, "📊 Progresso de hoje:\n▓▓▓▓▓▓▓▓▓▓ 100%\n\n2/2 hábitos concluídos\n\n🏆 Dia perfeito!", statusMessage(all))

	some := []model.HabitWithStatus{{Name: "A"}, {Name: "B"}, {Name: "C", IsCompletedToday: true}}
	assert.Contains(t, statusMessage(some), "33%")
	assert.Contains(t, statusMessage(some), "2 pendentes")
}

func TestAskWhichHabit(t *testing.T) {
	got := askWhichHabit([]model.HabitWithStatus{{Name: "Leitura"}, {Name: "Água"}})
	assert.Equal(t, "Qual hábito você completou?\n\n1. Leitura\n2. Água\n\nResponda com \"feito <nome>\".", got)
}

func TestReminderMessage(t *testing.T) {
	assert.Equal(t, "⏰ Lembrete: Leitura\n\nResponda \"feito leitura\" quando completar!", reminderMessage("Leitura"))
}
