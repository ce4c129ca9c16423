package service

import (
	"fmt"
	"math"
	"strings"

	"habit-tracker/internal/model"
)

const (
	msgAllDone       = "🎉 Todos os hábitos já foram concluídos hoje!"
	msgNothingLeft   = "🎉 Parabéns! Você completou todos os hábitos de hoje!"
	msgPerfectDay    = "🏆 Dia perfeito! Todos os hábitos concluídos!"
	msgNoHabits      = "Você ainda não tem hábitos cadastrados."
	msgUnknown       = "Não entendi. Use \"ajuda\" para ver os comandos disponíveis."
	msgGenericError  = "Ops! Algo deu errado. Tente novamente."
	progressBarWidth = 10
)

var doneEmojis = []string{"✅", "💪", "🎯", "⭐"}

func habitMarkedDone(name string, pick func(n int) int) string {
	return fmt.Sprintf("%s %s marcado como feito!", doneEmojis[pick(len(doneEmojis))], name)
}

func habitAlreadyDone(name string) string {
	return fmt.Sprintf("%s já foi feito hoje!", name)
}

func habitNotFound(search string) string {
	return fmt.Sprintf("Não encontrei o hábito \"%s\". Use \"pendentes\" para ver a lista.", search)
}

func listPendingHabits(habits []model.HabitWithStatus) string {
	pending := model.Pending(habits)
	if len(pending) == 0 {
		return msgNothingLeft
	}
	var sb strings.Builder
	sb.WriteString("📋 Hábitos pendentes:")
	for _, h := range pending {
		sb.WriteString("\n• ")
		sb.WriteString(h.Name)
	}
	return sb.String()
}

func askWhichHabit(pending []model.HabitWithStatus) string {
	var sb strings.Builder
	sb.WriteString("Qual hábito você completou?\n")
	for i, h := range pending {
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, h.Name))
	}
	sb.WriteString("\n\nResponda com \"feito <nome>\".")
	return sb.String()
}

func statusMessage(habits []model.HabitWithStatus) string {
	total := len(habits)
	if total == 0 {
		return msgNoHabits
	}
	completed := len(model.Completed(habits))
	pct := int(math.Round(float64(completed) / float64(total) * 100))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 Progresso de hoje:\n%s %d%%\n\n", progressBar(pct), pct))
	sb.WriteString(fmt.Sprintf("%d/%d hábitos concluídos", completed, total))
	if completed == total {
		sb.WriteString("\n\n🏆 Dia perfeito!")
	} else {
		pending := total - completed
		suffix := ""
		if pending > 1 {
			suffix = "s"
		}
		sb.WriteString(fmt.Sprintf("\n\n%d pendente%s", pending, suffix))
	}
	return sb.String()
}

func progressBar(pct int) string {
	filled := int(math.Round(float64(pct) / 10))
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("▓", filled) + strings.Repeat("░", progressBarWidth-filled)
}

func helpMessage() string {
	return "📱 *Comandos disponíveis:*\n\n" +
		"*\"feito\"* - Marca hábito pendente\n" +
		"*\"feito [nome]\"* - Marca hábito específico\n" +
		"*\"pendentes\"* - Lista hábitos pendentes\n" +
		"*\"progresso\"* - Mostra status do dia\n" +
		"*\"ajuda\"* - Mostra esta mensagem"
}

func reminderMessage(name string) string {
	return fmt.Sprintf("⏰ Lembrete: %s\n\nResponda \"feito %s\" quando completar!", name, strings.ToLower(name))
}
