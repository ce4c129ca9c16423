package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"habit-tracker/internal/model"
	"habit-tracker/internal/service"
	"habit-tracker/internal/stats"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	fairStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	poorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type StatsCmd struct {
	User   string `required:"" help:"Profile id or messaging address."`
	Period string `default:"7" enum:"7,30,all" help:"Statistics window: 7, 30 or all."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	period, err := stats.ParsePeriod(c.Period)
	if err != nil {
		return err
	}

	a, err := ctx.open(false)
	if err != nil {
		return err
	}
	defer a.Close()

	bg := context.Background()
	profile, err := a.resolveUser(bg, c.User)
	if err != nil {
		return err
	}
	habits, err := service.NewHabitService(a.store, a.loc).ListWithLogs(bg, profile.ID)
	if err != nil {
		return err
	}

	fmt.Print(renderStats(habits, period, time.Now().In(a.loc)))
	return nil
}

func renderStats(habits []model.Habit, period stats.Period, now time.Time) string {
	if len(habits) == 0 {
		return "Nenhum hábito ativo\n"
	}

	var b strings.Builder
	today := stats.DailyRate(habits, now.Format(model.DateLayout))
	streaks := stats.CalculateStreaks(habits, now)

	fmt.Fprintln(&b, headingStyle.Render("Hoje"))
	fmt.Fprintf(&b, "  %d/%d hábitos  %s\n", today.Completed, today.Total, rateText(today.Rate))
	fmt.Fprintf(&b, "  Sequência: %d dias (recorde %d)\n\n", streaks.Current, streaks.Best)

	fmt.Fprintln(&b, headingStyle.Render(fmt.Sprintf("Hábitos (%s)", period)))
	perHabit := make(map[string]stats.HabitStreak, len(streaks.Habits))
	for _, s := range streaks.Habits {
		perHabit[s.ID] = s
	}
	for _, h := range stats.PeriodStats(habits, period, now) {
		s := perHabit[h.ID]
		fmt.Fprintf(&b, "  %-24s %s  %s\n",
			h.Name,
			rateText(h.Rate),
			mutedStyle.Render(fmt.Sprintf("%d/%d dias, sequência %d, recorde %d", h.CompletedDays, h.TotalDays, s.Current, s.Best)),
		)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, headingStyle.Render("Últimas 4 semanas"))
	for _, w := range stats.WeeklyChart(habits, now) {
		fmt.Fprintf(&b, "  %-16s %s\n", w.Label, rateText(w.AverageRate))
	}
	return b.String()
}

func rateText(rate int) string {
	text := fmt.Sprintf("%3d%%", rate)
	switch {
	case rate >= 80:
		return goodStyle.Render(text)
	case rate >= 50:
		return fairStyle.Render(text)
	default:
		return poorStyle.Render(text)
	}
}
