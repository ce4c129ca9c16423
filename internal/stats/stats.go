// Package stats computes completion rates, streaks and period summaries
// from habits with their logs loaded.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"habit-tracker/internal/model"
)

// ScanDays bounds how far back streaks are searched.
const ScanDays = 365

// DayRate is the aggregate completion of one calendar day.
type DayRate struct {
	Date      string
	Completed int
	Total     int
	Rate      int
}

// DailyRate computes the share of active habits with a log dated day.
// With no active habits every field is zero.
func DailyRate(habits []model.Habit, day string) DayRate {
	out := DayRate{Date: day}
	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		out.Total++
		if h.CompletedOn(day) {
			out.Completed++
		}
	}
	if out.Total > 0 {
		out.Rate = percent(out.Completed, out.Total)
	}
	return out
}

// HabitStreak is the streak pair of a single habit.
type HabitStreak struct {
	ID      string
	Name    string
	Current int
	Best    int
}

// Streaks holds the aggregate perfect-day streaks plus per-habit streaks.
type Streaks struct {
	Current int
	Best    int
	Habits  []HabitStreak
}

// CalculateStreaks scans back from today. An incomplete today neither
// breaks nor extends the current streak.
func CalculateStreaks(habits []model.Habit, today time.Time) Streaks {
	var out Streaks
	out.Current, out.Best = scan(today, func(day string) (bool, bool) {
		r := DailyRate(habits, day)
		return r.Rate == 100, r.Total > 0
	})

	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		current, best := scan(today, func(day string) (bool, bool) {
			return h.CompletedOn(day), true
		})
		out.Habits = append(out.Habits, HabitStreak{ID: h.ID, Name: h.Name, Current: current, Best: best})
	}
	return out
}

// scan walks ScanDays days back from today. check reports whether a day is
// complete and whether it counts at all.
func scan(today time.Time, check func(day string) (complete, counted bool)) (current, best int) {
	run := 0
	open := true
	for i := 0; i < ScanDays; i++ {
		complete, counted := check(today.AddDate(0, 0, -i).Format(model.DateLayout))
		if !counted {
			continue
		}
		if complete {
			run++
			if open {
				current = run
			}
			if run > best {
				best = run
			}
			continue
		}
		if i == 0 {
			continue
		}
		run = 0
		open = false
	}
	return current, best
}

// Period is a statistics window in days; AllTime spans since habit creation.
type Period int

const (
	AllTime Period = 0
	Week    Period = 7
	Month   Period = 30
)

// ParsePeriod accepts "7", "30" or "all".
func ParsePeriod(raw string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "all", "":
		return AllTime, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || (n != int(Week) && n != int(Month)) {
		return 0, fmt.Errorf("invalid period %q, expected 7, 30 or all", raw)
	}
	return Period(n), nil
}

func (p Period) String() string {
	if p == AllTime {
		return "all"
	}
	return fmt.Sprintf("%dd", int(p))
}

// HabitStats is one habit's completion over a period.
type HabitStats struct {
	ID            string
	Name          string
	CompletedDays int
	TotalDays     int
	Rate          int
	Target        int
}

// PeriodStats computes per-habit completion over period ending at now,
// sorted by rate descending. Rates are capped at 100.
func PeriodStats(habits []model.Habit, period Period, now time.Time) []HabitStats {
	today := now.Format(model.DateLayout)
	var out []HabitStats
	for _, h := range habits {
		if !h.IsActive {
			continue
		}

		start := ""
		totalDays := int(period)
		if period == AllTime {
			totalDays = int(math.Ceil(now.Sub(h.CreatedAt).Hours() / 24))
		} else {
			start = now.AddDate(0, 0, -(int(period) - 1)).Format(model.DateLayout)
		}

		completed := 0
		for _, l := range h.Logs {
			if l.CompletedAt >= start && l.CompletedAt <= today {
				completed++
			}
		}

		rate := 0
		if totalDays > 0 {
			rate = percent(completed, totalDays)
		}
		out = append(out, HabitStats{
			ID:            h.ID,
			Name:          h.Name,
			CompletedDays: completed,
			TotalDays:     max(totalDays, 1),
			Rate:          min(rate, 100),
			Target:        h.TargetPerWeek,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Rate > out[j].Rate })
	return out
}

// WeekData is one Monday-start week of daily rates.
type WeekData struct {
	Label       string
	Days        []DayRate
	AverageRate int
}

// WeeklyChart returns the last four weeks, oldest first. The average only
// includes days with at least one active habit.
func WeeklyChart(habits []model.Habit, today time.Time) []WeekData {
	weeks := make([]WeekData, 0, 4)
	for i := 3; i >= 0; i-- {
		ref := today.AddDate(0, 0, -7*i)
		start := ref.AddDate(0, 0, -((int(ref.Weekday()) + 6) % 7))

		week := WeekData{Label: weekLabel(i)}
		sum, valid := 0, 0
		for d := 0; d < 7; d++ {
			r := DailyRate(habits, start.AddDate(0, 0, d).Format(model.DateLayout))
			week.Days = append(week.Days, r)
			if r.Total > 0 {
				sum += r.Rate
				valid++
			}
		}
		if valid > 0 {
			week.AverageRate = int(math.Round(float64(sum) / float64(valid)))
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func weekLabel(weeksAgo int) string {
	switch weeksAgo {
	case 0:
		return "Esta semana"
	case 1:
		return "Semana passada"
	default:
		return fmt.Sprintf("%d semanas atrás", weeksAgo)
	}
}

func percent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
