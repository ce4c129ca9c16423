package model

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Frequency is the cadence a habit targets.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

var reminderTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// Habit is a recurring activity owned by a profile.
type Habit struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)"`
	UserID        string    `gorm:"index;type:varchar(36);not null"`
	Name          string    `gorm:"not null"`
	Description   *string
	Frequency     Frequency `gorm:"type:varchar(16);not null"`
	TargetPerWeek int       `gorm:"not null"`
	ReminderTime  *string   `gorm:"type:varchar(5);index"` // HH:MM
	IsActive      bool      `gorm:"not null"`
	CreatedAt     time.Time
	Logs          []HabitLog `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE"`
	Owner         *Profile   `gorm:"foreignKey:UserID"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

func (h *Habit) BeforeSave(tx *gorm.DB) error {
	h.Normalize()
	return h.Validate()
}

// Normalize applies the frequency invariants: daily habits always target every day.
func (h *Habit) Normalize() {
	if h.Frequency == "" {
		h.Frequency = FrequencyDaily
	}
	if h.Frequency == FrequencyDaily {
		h.TargetPerWeek = 7
	}
}

func (h *Habit) Validate() error {
	n := utf8.RuneCountInString(h.Name)
	if n == 0 {
		return fmt.Errorf("habit name is required")
	}
	if n > 100 {
		return fmt.Errorf("habit name too long (%d > 100)", n)
	}
	if h.Description != nil && utf8.RuneCountInString(*h.Description) > 500 {
		return fmt.Errorf("habit description too long")
	}
	switch h.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyCustom:
	default:
		return fmt.Errorf("invalid frequency %q", h.Frequency)
	}
	if h.TargetPerWeek < 1 || h.TargetPerWeek > 7 {
		return fmt.Errorf("target per week must be between 1 and 7, got %d", h.TargetPerWeek)
	}
	if h.ReminderTime != nil && !reminderTimePattern.MatchString(*h.ReminderTime) {
		return fmt.Errorf("invalid reminder time %q, expected HH:MM", *h.ReminderTime)
	}
	return nil
}

// CompletedOn reports whether any loaded log is dated day (YYYY-MM-DD).
func (h Habit) CompletedOn(day string) bool {
	for _, l := range h.Logs {
		if l.CompletedAt == day {
			return true
		}
	}
	return false
}

// HabitWithStatus is a habit plus its completion state for the current day.
// It is derived per request and never persisted.
type HabitWithStatus struct {
	ID               string
	Name             string
	IsCompletedToday bool
}

// WithStatus derives today's status for each habit, preserving input order.
func WithStatus(habits []Habit, today string) []HabitWithStatus {
	out := make([]HabitWithStatus, 0, len(habits))
	for _, h := range habits {
		out = append(out, HabitWithStatus{
			ID:               h.ID,
			Name:             h.Name,
			IsCompletedToday: h.CompletedOn(today),
		})
	}
	return out
}

// Pending returns the habits not yet completed today, in input order.
func Pending(habits []HabitWithStatus) []HabitWithStatus {
	var out []HabitWithStatus
	for _, h := range habits {
		if !h.IsCompletedToday {
			out = append(out, h)
		}
	}
	return out
}

// Completed returns the habits already completed today, in input order.
func Completed(habits []HabitWithStatus) []HabitWithStatus {
	var out []HabitWithStatus
	for _, h := range habits {
		if h.IsCompletedToday {
			out = append(out, h)
		}
	}
	return out
}
