package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogSource tags where a completion log originated.
type LogSource string

const (
	SourceWeb      LogSource = "web"
	SourceWhatsApp LogSource = "whatsapp"
	SourceTelegram LogSource = "telegram"
)

// DateLayout is the calendar-day format stored in HabitLog.CompletedAt.
const DateLayout = "2006-01-02"

// HabitLog records that a habit was performed on a calendar day.
// The (habit_id, completed_at) pair is unique.
type HabitLog struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	HabitID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_habit_day"`
	CompletedAt string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_habit_day"`
	Source      LogSource `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time
}

func (l *HabitLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Source == "" {
		l.Source = SourceWeb
	}
	return nil
}

// Day formats t as a calendar day in loc.
func Day(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}
