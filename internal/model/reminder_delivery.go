package model

import "time"

// ReminderDelivery marks a reminder as claimed for one habit and hour window.
type ReminderDelivery struct {
	ID        uint   `gorm:"primaryKey"`
	HabitID   string `gorm:"type:varchar(36);not null;uniqueIndex:idx_delivery_window"`
	Window    string `gorm:"column:window_key;type:varchar(16);not null;uniqueIndex:idx_delivery_window"` // 2006-01-02T15
	CreatedAt time.Time
}
