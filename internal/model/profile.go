package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the messaging identity of a user. Phone holds the channel
// address: a WhatsApp number or a Telegram chat id.
type Profile struct {
	ID               string  `gorm:"primaryKey;type:varchar(36)"`
	Phone            *string `gorm:"uniqueIndex"`
	MessagingEnabled bool    `gorm:"column:whatsapp_enabled;not null"`
	CreatedAt        time.Time
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Reachable reports whether outbound messages can be addressed to the profile.
func (p *Profile) Reachable() bool {
	return p != nil && p.MessagingEnabled && p.Phone != nil && *p.Phone != ""
}
