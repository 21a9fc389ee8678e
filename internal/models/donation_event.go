package models

import "time"

// DonationEvent is one entry in a donation's append-only history log.
// There is no update or delete path for events anywhere in the codebase.
type DonationEvent struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	DonationID uint      `gorm:"not null;index" json:"-"`
	Time       time.Time `gorm:"not null" json:"time"`
	Event      string    `gorm:"not null" json:"event"`
}
