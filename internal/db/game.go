package db

import "time"

// Game statuses as written by the game service.
const (
	GameStatusActive   = "active"
	GameStatusPaused   = "paused"
	GameStatusArchived = "archived"
)

type Game struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:128;not null"`
	Status    string    `gorm:"size:32;not null;index"`
	EntryFee  float64   `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
