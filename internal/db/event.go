package db

import (
	"time"

	"gorm.io/datatypes"
)

// Event is one row of the append-only tracking log. Rows are written once by
// the tracker, read by the reporting queries, and removed only by the
// retention janitor. Participant, round and game ids reference entities owned
// by other services; no foreign keys are enforced here.
type Event struct {
	ID               uint           `gorm:"primaryKey"`
	EventType        string         `gorm:"size:64;not null;index"`
	ParticipantID    *uint          `gorm:"index"`
	RoundID          *uint          `gorm:"index"`
	GameID           *uint          `gorm:"index"`
	RevenueAmount    *float64       `gorm:"type:numeric(12,2)"`
	RevenueCurrency  string         `gorm:"size:8"`
	ConversionSource string         `gorm:"size:128"`
	Properties       datatypes.JSON `gorm:"type:jsonb"`
	SessionID        string         `gorm:"size:64;index"`
	IPAddress        string         `gorm:"size:64"`
	UserAgent        string         `gorm:"size:255"`
	CreatedAt        time.Time      `gorm:"not null;index"`
}

// Tracked event types.
const (
	EventGameStart      = "game_start"
	EventPaymentAttempt = "payment_attempt"
	EventPaymentSuccess = "payment_success"
	EventPaymentFailure = "payment_failure"
	EventGameComplete   = "game_complete"
	EventWinnerSelected = "winner_selected"
	EventClaimInitiated = "claim_initiated"
	EventPrizeShipped   = "prize_shipped"
	EventWhatsAppSent   = "whatsapp_sent"
	EventEmailSent      = "email_sent"
	EventReferralUsed   = "referral_used"
)
