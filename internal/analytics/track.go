package analytics

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"prize-rush/internal/db"
	"prize-rush/internal/metrics"
)

// RequestContext carries the request metadata for a tracked event. Callers
// pass it explicitly; the tracker never reads ambient request state.
type RequestContext struct {
	SessionID string
	IPAddress string
	UserAgent string
}

// Record is the loosely-optional input of TrackEvent. Every field may be left
// zero; the tracker fills server-side defaults (currency, session id,
// timestamp).
type Record struct {
	ParticipantID    *uint
	RoundID          *uint
	GameID           *uint
	RevenueAmount    *float64
	RevenueCurrency  string
	ConversionSource string
	Properties       Properties
	Request          RequestContext
}

// TrackEvent appends one event row. It is best-effort: any failure is logged
// and reported as false, never as an error, so tracking can never abort the
// caller's primary workflow.
func (s *Service) TrackEvent(ctx context.Context, eventType string, rec Record) bool {
	row := db.Event{
		EventType:        eventType,
		ParticipantID:    rec.ParticipantID,
		RoundID:          rec.RoundID,
		GameID:           rec.GameID,
		RevenueAmount:    rec.RevenueAmount,
		RevenueCurrency:  rec.RevenueCurrency,
		ConversionSource: rec.ConversionSource,
		SessionID:        rec.Request.SessionID,
		IPAddress:        rec.Request.IPAddress,
		UserAgent:        rec.Request.UserAgent,
		CreatedAt:        s.now().UTC(),
	}
	if row.RevenueCurrency == "" {
		row.RevenueCurrency = s.homeCurrency
	}
	if row.SessionID == "" {
		row.SessionID = uuid.NewString()
	}
	if rec.Properties != nil {
		raw, err := json.Marshal(rec.Properties)
		if err != nil {
			s.log.Error("failed to encode event properties",
				zap.String("event_type", eventType),
				zap.Error(err))
			s.metrics.IncEventsTracked(eventType, metrics.StatusFailure)
			return false
		}
		row.Properties = datatypes.JSON(raw)
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		s.log.Error("failed to track event",
			zap.String("event_type", eventType),
			zap.Error(err))
		s.metrics.IncEventsTracked(eventType, metrics.StatusFailure)
		return false
	}
	s.metrics.IncEventsTracked(eventType, metrics.StatusSuccess)
	return true
}

func (s *Service) TrackGameStart(ctx context.Context, participantID, gameID uint, roundID *uint, req RequestContext) bool {
	return s.TrackEvent(ctx, db.EventGameStart, Record{
		ParticipantID: &participantID,
		GameID:        &gameID,
		RoundID:       roundID,
		Request:       req,
	})
}

func (s *Service) TrackPaymentAttempt(ctx context.Context, participantID, gameID uint, amount float64, currency string, req RequestContext) bool {
	return s.TrackEvent(ctx, db.EventPaymentAttempt, Record{
		ParticipantID:   &participantID,
		GameID:          &gameID,
		RevenueAmount:   &amount,
		RevenueCurrency: currency,
		Request:         req,
	})
}

func (s *Service) TrackPaymentSuccess(ctx context.Context, participantID, gameID uint, amount float64, currency, source string, req RequestContext) bool {
	return s.TrackEvent(ctx, db.EventPaymentSuccess, Record{
		ParticipantID:    &participantID,
		GameID:           &gameID,
		RevenueAmount:    &amount,
		RevenueCurrency:  currency,
		ConversionSource: source,
		Request:          req,
	})
}

func (s *Service) TrackGameComplete(ctx context.Context, participantID, gameID uint, completionTime float64, correctAnswers int, req RequestContext) bool {
	return s.TrackEvent(ctx, db.EventGameComplete, Record{
		ParticipantID: &participantID,
		GameID:        &gameID,
		Properties: CompletionProperties{
			CompletionTime: completionTime,
			CorrectAnswers: correctAnswers,
		},
		Request: req,
	})
}

func (s *Service) TrackWinnerSelected(ctx context.Context, participantID, gameID, roundID uint, prizeName string, req RequestContext) bool {
	return s.TrackEvent(ctx, db.EventWinnerSelected, Record{
		ParticipantID: &participantID,
		GameID:        &gameID,
		RoundID:       &roundID,
		Properties:    PrizeProperties{PrizeName: prizeName},
		Request:       req,
	})
}

func (s *Service) TrackReferralUsed(ctx context.Context, participantID, referrerID uint, discount float64, req RequestContext) bool {
	return s.TrackEvent(ctx, db.EventReferralUsed, Record{
		ParticipantID: &participantID,
		Properties: ReferralProperties{
			ReferrerParticipantID: referrerID,
			DiscountAmount:        discount,
		},
		Request: req,
	})
}
