package analytics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"prize-rush/internal/db"
)

// ExportEvents returns the raw rows of one event type inside the window,
// ascending by timestamp. The caller serializes them, typically with
// CSVHeader and CSVRecord.
func (s *Service) ExportEvents(ctx context.Context, eventType string, start, end time.Time) ([]db.Event, error) {
	from, to := dayWindow(start, end)

	var events []db.Event
	err := s.db.WithContext(ctx).
		Where("event_type = ?", eventType).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("export events query: %w", err)
	}
	return events, nil
}

// CSVHeader is the fixed export column order.
func CSVHeader() []string {
	return []string{
		"event_type",
		"participant_id",
		"round_id",
		"game_id",
		"revenue_amount",
		"revenue_currency",
		"conversion_source",
		"session_id",
		"ip_address",
		"user_agent",
		"created_at",
	}
}

// CSVRecord renders one event row in the CSVHeader column order. Absent
// optional fields render as empty cells.
func CSVRecord(e db.Event) []string {
	return []string{
		e.EventType,
		uintCell(e.ParticipantID),
		uintCell(e.RoundID),
		uintCell(e.GameID),
		floatCell(e.RevenueAmount),
		e.RevenueCurrency,
		e.ConversionSource,
		e.SessionID,
		e.IPAddress,
		e.UserAgent,
		e.CreatedAt.UTC().Format(tsLayout),
	}
}

func uintCell(v *uint) string {
	if v == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*v), 10)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
