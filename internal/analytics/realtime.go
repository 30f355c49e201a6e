package analytics

import (
	"context"
	"fmt"

	"prize-rush/internal/db"
)

// RealtimeSnapshot is the live dashboard snapshot.
type RealtimeSnapshot struct {
	TodayStarts       int64   `json:"today_starts"`
	TodayPayments     int64   `json:"today_payments"`
	TodayRevenue      float64 `json:"today_revenue"`
	TodayParticipants int64   `json:"today_participants"`
	ActiveRounds      int64   `json:"active_rounds"`
}

// RealTimeMetrics reports today's headline figures plus the count of
// rounds currently in active status.
func (s *Service) RealTimeMetrics(ctx context.Context) (*RealtimeSnapshot, error) {
	today := startOfDay(s.now())
	tomorrow := today.AddDate(0, 0, 1)

	var row struct {
		TodayStarts       int64
		TodayPayments     int64
		TodayRevenue      float64
		TodayParticipants int64
	}
	err := s.db.WithContext(ctx).
		Model(&db.Event{}).
		Select(fmt.Sprintf(`COALESCE(SUM(CASE WHEN event_type = '%[1]s' THEN 1 ELSE 0 END), 0) AS today_starts,
			COALESCE(SUM(CASE WHEN event_type = '%[2]s' THEN 1 ELSE 0 END), 0) AS today_payments,
			COALESCE(SUM(CASE WHEN event_type = '%[2]s' THEN revenue_amount ELSE 0 END), 0) AS today_revenue,
			COUNT(DISTINCT participant_id) AS today_participants`,
			db.EventGameStart, db.EventPaymentSuccess)).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("realtime metrics query: %w", err)
	}

	var activeRounds int64
	err = s.db.WithContext(ctx).
		Model(&db.Round{}).
		Where("status = ?", db.RoundStatusActive).
		Count(&activeRounds).Error
	if err != nil {
		return nil, fmt.Errorf("active rounds query: %w", err)
	}

	return &RealtimeSnapshot{
		TodayStarts:       row.TodayStarts,
		TodayPayments:     row.TodayPayments,
		TodayRevenue:      round2(row.TodayRevenue),
		TodayParticipants: row.TodayParticipants,
		ActiveRounds:      activeRounds,
	}, nil
}
