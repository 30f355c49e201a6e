package analytics

import (
	"context"
	"fmt"
	"time"

	"prize-rush/internal/db"
)

// PerformanceSummary is the platform-wide summary for a window.
type PerformanceSummary struct {
	TotalGameStarts          int64   `json:"total_game_starts"`
	TotalPayments            int64   `json:"total_payments"`
	TotalRevenue             float64 `json:"total_revenue"`
	UniqueParticipants       int64   `json:"unique_participants"`
	UniqueSessions           int64   `json:"unique_sessions"`
	ConversionRate           float64 `json:"conversion_rate"`
	AverageRevenuePerUser    float64 `json:"average_revenue_per_user"`
	AverageRevenuePerSession float64 `json:"average_revenue_per_session"`
}

// PerformanceMetrics reports platform totals and derived ratios for the
// window. Every ratio is 0, not an error, when its denominator is 0.
func (s *Service) PerformanceMetrics(ctx context.Context, start, end time.Time) (*PerformanceSummary, error) {
	from, to := dayWindow(start, end)

	var row struct {
		TotalGameStarts    int64
		TotalPayments      int64
		TotalRevenue       float64
		UniqueParticipants int64
		UniqueSessions     int64
	}
	err := s.db.WithContext(ctx).
		Model(&db.Event{}).
		Select(fmt.Sprintf(`COALESCE(SUM(CASE WHEN event_type = '%[1]s' THEN 1 ELSE 0 END), 0) AS total_game_starts,
			COALESCE(SUM(CASE WHEN event_type = '%[2]s' THEN 1 ELSE 0 END), 0) AS total_payments,
			COALESCE(SUM(CASE WHEN event_type = '%[2]s' THEN revenue_amount ELSE 0 END), 0) AS total_revenue,
			COUNT(DISTINCT participant_id) AS unique_participants,
			COUNT(DISTINCT session_id) AS unique_sessions`,
			db.EventGameStart, db.EventPaymentSuccess)).
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("performance metrics query: %w", err)
	}

	return &PerformanceSummary{
		TotalGameStarts:          row.TotalGameStarts,
		TotalPayments:            row.TotalPayments,
		TotalRevenue:             round2(row.TotalRevenue),
		UniqueParticipants:       row.UniqueParticipants,
		UniqueSessions:           row.UniqueSessions,
		ConversionRate:           rate(float64(row.TotalPayments), float64(row.TotalGameStarts)),
		AverageRevenuePerUser:    ratio(row.TotalRevenue, float64(row.UniqueParticipants)),
		AverageRevenuePerSession: ratio(row.TotalRevenue, float64(row.UniqueSessions)),
	}, nil
}

// GameStats is one active game's performance row.
type GameStats struct {
	GameID                uint    `json:"game_id"`
	GameName              string  `json:"game_name"`
	EntryFee              float64 `json:"entry_fee"`
	GameStarts            int64   `json:"game_starts"`
	Payments              int64   `json:"payments"`
	TotalRevenue          float64 `json:"total_revenue"`
	UniqueParticipants    int64   `json:"unique_participants"`
	AvgCompletionTime     float64 `json:"avg_completion_time"`
	ConversionRate        float64 `json:"conversion_rate"`
	RevenuePerParticipant float64 `json:"revenue_per_participant"`
}

// GamePerformance reports per-game figures for games in active status,
// ordered by revenue descending. Games with no events in the window still
// appear with zeroed counters.
func (s *Service) GamePerformance(ctx context.Context, start, end time.Time) ([]GameStats, error) {
	from, to := dayWindow(start, end)
	completionTime := s.jsonNumber("e.properties", "completion_time")

	type gameRow struct {
		GameID             uint
		GameName           string
		EntryFee           float64
		GameStarts         int64
		Payments           int64
		TotalRevenue       float64
		UniqueParticipants int64
		AvgCompletionTime  *float64
	}
	var rows []gameRow
	err := s.db.WithContext(ctx).
		Raw(fmt.Sprintf(`SELECT g.id AS game_id,
			g.name AS game_name,
			g.entry_fee AS entry_fee,
			SUM(CASE WHEN e.event_type = '%[1]s' THEN 1 ELSE 0 END) AS game_starts,
			SUM(CASE WHEN e.event_type = '%[2]s' THEN 1 ELSE 0 END) AS payments,
			COALESCE(SUM(CASE WHEN e.event_type = '%[2]s' THEN e.revenue_amount ELSE 0 END), 0) AS total_revenue,
			COUNT(DISTINCT e.participant_id) AS unique_participants,
			AVG(CASE WHEN e.event_type = '%[3]s' THEN %[4]s END) AS avg_completion_time
		FROM games g
		LEFT JOIN events e
			ON e.game_id = g.id
			AND e.created_at >= ? AND e.created_at < ?
		WHERE g.status = ?
		GROUP BY g.id, g.name, g.entry_fee
		ORDER BY total_revenue DESC`,
			db.EventGameStart, db.EventPaymentSuccess, db.EventGameComplete, completionTime),
			from, to, db.GameStatusActive).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("game performance query: %w", err)
	}

	stats := make([]GameStats, 0, len(rows))
	for _, row := range rows {
		stat := GameStats{
			GameID:                row.GameID,
			GameName:              row.GameName,
			EntryFee:              row.EntryFee,
			GameStarts:            row.GameStarts,
			Payments:              row.Payments,
			TotalRevenue:          round2(row.TotalRevenue),
			UniqueParticipants:    row.UniqueParticipants,
			ConversionRate:        rate(float64(row.Payments), float64(row.GameStarts)),
			RevenuePerParticipant: ratio(row.TotalRevenue, float64(row.UniqueParticipants)),
		}
		if row.AvgCompletionTime != nil {
			stat.AvgCompletionTime = round2(*row.AvgCompletionTime)
		}
		stats = append(stats, stat)
	}
	return stats, nil
}
