package analytics

import (
	"context"
	"fmt"
	"time"

	"prize-rush/internal/db"
)

// RevenuePoint is one period/currency cell of the revenue report.
type RevenuePoint struct {
	Period             string  `json:"period"`
	TransactionCount   int64   `json:"transaction_count"`
	TotalRevenue       float64 `json:"total_revenue"`
	AverageRevenue     float64 `json:"average_revenue"`
	UniqueParticipants int64   `json:"unique_participants"`
	Currency           string  `json:"currency"`
}

// RevenueAnalytics aggregates successful payments by truncated period and
// currency. groupBy accepts day, week, month or year; anything else falls
// back to day. Periods are returned ascending.
func (s *Service) RevenueAnalytics(ctx context.Context, start, end time.Time, groupBy string) ([]RevenuePoint, error) {
	from, to := dayWindow(start, end)
	period := s.periodExpr("created_at", groupBy)

	var points []RevenuePoint
	err := s.db.WithContext(ctx).
		Model(&db.Event{}).
		Select(fmt.Sprintf(`%s AS period,
			revenue_currency AS currency,
			COUNT(*) AS transaction_count,
			SUM(revenue_amount) AS total_revenue,
			AVG(revenue_amount) AS average_revenue,
			COUNT(DISTINCT participant_id) AS unique_participants`, period)).
		Where("event_type = ? AND revenue_amount IS NOT NULL", db.EventPaymentSuccess).
		Where("created_at >= ? AND created_at < ?", from, to).
		Group(fmt.Sprintf("%s, revenue_currency", period)).
		Order("period ASC, currency ASC").
		Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("revenue analytics query: %w", err)
	}

	for i := range points {
		points[i].TotalRevenue = round2(points[i].TotalRevenue)
		points[i].AverageRevenue = round2(points[i].AverageRevenue)
	}
	return points, nil
}
