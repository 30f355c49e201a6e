package analytics

import (
	"context"
	"fmt"
	"time"

	"prize-rush/internal/db"
)

// Churn buckets in their fixed reporting order.
const (
	ChurnActiveWeek  = "active_week"
	ChurnActiveMonth = "active_month"
	ChurnDormant     = "dormant"
	ChurnChurned     = "churned"
)

const tsLayout = "2006-01-02 15:04:05"

// ChurnBucket groups participants by recency of their last paid activity.
type ChurnBucket struct {
	UserStatus               string  `json:"user_status"`
	UserCount                int64   `json:"user_count"`
	TotalValue               float64 `json:"total_value"`
	AvgDaysSinceLastActivity float64 `json:"avg_days_since_last_activity"`
}

// ChurnAnalysis buckets every paying participant since start by whole days
// elapsed since their most recent successful payment: up to 7 days
// active_week, up to 30 active_month, up to 90 dormant, beyond that churned.
// All four buckets are returned in that order even when empty.
func (s *Service) ChurnAnalysis(ctx context.Context, start time.Time) ([]ChurnBucket, error) {
	type paidRow struct {
		ParticipantID uint
		LastPaidAt    string
		TotalValue    float64
	}
	var rows []paidRow
	err := s.db.WithContext(ctx).
		Model(&db.Event{}).
		Select(fmt.Sprintf(`participant_id,
			%s AS last_paid_at,
			COALESCE(SUM(revenue_amount), 0) AS total_value`, s.tsExpr("MAX(created_at)"))).
		Where("event_type = ? AND participant_id IS NOT NULL", db.EventPaymentSuccess).
		Where("created_at >= ?", startOfDay(start)).
		Group("participant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("churn analysis query: %w", err)
	}

	now := s.now().UTC()
	buckets := map[string]*ChurnBucket{
		ChurnActiveWeek:  {UserStatus: ChurnActiveWeek},
		ChurnActiveMonth: {UserStatus: ChurnActiveMonth},
		ChurnDormant:     {UserStatus: ChurnDormant},
		ChurnChurned:     {UserStatus: ChurnChurned},
	}
	daysTotal := map[string]float64{}
	for _, row := range rows {
		lastPaid, err := time.Parse(tsLayout, row.LastPaidAt)
		if err != nil {
			return nil, fmt.Errorf("churn analysis: parse last activity %q: %w", row.LastPaidAt, err)
		}
		days := int(now.Sub(lastPaid).Hours() / 24)
		var status string
		switch {
		case days <= 7:
			status = ChurnActiveWeek
		case days <= 30:
			status = ChurnActiveMonth
		case days <= 90:
			status = ChurnDormant
		default:
			status = ChurnChurned
		}
		bucket := buckets[status]
		bucket.UserCount++
		bucket.TotalValue += row.TotalValue
		daysTotal[status] += float64(days)
	}

	ordered := []string{ChurnActiveWeek, ChurnActiveMonth, ChurnDormant, ChurnChurned}
	result := make([]ChurnBucket, 0, len(ordered))
	for _, status := range ordered {
		bucket := buckets[status]
		bucket.TotalValue = round2(bucket.TotalValue)
		if bucket.UserCount > 0 {
			bucket.AvgDaysSinceLastActivity = round2(daysTotal[status] / float64(bucket.UserCount))
		}
		result = append(result, *bucket)
	}
	return result, nil
}
