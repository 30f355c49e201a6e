package analytics

import (
	"context"
	"fmt"
	"time"

	"prize-rush/internal/db"
)

// ReferralPoint is one day of referral activity.
type ReferralPoint struct {
	Date           string  `json:"date"`
	ReferralUses   int64   `json:"referral_uses"`
	UniqueReferees int64   `json:"unique_referees"`
	TotalDiscounts float64 `json:"total_discounts"`
	AvgDiscount    float64 `json:"avg_discount"`
}

// ReferralAnalytics aggregates referral_used events per day, including the
// discount amounts carried in their JSON payload.
func (s *Service) ReferralAnalytics(ctx context.Context, start, end time.Time) ([]ReferralPoint, error) {
	from, to := dayWindow(start, end)
	day := s.dateExpr("created_at")
	discount := s.jsonNumber("properties", "discount_amount")

	var points []ReferralPoint
	err := s.db.WithContext(ctx).
		Model(&db.Event{}).
		Select(fmt.Sprintf(`%s AS date,
			COUNT(*) AS referral_uses,
			COUNT(DISTINCT participant_id) AS unique_referees,
			COALESCE(SUM(%s), 0) AS total_discounts,
			COALESCE(AVG(%s), 0) AS avg_discount`, day, discount, discount)).
		Where("event_type = ?", db.EventReferralUsed).
		Where("created_at >= ? AND created_at < ?", from, to).
		Group(day).
		Order("date ASC").
		Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("referral analytics query: %w", err)
	}

	for i := range points {
		points[i].TotalDiscounts = round2(points[i].TotalDiscounts)
		points[i].AvgDiscount = round2(points[i].AvgDiscount)
	}
	return points, nil
}

// Referrer is one row of the referrer leaderboard.
type Referrer struct {
	ReferrerID           string  `json:"referrer_id"`
	ReferredParticipants int64   `json:"referred_participants"`
	PaidTransactions     int64   `json:"paid_transactions"`
	TotalRevenue         float64 `json:"total_revenue"`
}

// TopReferrers ranks referrers by the paid revenue their referees generated
// inside the window, descending, capped at limit (10 when limit <= 0). A
// referee counts once per referrer even when the referral code was applied
// multiple times.
func (s *Service) TopReferrers(ctx context.Context, start, end time.Time, limit int) ([]Referrer, error) {
	if limit <= 0 {
		limit = 10
	}
	from, to := dayWindow(start, end)
	referrer := s.jsonText("properties", "referrer_participant_id")

	var referrers []Referrer
	err := s.db.WithContext(ctx).
		Raw(fmt.Sprintf(`SELECT r.referrer_id AS referrer_id,
			COUNT(DISTINCT r.participant_id) AS referred_participants,
			COUNT(p.id) AS paid_transactions,
			COALESCE(SUM(p.revenue_amount), 0) AS total_revenue
		FROM (
			SELECT DISTINCT %s AS referrer_id, participant_id
			FROM events
			WHERE event_type = ?
			  AND participant_id IS NOT NULL
			  AND created_at >= ? AND created_at < ?
		) r
		LEFT JOIN events p
			ON p.event_type = ?
			AND p.participant_id = r.participant_id
			AND p.created_at >= ? AND p.created_at < ?
		WHERE r.referrer_id IS NOT NULL
		GROUP BY r.referrer_id
		ORDER BY total_revenue DESC
		LIMIT ?`, referrer),
			db.EventReferralUsed, from, to,
			db.EventPaymentSuccess, from, to,
			limit).
		Scan(&referrers).Error
	if err != nil {
		return nil, fmt.Errorf("top referrers query: %w", err)
	}

	for i := range referrers {
		referrers[i].TotalRevenue = round2(referrers[i].TotalRevenue)
	}
	return referrers, nil
}
