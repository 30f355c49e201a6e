package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"prize-rush/internal/db"
)

// WhatsAppConversionPoint is one day of the WhatsApp campaign report.
type WhatsAppConversionPoint struct {
	Date              string  `json:"date"`
	WhatsAppSent      int64   `json:"whatsapp_sent"`
	Conversions       int64   `json:"conversions"`
	ConversionRate    float64 `json:"conversion_rate"`
	ConversionRevenue float64 `json:"conversion_revenue"`
	RevenuePerMessage float64 `json:"revenue_per_message"`
}

// WhatsAppConversions reports per-day message volume against same-day
// conversions: successful payments by participants who received a WhatsApp
// message that calendar day. Days with no messages report both derived rates
// as 0 regardless of revenue.
func (s *Service) WhatsAppConversions(ctx context.Context, start, end time.Time) ([]WhatsAppConversionPoint, error) {
	from, to := dayWindow(start, end)
	day := s.dateExpr("created_at")

	type sentRow struct {
		Date string
		Sent int64
	}
	var sent []sentRow
	err := s.db.WithContext(ctx).
		Model(&db.Event{}).
		Select(fmt.Sprintf("%s AS date, COUNT(*) AS sent", day)).
		Where("event_type = ?", db.EventWhatsAppSent).
		Where("created_at >= ? AND created_at < ?", from, to).
		Group(day).
		Scan(&sent).Error
	if err != nil {
		return nil, fmt.Errorf("whatsapp sent query: %w", err)
	}

	type conversionRow struct {
		Date        string
		Conversions int64
		Revenue     float64
	}
	var conversions []conversionRow
	err = s.db.WithContext(ctx).
		Raw(fmt.Sprintf(`SELECT %s AS date,
			COUNT(*) AS conversions,
			COALESCE(SUM(p.revenue_amount), 0) AS revenue
		FROM events p
		WHERE p.event_type = ?
		  AND p.created_at >= ? AND p.created_at < ?
		  AND p.participant_id IS NOT NULL
		  AND EXISTS (
			SELECT 1 FROM events w
			WHERE w.event_type = ?
			  AND w.participant_id = p.participant_id
			  AND %s = %s
		  )
		GROUP BY %s`,
			s.dateExpr("p.created_at"),
			s.dateExpr("w.created_at"), s.dateExpr("p.created_at"),
			s.dateExpr("p.created_at")),
			db.EventPaymentSuccess, from, to, db.EventWhatsAppSent).
		Scan(&conversions).Error
	if err != nil {
		return nil, fmt.Errorf("whatsapp conversions query: %w", err)
	}

	byDate := make(map[string]*WhatsAppConversionPoint)
	point := func(date string) *WhatsAppConversionPoint {
		if p, ok := byDate[date]; ok {
			return p
		}
		p := &WhatsAppConversionPoint{Date: date}
		byDate[date] = p
		return p
	}
	for _, row := range sent {
		point(row.Date).WhatsAppSent = row.Sent
	}
	for _, row := range conversions {
		p := point(row.Date)
		p.Conversions = row.Conversions
		p.ConversionRevenue = round2(row.Revenue)
	}

	points := make([]WhatsAppConversionPoint, 0, len(byDate))
	for _, p := range byDate {
		p.ConversionRate = rate(float64(p.Conversions), float64(p.WhatsAppSent))
		p.RevenuePerMessage = ratio(p.ConversionRevenue, float64(p.WhatsAppSent))
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}
