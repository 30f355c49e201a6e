// Package analytics records business events for the promotion platform and
// answers aggregate questions about them: revenue, conversion funnels,
// referral attribution, churn and realtime dashboard figures. Tracking is
// best-effort and never fails the caller's transaction; reporting errors
// propagate.
package analytics

import (
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"prize-rush/internal/config"
	"prize-rush/internal/metrics"
)

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	metrics      *metrics.Metrics
	homeCurrency string

	// now is overridable for deterministic tests.
	now func() time.Time
}

func New(conn *gorm.DB, log *zap.Logger, m *metrics.Metrics, cfg config.Config) *Service {
	return &Service{
		db:           conn,
		log:          log,
		metrics:      m,
		homeCurrency: cfg.HomeCurrency,
		now:          time.Now,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// rate returns numerator/denominator scaled to a percentage, 0 when the
// denominator is 0, rounded to 2 decimals.
func rate(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return round2(numerator / denominator * 100)
}

// ratio returns numerator/denominator, 0 when the denominator is 0, rounded
// to 2 decimals.
func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return round2(numerator / denominator)
}

// dayWindow widens a pair of dates to a half-open timestamp range covering
// every instant of both days.
func dayWindow(start, end time.Time) (time.Time, time.Time) {
	from := startOfDay(start)
	to := startOfDay(end).AddDate(0, 0, 1)
	return from, to
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
