package analytics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"prize-rush/internal/db"
)

// DefaultRetentionDays is the retention window applied when the caller
// passes a non-positive value.
const DefaultRetentionDays = 365

// CleanupOldEvents deletes event rows older than retentionDays and returns
// the number of rows removed. The deletion targets only immutable old rows,
// so it is safe to run alongside tracking and reporting.
func (s *Service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	cutoff := s.now().UTC().AddDate(0, 0, -retentionDays)

	res := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&db.Event{})
	if res.Error != nil {
		return 0, fmt.Errorf("cleanup old events: %w", res.Error)
	}

	s.metrics.AddEventsDeleted(float64(res.RowsAffected))
	s.log.Info("retention cleanup complete",
		zap.Int("retention_days", retentionDays),
		zap.Time("cutoff", cutoff),
		zap.Int64("deleted", res.RowsAffected))
	return res.RowsAffected, nil
}
