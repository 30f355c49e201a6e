package analytics

import (
	"context"
	"fmt"
	"time"

	"prize-rush/internal/db"
)

// funnelSteps is the fixed step order of the conversion funnel.
var funnelSteps = []string{
	db.EventGameStart,
	db.EventPaymentAttempt,
	db.EventPaymentSuccess,
	db.EventGameComplete,
	db.EventWinnerSelected,
}

// FunnelStep is one step of the conversion funnel.
type FunnelStep struct {
	Step               string  `json:"step"`
	EventCount         int64   `json:"event_count"`
	UniqueParticipants int64   `json:"unique_participants"`
	UniqueSessions     int64   `json:"unique_sessions"`
	ConversionRate     float64 `json:"conversion_rate"`
}

// ConversionFunnel reports the five funnel steps in their fixed order. The
// conversion rate of a step is its unique participants relative to the
// previous step's; the first step is pinned at 100. A previous step with zero
// participants also yields 100 so an empty funnel never divides by zero.
func (s *Service) ConversionFunnel(ctx context.Context, start, end time.Time, gameID *uint) ([]FunnelStep, error) {
	from, to := dayWindow(start, end)

	query := s.db.WithContext(ctx).
		Model(&db.Event{}).
		Select(`event_type AS step,
			COUNT(*) AS event_count,
			COUNT(DISTINCT participant_id) AS unique_participants,
			COUNT(DISTINCT session_id) AS unique_sessions`).
		Where("event_type IN ?", funnelSteps).
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("event_type")
	if gameID != nil {
		query = query.Where("game_id = ?", *gameID)
	}

	var rows []FunnelStep
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("conversion funnel query: %w", err)
	}

	byStep := make(map[string]FunnelStep, len(rows))
	for _, row := range rows {
		byStep[row.Step] = row
	}

	steps := make([]FunnelStep, 0, len(funnelSteps))
	for i, name := range funnelSteps {
		step := byStep[name]
		step.Step = name
		if i == 0 {
			step.ConversionRate = 100.00
		} else {
			previous := steps[i-1].UniqueParticipants
			if previous == 0 {
				step.ConversionRate = 100.00
			} else {
				step.ConversionRate = round2(float64(step.UniqueParticipants) / float64(previous) * 100)
			}
		}
		steps = append(steps, step)
	}
	return steps, nil
}
