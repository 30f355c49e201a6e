package analytics

import (
	"context"
	"fmt"
	"time"

	"prize-rush/internal/db"
)

// ParticipantRollup aggregates one participant's activity inside a window.
type ParticipantRollup struct {
	ParticipantID      uint    `json:"participant_id"`
	Participations     int64   `json:"participations"`
	PaidParticipations int64   `json:"paid_participations"`
	Completions        int64   `json:"completions"`
	Wins               int64   `json:"wins"`
	TotalRevenue       float64 `json:"total_revenue"`
	AvgCompletionTime  float64 `json:"avg_completion_time"`
	AvgCorrectAnswers  float64 `json:"avg_correct_answers"`
	FirstParticipation string  `json:"first_participation"`
	LastParticipation  string  `json:"last_participation"`
}

// ParticipantBehavior rolls up per-participant activity, limited to repeat
// purchasers (more than one paid participation), ordered by total revenue
// descending, capped at 100 rows.
func (s *Service) ParticipantBehavior(ctx context.Context, start, end time.Time) ([]ParticipantRollup, error) {
	from, to := dayWindow(start, end)
	completionTime := s.jsonNumber("properties", "completion_time")
	correctAnswers := s.jsonNumber("properties", "correct_answers")

	type rollupRow struct {
		ParticipantID      uint
		Participations     int64
		PaidParticipations int64
		Completions        int64
		Wins               int64
		TotalRevenue       float64
		AvgCompletionTime  *float64
		AvgCorrectAnswers  *float64
		FirstParticipation string
		LastParticipation  string
	}
	var rows []rollupRow
	err := s.db.WithContext(ctx).
		Model(&db.Event{}).
		Select(fmt.Sprintf(`participant_id,
			SUM(CASE WHEN event_type = '%[1]s' THEN 1 ELSE 0 END) AS participations,
			SUM(CASE WHEN event_type = '%[2]s' THEN 1 ELSE 0 END) AS paid_participations,
			SUM(CASE WHEN event_type = '%[3]s' THEN 1 ELSE 0 END) AS completions,
			SUM(CASE WHEN event_type = '%[4]s' THEN 1 ELSE 0 END) AS wins,
			COALESCE(SUM(CASE WHEN event_type = '%[2]s' THEN revenue_amount ELSE 0 END), 0) AS total_revenue,
			AVG(CASE WHEN event_type = '%[3]s' THEN %[5]s END) AS avg_completion_time,
			AVG(CASE WHEN event_type = '%[3]s' THEN %[6]s END) AS avg_correct_answers,
			%[7]s AS first_participation,
			%[8]s AS last_participation`,
			db.EventGameStart, db.EventPaymentSuccess, db.EventGameComplete,
			db.EventWinnerSelected, completionTime, correctAnswers,
			s.tsExpr("MIN(created_at)"), s.tsExpr("MAX(created_at)"))).
		Where("participant_id IS NOT NULL").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("participant_id").
		Having(fmt.Sprintf("SUM(CASE WHEN event_type = '%s' THEN 1 ELSE 0 END) > 1", db.EventPaymentSuccess)).
		Order("total_revenue DESC").
		Limit(100).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("participant behavior query: %w", err)
	}

	rollups := make([]ParticipantRollup, 0, len(rows))
	for _, row := range rows {
		rollup := ParticipantRollup{
			ParticipantID:      row.ParticipantID,
			Participations:     row.Participations,
			PaidParticipations: row.PaidParticipations,
			Completions:        row.Completions,
			Wins:               row.Wins,
			TotalRevenue:       round2(row.TotalRevenue),
			FirstParticipation: row.FirstParticipation,
			LastParticipation:  row.LastParticipation,
		}
		if row.AvgCompletionTime != nil {
			rollup.AvgCompletionTime = round2(*row.AvgCompletionTime)
		}
		if row.AvgCorrectAnswers != nil {
			rollup.AvgCorrectAnswers = round2(*row.AvgCorrectAnswers)
		}
		rollups = append(rollups, rollup)
	}
	return rollups, nil
}
