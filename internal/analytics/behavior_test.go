package analytics

import (
	"context"
	"testing"
	"time"

	"prize-rush/internal/db"
)

func TestParticipantBehaviorRepeatPurchasersOnly(t *testing.T) {
	svc, conn := newTestService(t)
	when := day("2026-03-15").Add(9 * time.Hour)

	// Participant 1: two paid games, one completion, one win.
	for i := 0; i < 2; i++ {
		seedEvent(t, conn, db.Event{
			EventType:     db.EventGameStart,
			ParticipantID: uintPtr(1),
			CreatedAt:     when.Add(time.Duration(i) * time.Hour),
		})
		seedEvent(t, conn, db.Event{
			EventType:     db.EventPaymentSuccess,
			ParticipantID: uintPtr(1),
			RevenueAmount: floatPtr(50),
			CreatedAt:     when.Add(time.Duration(i) * time.Hour),
		})
	}
	seedEvent(t, conn, db.Event{
		EventType:     db.EventGameComplete,
		ParticipantID: uintPtr(1),
		Properties:    completionJSON(90, 7),
		CreatedAt:     when.Add(2 * time.Hour),
	})
	seedEvent(t, conn, db.Event{
		EventType:     db.EventWinnerSelected,
		ParticipantID: uintPtr(1),
		CreatedAt:     when.Add(3 * time.Hour),
	})

	// Participant 2: a single paid game, filtered out.
	seedEvent(t, conn, db.Event{
		EventType:     db.EventPaymentSuccess,
		ParticipantID: uintPtr(2),
		RevenueAmount: floatPtr(500),
		CreatedAt:     when,
	})

	rollups, err := svc.ParticipantBehavior(context.Background(), day("2026-03-15"), day("2026-03-15"))
	if err != nil {
		t.Fatalf("participant behavior: %v", err)
	}
	if len(rollups) != 1 {
		t.Fatalf("expected only the repeat purchaser, got %+v", rollups)
	}
	r := rollups[0]
	if r.ParticipantID != 1 {
		t.Fatalf("participant = %d", r.ParticipantID)
	}
	if r.Participations != 2 || r.PaidParticipations != 2 || r.Completions != 1 || r.Wins != 1 {
		t.Fatalf("counters = %+v", r)
	}
	if r.TotalRevenue != 100 {
		t.Fatalf("total revenue = %v, want 100", r.TotalRevenue)
	}
	if r.AvgCompletionTime != 90 || r.AvgCorrectAnswers != 7 {
		t.Fatalf("completion averages = %+v", r)
	}
	if r.FirstParticipation == "" || r.LastParticipation == "" {
		t.Fatalf("participation timestamps missing: %+v", r)
	}
	if r.FirstParticipation > r.LastParticipation {
		t.Fatalf("first %q after last %q", r.FirstParticipation, r.LastParticipation)
	}
}

func TestParticipantBehaviorOrderedByRevenue(t *testing.T) {
	svc, conn := newTestService(t)
	when := day("2026-03-16").Add(time.Hour)

	pay := func(participant uint, amount float64, times int) {
		for i := 0; i < times; i++ {
			seedEvent(t, conn, db.Event{
				EventType:     db.EventPaymentSuccess,
				ParticipantID: uintPtr(participant),
				RevenueAmount: floatPtr(amount),
				CreatedAt:     when.Add(time.Duration(i) * time.Minute),
			})
		}
	}
	pay(1, 10, 2)
	pay(2, 100, 2)

	rollups, err := svc.ParticipantBehavior(context.Background(), day("2026-03-16"), day("2026-03-16"))
	if err != nil {
		t.Fatalf("participant behavior: %v", err)
	}
	if len(rollups) != 2 {
		t.Fatalf("expected both repeat purchasers, got %+v", rollups)
	}
	if rollups[0].ParticipantID != 2 || rollups[1].ParticipantID != 1 {
		t.Fatalf("not ordered by revenue: %+v", rollups)
	}
}
