package analytics

import (
	"context"
	"testing"
	"time"

	"prize-rush/internal/db"
)

func TestRealTimeMetricsTodayOnly(t *testing.T) {
	svc, conn := newTestService(t)
	now := day("2026-08-30").Add(14 * time.Hour)
	svc.now = func() time.Time { return now }

	seedEvent(t, conn, db.Event{
		EventType:     db.EventGameStart,
		ParticipantID: uintPtr(1),
		CreatedAt:     now.Add(-time.Hour),
	})
	seedEvent(t, conn, db.Event{
		EventType:     db.EventPaymentSuccess,
		ParticipantID: uintPtr(1),
		RevenueAmount: floatPtr(25),
		CreatedAt:     now.Add(-30 * time.Minute),
	})
	// Yesterday's activity is excluded.
	seedEvent(t, conn, db.Event{
		EventType:     db.EventGameStart,
		ParticipantID: uintPtr(2),
		CreatedAt:     now.AddDate(0, 0, -1),
	})

	rounds := []db.Round{
		{GameID: 1, Number: 1, Status: db.RoundStatusActive},
		{GameID: 1, Number: 2, Status: db.RoundStatusFinished},
		{GameID: 2, Number: 1, Status: db.RoundStatusActive},
	}
	for i := range rounds {
		if err := conn.Create(&rounds[i]).Error; err != nil {
			t.Fatalf("seed round: %v", err)
		}
	}

	snapshot, err := svc.RealTimeMetrics(context.Background())
	if err != nil {
		t.Fatalf("realtime metrics: %v", err)
	}
	if snapshot.TodayStarts != 1 || snapshot.TodayPayments != 1 {
		t.Fatalf("today counters = %+v", snapshot)
	}
	if snapshot.TodayRevenue != 25 {
		t.Fatalf("today revenue = %v, want 25", snapshot.TodayRevenue)
	}
	if snapshot.TodayParticipants != 1 {
		t.Fatalf("today participants = %d, want 1", snapshot.TodayParticipants)
	}
	if snapshot.ActiveRounds != 2 {
		t.Fatalf("active rounds = %d, want 2", snapshot.ActiveRounds)
	}
}
