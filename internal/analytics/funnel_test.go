package analytics

import (
	"context"
	"testing"
	"time"

	"prize-rush/internal/db"
)

func TestConversionFunnelFixedOrderAndRates(t *testing.T) {
	svc, conn := newTestService(t)
	when := day("2026-06-10").Add(10 * time.Hour)

	// 4 starts, 2 attempts, 1 success, 1 completion, no winner.
	for participant := uint(1); participant <= 4; participant++ {
		seedEvent(t, conn, db.Event{
			EventType:     db.EventGameStart,
			ParticipantID: uintPtr(participant),
			GameID:        uintPtr(1),
			SessionID:     "sess-" + string(rune('a'+participant)),
			CreatedAt:     when,
		})
	}
	for participant := uint(1); participant <= 2; participant++ {
		seedEvent(t, conn, db.Event{
			EventType:     db.EventPaymentAttempt,
			ParticipantID: uintPtr(participant),
			GameID:        uintPtr(1),
			CreatedAt:     when,
		})
	}
	seedEvent(t, conn, db.Event{
		EventType:     db.EventPaymentSuccess,
		ParticipantID: uintPtr(1),
		GameID:        uintPtr(1),
		RevenueAmount: floatPtr(20),
		CreatedAt:     when,
	})
	seedEvent(t, conn, db.Event{
		EventType:     db.EventGameComplete,
		ParticipantID: uintPtr(1),
		GameID:        uintPtr(1),
		Properties:    completionJSON(80, 10),
		CreatedAt:     when,
	})

	steps, err := svc.ConversionFunnel(context.Background(), day("2026-06-10"), day("2026-06-10"), nil)
	if err != nil {
		t.Fatalf("conversion funnel: %v", err)
	}
	wantOrder := []string{"game_start", "payment_attempt", "payment_success", "game_complete", "winner_selected"}
	if len(steps) != len(wantOrder) {
		t.Fatalf("expected %d steps, got %d", len(wantOrder), len(steps))
	}
	for i, name := range wantOrder {
		if steps[i].Step != name {
			t.Fatalf("step %d = %q, want %q", i, steps[i].Step, name)
		}
	}

	if steps[0].ConversionRate != 100.00 {
		t.Fatalf("first step rate = %v, want 100", steps[0].ConversionRate)
	}
	if steps[0].UniqueParticipants != 4 || steps[0].EventCount != 4 {
		t.Fatalf("game_start counts = %+v", steps[0])
	}
	if steps[1].ConversionRate != 50.00 {
		t.Fatalf("payment_attempt rate = %v, want 50", steps[1].ConversionRate)
	}
	if steps[2].ConversionRate != 50.00 {
		t.Fatalf("payment_success rate = %v, want 50", steps[2].ConversionRate)
	}
	if steps[3].ConversionRate != 100.00 {
		t.Fatalf("game_complete rate = %v, want 100", steps[3].ConversionRate)
	}
	// winner_selected has no participants; previous step has 1, so 0%.
	if steps[4].ConversionRate != 0 {
		t.Fatalf("winner_selected rate = %v, want 0", steps[4].ConversionRate)
	}
}

func TestConversionFunnelZeroPreviousStepIsHundred(t *testing.T) {
	svc, conn := newTestService(t)
	when := day("2026-06-11").Add(time.Hour)

	// Attempts without any recorded starts: the zero denominator is defined
	// as 100, never a division fault.
	seedEvent(t, conn, db.Event{
		EventType:     db.EventPaymentAttempt,
		ParticipantID: uintPtr(1),
		CreatedAt:     when,
	})

	steps, err := svc.ConversionFunnel(context.Background(), day("2026-06-11"), day("2026-06-11"), nil)
	if err != nil {
		t.Fatalf("conversion funnel: %v", err)
	}
	if steps[0].ConversionRate != 100.00 {
		t.Fatalf("first step rate = %v, want 100", steps[0].ConversionRate)
	}
	if steps[1].ConversionRate != 100.00 {
		t.Fatalf("attempt rate after empty start step = %v, want 100", steps[1].ConversionRate)
	}
}

func TestConversionFunnelEmptyLogStillFiveSteps(t *testing.T) {
	svc, _ := newTestService(t)

	steps, err := svc.ConversionFunnel(context.Background(), day("2026-06-12"), day("2026-06-12"), nil)
	if err != nil {
		t.Fatalf("conversion funnel: %v", err)
	}
	if len(steps) != 5 {
		t.Fatalf("expected 5 steps for an empty log, got %d", len(steps))
	}
	for _, step := range steps {
		if step.ConversionRate != 100.00 {
			t.Fatalf("step %q rate = %v, want 100 on empty data", step.Step, step.ConversionRate)
		}
		if step.EventCount != 0 {
			t.Fatalf("step %q count = %d, want 0", step.Step, step.EventCount)
		}
	}
}

func TestConversionFunnelGameFilter(t *testing.T) {
	svc, conn := newTestService(t)
	when := day("2026-06-13").Add(time.Hour)

	seedEvent(t, conn, db.Event{
		EventType:     db.EventGameStart,
		ParticipantID: uintPtr(1),
		GameID:        uintPtr(1),
		CreatedAt:     when,
	})
	seedEvent(t, conn, db.Event{
		EventType:     db.EventGameStart,
		ParticipantID: uintPtr(2),
		GameID:        uintPtr(2),
		CreatedAt:     when,
	})

	steps, err := svc.ConversionFunnel(context.Background(), day("2026-06-13"), day("2026-06-13"), uintPtr(1))
	if err != nil {
		t.Fatalf("conversion funnel: %v", err)
	}
	if steps[0].EventCount != 1 {
		t.Fatalf("game filter not applied, start count = %d", steps[0].EventCount)
	}
}
