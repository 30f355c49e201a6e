package analytics

import (
	"context"
	"testing"
	"time"

	"prize-rush/internal/db"
)

func TestCleanupOldEventsDeletesByAgeOnly(t *testing.T) {
	svc, conn := newTestService(t)
	now := day("2026-08-30").Add(12 * time.Hour)
	svc.now = func() time.Time { return now }

	seedEvent(t, conn, db.Event{
		EventType: db.EventGameStart,
		CreatedAt: now.AddDate(0, 0, -31),
	})
	seedEvent(t, conn, db.Event{
		EventType: db.EventGameStart,
		CreatedAt: now.AddDate(0, 0, -10),
	})

	deleted, err := svc.CleanupOldEvents(context.Background(), 30)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}

	var remaining int64
	if err := conn.Model(&db.Event{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("remaining = %d, want 1", remaining)
	}
}

func TestCleanupOldEventsDefaultRetention(t *testing.T) {
	svc, conn := newTestService(t)
	now := day("2026-08-30").Add(12 * time.Hour)
	svc.now = func() time.Time { return now }

	seedEvent(t, conn, db.Event{
		EventType: db.EventGameStart,
		CreatedAt: now.AddDate(0, 0, -400),
	})
	seedEvent(t, conn, db.Event{
		EventType: db.EventGameStart,
		CreatedAt: now.AddDate(0, 0, -300),
	})

	deleted, err := svc.CleanupOldEvents(context.Background(), 0)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want only the row beyond the 365-day default", deleted)
	}
}
