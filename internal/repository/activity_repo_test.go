package repository

import (
	"testing"

	"github.com/langly/backend/internal/model"
)

func TestActivityRepository_Recent(t *testing.T) {
	db := newTestDB(t)
	repo := NewActivityRepository(db)

	entries := []model.ActivityLog{
		{Source: "chat", EventType: "fast_query", Summary: "Q: what time is it"},
		{Source: "todos", EventType: "created", Summary: "Added todo: buy milk"},
		{Source: "chat", EventType: "query", Summary: "Q: plan a trip"},
	}
	for i := range entries {
		if err := repo.Create(&entries[i]); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}
	}

	all, err := repo.Recent(50)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Recent should return 3 entries, got %d", len(all))
	}

	chat, err := repo.RecentBySource("chat", 50)
	if err != nil {
		t.Fatalf("RecentBySource failed: %v", err)
	}
	if len(chat) != 2 {
		t.Errorf("RecentBySource(chat) should return 2 entries, got %d", len(chat))
	}
	for _, e := range chat {
		if e.Source != "chat" {
			t.Errorf("RecentBySource returned wrong source: %s", e.Source)
		}
	}
}

func TestActivityRepository_RecentLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewActivityRepository(db)

	for i := 0; i < 10; i++ {
		if err := repo.Create(&model.ActivityLog{Source: "chat", EventType: "query"}); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}
	}

	limited, err := repo.Recent(5)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(limited) != 5 {
		t.Errorf("Recent(5) should return 5 entries, got %d", len(limited))
	}
}
