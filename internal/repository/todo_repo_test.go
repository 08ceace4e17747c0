package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/langly/backend/internal/model"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&model.Todo{}, &model.Note{}, &model.ActivityLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestTodoRepository_ListOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewTodoRepository(db)

	// Seed: one done, two pending
	now := time.Now()
	todos := []model.Todo{
		{Task: "buy milk", Done: true, DoneAt: &now},
		{Task: "call dentist"},
		{Task: "pick up Sebby"},
	}
	for i := range todos {
		if err := repo.Create(&todos[i]); err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}
	}

	list, err := repo.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List should return 3 todos, got %d", len(list))
	}
	// Pending todos come before done ones
	if list[0].Done || list[1].Done {
		t.Errorf("pending todos should sort before done todos: %+v", list)
	}
	if !list[2].Done {
		t.Errorf("done todo should sort last, got %+v", list[2])
	}
}

func TestTodoRepository_GetNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewTodoRepository(db)

	_, err := repo.Get(999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on missing id should return ErrNotFound, got %v", err)
	}
}

func TestTodoRepository_Toggle(t *testing.T) {
	db := newTestDB(t)
	repo := NewTodoRepository(db)

	todo := model.Todo{Task: "water plants"}
	if err := repo.Create(&todo); err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	got, err := repo.Get(todo.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	now := time.Now()
	got.Done = true
	got.DoneAt = &now
	if err := repo.Save(got); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	updated, err := repo.Get(todo.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !updated.Done || updated.DoneAt == nil {
		t.Errorf("todo should be marked done with DoneAt set, got %+v", updated)
	}
}
