package repository

import (
	"errors"

	"github.com/langly/backend/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

type TodoRepository interface {
	Create(todo *model.Todo) error
	List() ([]model.Todo, error)
	Get(id uint) (*model.Todo, error)
	Save(todo *model.Todo) error
	Delete(id uint) error
}

type NoteRepository interface {
	Create(note *model.Note) error
	List() ([]model.Note, error)
	Get(id uint) (*model.Note, error)
	Delete(id uint) error
}

type ActivityRepository interface {
	Create(entry *model.ActivityLog) error
	Recent(limit int) ([]model.ActivityLog, error)
	RecentBySource(source string, limit int) ([]model.ActivityLog, error)
}
