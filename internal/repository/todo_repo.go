package repository

import (
	"errors"

	"github.com/langly/backend/internal/model"
	"gorm.io/gorm"
)

type todoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(todo *model.Todo) error {
	return r.db.Create(todo).Error
}

// List 返回全部待办，未完成在前，同组内按创建时间倒序
func (r *todoRepository) List() ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.Order("done asc, created_at desc").Find(&todos).Error
	return todos, err
}

func (r *todoRepository) Get(id uint) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.First(&todo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) Save(todo *model.Todo) error {
	return r.db.Save(todo).Error
}

func (r *todoRepository) Delete(id uint) error {
	return r.db.Delete(&model.Todo{}, id).Error
}
