package repository

import (
	"errors"

	"github.com/langly/backend/internal/model"
	"gorm.io/gorm"
)

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(note *model.Note) error {
	return r.db.Create(note).Error
}

func (r *noteRepository) List() ([]model.Note, error) {
	var notes []model.Note
	err := r.db.Order("updated_at desc").Find(&notes).Error
	return notes, err
}

func (r *noteRepository) Get(id uint) (*model.Note, error) {
	var note model.Note
	err := r.db.First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Delete(id uint) error {
	return r.db.Delete(&model.Note{}, id).Error
}
