package repository

import (
	"github.com/langly/backend/internal/model"
	"gorm.io/gorm"
)

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(entry *model.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *activityRepository) Recent(limit int) ([]model.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []model.ActivityLog
	err := r.db.Order("created_at desc").Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *activityRepository) RecentBySource(source string, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []model.ActivityLog
	err := r.db.Where("source = ?", source).Order("created_at desc").Limit(limit).Find(&entries).Error
	return entries, err
}
