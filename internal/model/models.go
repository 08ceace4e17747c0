package model

import (
	"time"
)

// Todo 待办事项
type Todo struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Task      string     `json:"task" gorm:"size:500;not null"`
	Done      bool       `json:"done" gorm:"default:false"`
	DoneAt    *time.Time `json:"done_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Note 笔记
type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActivityLog 活动日志，记录助手各来源产生的事件
type ActivityLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Source    string    `json:"source" gorm:"size:50;index;not null"`     // chat, todos, travel
	EventType string    `json:"event_type" gorm:"size:50;not null"`       // query, fast_query, created, insights
	Summary   string    `json:"summary" gorm:"size:1000"`
	Metadata  string    `json:"metadata" gorm:"type:text"`                // JSON
	CreatedAt time.Time `json:"created_at"`
}
