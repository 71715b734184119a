package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Label is a coloured tag attached to a single task.
type Label struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	Color  string `gorm:"not null" json:"color"`
	TaskID string `gorm:"type:uuid;not null;index" json:"task_id"`
	Task   *Task  `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Label) TableName() string { return "label" }

func (l *Label) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
