package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeEntry records time spent on a task. Duration is stored in seconds.
type TimeEntry struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	TaskID    string  `gorm:"type:uuid;not null;index" json:"task_id"`
	Task      *Task   `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	UserEmail *string `gorm:"index" json:"user_email,omitempty"`
	User      *User   `gorm:"foreignKey:UserEmail;references:Email;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Description string     `json:"description,omitempty"`
	StartTime   time.Time  `gorm:"not null" json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Duration    int        `gorm:"default:0" json:"duration"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (TimeEntry) TableName() string { return "time_entry" }

func (e *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
