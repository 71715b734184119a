package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses and priorities. Defaults only; transitions are not enforced.
const (
	TaskStatusToDo       = "to-do"
	TaskStatusInProgress = "in-progress"
	TaskStatusInReview   = "in-review"
	TaskStatusDone       = "done"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// Task is the unit of work inside a project. The assignee is referenced by
// user email, not id: renaming or deleting the user cascades through this
// column.
type Task struct {
	ID            string   `gorm:"primaryKey;type:uuid" json:"id"`
	ProjectID     string   `gorm:"type:uuid;not null;index" json:"project_id"`
	Project       *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Position      int      `gorm:"default:0" json:"position"`
	Number        int      `gorm:"default:1" json:"number"`
	AssigneeEmail *string  `gorm:"column:assignee_email;index" json:"assignee_email,omitempty"`
	Assignee      *User    `gorm:"foreignKey:AssigneeEmail;references:Email;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignee,omitempty"`

	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `gorm:"not null;default:'to-do'" json:"status"`
	Priority    string     `gorm:"default:'low'" json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`

	TimeEntries []TimeEntry `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"time_entries,omitempty"`
	Activities  []Activity  `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"activities,omitempty"`
	Labels      []Label     `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"labels,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Task) TableName() string { return "task" }

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
