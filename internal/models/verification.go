package models

import "time"

// Verification holds a pending email or password verification challenge.
// Rows expire passively; no delivery state is tracked here.
type Verification struct {
	BaseModel

	Identifier string    `gorm:"not null;index" json:"identifier"`
	Value      string    `gorm:"not null" json:"-"`
	ExpiresAt  time.Time `gorm:"not null;index" json:"expires_at"`
}

func (Verification) TableName() string { return "verification" }
