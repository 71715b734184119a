package models

import "time"

// Account links a user to an external identity provider, or stores the
// hashed credential for the local provider.
type Account struct {
	BaseModel

	AccountID  string `gorm:"not null" json:"account_id"`
	ProviderID string `gorm:"not null;index" json:"provider_id"`
	UserID     string `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	AccessToken           string     `json:"-"`
	RefreshToken          string     `json:"-"`
	IDToken               string     `json:"-"`
	AccessTokenExpiresAt  *time.Time `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	Scope                 string     `json:"scope,omitempty"`
	Password              string     `json:"-"`
}

func (Account) TableName() string { return "account" }
