package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the practice-facing fields for one user. The primary key is
// the internal user id derived from the identity provider's external id, so
// a profile row can be located without any extra lookup table.
type Profile struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	FullName  string    `gorm:"size:200" json:"full_name"`
	Specialty string    `gorm:"size:200" json:"specialty"`
	Address   string    `gorm:"size:500" json:"address"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Email     string    `gorm:"size:255" json:"email"`
	AvatarURL string    `gorm:"size:500" json:"avatar_url"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}
