package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Website is one generated practice site. Content and Settings are written
// once at creation and never updated in place; the row is only created and
// deleted by its owner.
type Website struct {
	ID           uuid.UUID      `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       uuid.UUID      `gorm:"column:userid;type:uuid;not null;index" json:"userid"`
	TemplateID   string         `gorm:"not null;size:100" json:"template_id"`
	Name         string         `gorm:"not null;size:200" json:"name"`
	Slug         string         `gorm:"uniqueIndex;not null;size:200" json:"slug"`
	CustomDomain *string        `gorm:"size:255" json:"custom_domain,omitempty"`
	Content      datatypes.JSON `gorm:"type:jsonb" json:"content"`
	Settings     datatypes.JSON `gorm:"type:jsonb" json:"settings"`
	CreatedAt    time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Website) TableName() string {
	return "websites"
}
