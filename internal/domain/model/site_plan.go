package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// SitePlan represents a sellable subscription plan synced from the billing
// processor's price catalog.
type SitePlan struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderPriceID   string    `gorm:"column:provider_price_id;unique;not null;size:100" json:"provider_price_id"`
	ProviderProductID string    `gorm:"column:provider_product_id;not null;size:100" json:"provider_product_id"`
	DisplayName       string    `gorm:"not null;size:200" json:"display_name"`
	Tier              string    `gorm:"not null;size:50" json:"tier"` // 'pro' or 'enterprise'
	Amount            int64     `gorm:"not null" json:"amount"`
	Currency          string    `gorm:"not null;size:10" json:"currency"`
	Interval          string    `gorm:"size:20" json:"interval"`
	Features          Features  `gorm:"type:jsonb;default:'{}'" json:"features"`
	SortOrder         int       `gorm:"default:0" json:"sort_order"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time `gorm:"default:now()" json:"updated_at"`
}

// Features represents plan features as JSONB
type Features map[string]interface{}

// Value implements driver.Valuer interface
func (f Features) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner interface
func (f *Features) Scan(src interface{}) error {
	if src == nil {
		*f = make(Features)
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		*f = make(Features)
		return nil
	}
}

// TableName specifies the table name for GORM
func (SitePlan) TableName() string {
	return "site_plans"
}
