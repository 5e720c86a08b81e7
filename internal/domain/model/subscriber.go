package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscription tier constants
const (
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// Subscriber tracks one user's subscription state as last reported by the
// billing processor. Rows are created lazily with subscribed=false and
// updated by the check-subscription flow and the billing webhook.
type Subscriber struct {
	ID                 int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uuid.UUID  `gorm:"column:user_id;type:uuid;uniqueIndex;not null" json:"user_id"`
	Email              string     `gorm:"size:255" json:"email"`
	ProviderCustomerID *string    `gorm:"column:provider_customer_id;size:100;index" json:"provider_customer_id,omitempty"`
	Subscribed         bool       `gorm:"not null;default:false" json:"subscribed"`
	SubscriptionTier   *string    `gorm:"size:50" json:"subscription_tier,omitempty"`
	SubscriptionEnd    *time.Time `json:"subscription_end,omitempty"`
	CreatedAt          time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Subscriber) TableName() string {
	return "subscribers"
}
