package entity

import "time"

// SubscriptionStatus is the result of the check-subscription flow, shaped for
// direct serialization to the client.
type SubscriptionStatus struct {
	Subscribed       bool       `json:"subscribed"`
	SubscriptionTier *string    `json:"subscription_tier,omitempty"`
	SubscriptionEnd  *time.Time `json:"subscription_end,omitempty"`
}

// CheckoutSession is the result of the create-checkout flow.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
