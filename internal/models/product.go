package models

import "time"

type Product struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name,omitempty"`
	Price              float64 `json:"price"`
	Currency           string  `json:"currency,omitempty"`
	SubscriptionPeriod string  `json:"subscription_period,omitempty"`
	TrialPeriod        string  `json:"trial_period,omitempty"`
}

// IsSubscription reports whether the product renews. Products without a
// subscription period are one-off (non-recurring) purchases.
func (p *Product) IsSubscription() bool {
	return p != nil && p.SubscriptionPeriod != ""
}

// TransactionRecord is the last known platform transaction for a product,
// resolved from the purchasing coordinator after a confirmed success.
type TransactionRecord struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	State       string    `json:"state"`
	PurchasedAt time.Time `json:"purchased_at"`
}

type EntitlementStatus string

const (
	EntitlementActive   EntitlementStatus = "active"
	EntitlementInactive EntitlementStatus = "inactive"
	EntitlementUnknown  EntitlementStatus = "unknown"
)
