package models

import (
	"time"

	"github.com/appfuel/purchasekit/internal/presentation"
)

type LifecycleEventType string

const (
	EventTransactionStart    LifecycleEventType = "transaction_start"
	EventTransactionComplete LifecycleEventType = "transaction_complete"
	EventTransactionFail     LifecycleEventType = "transaction_fail"
	EventTransactionAbandon  LifecycleEventType = "transaction_abandon"
	EventTransactionRestore  LifecycleEventType = "transaction_restore"

	EventRestoreStart    LifecycleEventType = "restore_start"
	EventRestoreComplete LifecycleEventType = "restore_complete"
	EventRestoreFail     LifecycleEventType = "restore_fail"

	EventFreeTrialStart       LifecycleEventType = "freeTrial_start"
	EventSubscriptionStart    LifecycleEventType = "subscription_start"
	EventNonRecurringPurchase LifecycleEventType = "nonRecurringProduct_purchase"
)

// LifecycleEvent is one analytics record of a state transition in a
// purchase or restore attempt. For any single attempt, transaction_start is
// emitted exactly once before the terminal event, and exactly one terminal
// event (complete/fail/abandon) follows.
type LifecycleEvent struct {
	Type        LifecycleEventType     `json:"event_type"`
	ProductID   string                 `json:"product_id,omitempty"`
	Origin      OriginKind             `json:"origin"`
	Paywall     *presentation.Snapshot `json:"paywall,omitempty"`
	Transaction *TransactionRecord     `json:"transaction,omitempty"`
	Message     string                 `json:"message,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}
