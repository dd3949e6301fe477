// Package tracking translates purchase/restore lifecycle transitions into
// ordered analytics events on the outbound queue. Emission is best-effort:
// a failing queue never blocks returning an outcome to the caller.
package tracking

import (
	"context"
	"log/slog"
	"time"

	"github.com/appfuel/purchasekit/internal/models"
	"github.com/appfuel/purchasekit/internal/presentation"
)

// EventQueue is the outbound analytics queue. Enqueue may buffer; Flush
// forces the buffered events onto the wire synchronously.
type EventQueue interface {
	Enqueue(ctx context.Context, event models.LifecycleEvent) error
	Flush(ctx context.Context) error
}

type Tracker struct {
	queue EventQueue
}

func NewTracker(queue EventQueue) *Tracker {
	return &Tracker{queue: queue}
}

func (t *Tracker) TransactionStart(ctx context.Context, product *models.Product, origin models.PurchaseOrigin) {
	t.emit(ctx, t.newEvent(models.EventTransactionStart, product, origin.Kind, origin.Surface, nil, ""))
}

// TransactionCompleted emits the terminal success event, forces a queue
// flush so the completion survives abrupt process termination, then emits
// the follow-on event: non-recurring for one-off products, otherwise
// free-trial or subscription start depending on pre-purchase eligibility.
func (t *Tracker) TransactionCompleted(ctx context.Context, product *models.Product, origin models.PurchaseOrigin, txn *models.TransactionRecord, startedFreeTrial bool) {
	t.emit(ctx, t.newEvent(models.EventTransactionComplete, product, origin.Kind, origin.Surface, txn, ""))

	if err := t.queue.Flush(ctx); err != nil {
		slog.Error("failed to flush event queue after purchase", "product_id", product.ID, "error", err)
	}

	followOn := models.EventNonRecurringPurchase
	if product.IsSubscription() {
		followOn = models.EventSubscriptionStart
		if startedFreeTrial {
			followOn = models.EventFreeTrialStart
		}
	}
	t.emit(ctx, t.newEvent(followOn, product, origin.Kind, origin.Surface, txn, ""))
}

// TransactionFailed is fire-and-forget: emission runs on its own goroutine
// with no cancellation handle, is not awaited, and its failure is
// unobservable apart from the log line.
func (t *Tracker) TransactionFailed(ctx context.Context, product *models.Product, origin models.PurchaseOrigin, reason string) {
	event := t.newEvent(models.EventTransactionFail, product, origin.Kind, origin.Surface, nil, reason)
	go t.emit(context.Background(), event)
}

func (t *Tracker) TransactionAbandoned(ctx context.Context, product *models.Product, origin models.PurchaseOrigin) {
	event := t.newEvent(models.EventTransactionAbandon, product, origin.Kind, origin.Surface, nil, "")
	go t.emit(context.Background(), event)
}

// TransactionRestored records an entitlement restored through the purchase
// path, tagged with the resolved transaction record when one exists.
func (t *Tracker) TransactionRestored(ctx context.Context, product *models.Product, origin models.PurchaseOrigin, txn *models.TransactionRecord) {
	t.emit(ctx, t.newEvent(models.EventTransactionRestore, product, origin.Kind, origin.Surface, txn, ""))
}

func (t *Tracker) RestoreStarted(ctx context.Context, origin models.RestoreOrigin) {
	t.emit(ctx, t.newEvent(models.EventRestoreStart, nil, origin.Kind, origin.Surface, nil, ""))
}

func (t *Tracker) RestoreCompleted(ctx context.Context, origin models.RestoreOrigin) {
	t.emit(ctx, t.newEvent(models.EventRestoreComplete, nil, origin.Kind, origin.Surface, nil, ""))
}

func (t *Tracker) RestoreFailed(ctx context.Context, origin models.RestoreOrigin, message string) {
	event := t.newEvent(models.EventRestoreFail, nil, origin.Kind, origin.Surface, nil, message)
	go t.emit(context.Background(), event)
}

func (t *Tracker) newEvent(eventType models.LifecycleEventType, product *models.Product, origin models.OriginKind, surface presentation.Surface, txn *models.TransactionRecord, message string) models.LifecycleEvent {
	event := models.LifecycleEvent{
		Type:        eventType,
		Origin:      origin,
		Transaction: txn,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}
	if product != nil {
		event.ProductID = product.ID
	}
	if surface != nil {
		snapshot := surface.Snapshot()
		event.Paywall = &snapshot
	}
	return event
}

func (t *Tracker) emit(ctx context.Context, event models.LifecycleEvent) {
	if err := t.queue.Enqueue(ctx, event); err != nil {
		slog.Error("failed to enqueue lifecycle event",
			"event_type", event.Type,
			"product_id", event.ProductID,
			"origin", event.Origin,
			"error", err)
	}
}
