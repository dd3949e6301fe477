package service

import (
	"context"

	"github.com/appfuel/purchasekit/internal/models"
)

// ProductStore resolves previously-fetched products for internal-origin
// purchases. A miss means catalog sync is stale, not a transient fault.
type ProductStore interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// TrialEligibility answers whether a free trial is still available for a
// product. Queried before the purchase call so the verdict reflects
// pre-purchase state.
type TrialEligibility interface {
	IsFreeTrialAvailable(ctx context.Context, product *models.Product) (bool, error)
}

// PurchaseBackend is the platform purchase capability. The external tag
// lets the capability route to an override handler when one is configured.
type PurchaseBackend interface {
	Purchase(ctx context.Context, product *models.Product, external bool) models.PurchaseResult
}

type RestoreBackend interface {
	RestorePurchases(ctx context.Context, external bool) models.RestoreResult
}

// PurchaseController is an optional host-supplied hook that takes over
// external purchases and restores entirely.
type PurchaseController interface {
	Purchase(ctx context.Context, product *models.Product) models.PurchaseResult
	RestorePurchases(ctx context.Context) models.RestoreResult
}

// Coordinator serializes purchase intents per product and resolves the
// last known platform transaction. BeginPurchase is advisory from the
// orchestrator's perspective.
type Coordinator interface {
	BeginPurchase(ctx context.Context, productID string, external bool) error
	LatestTransaction(ctx context.Context, productID string) (*models.TransactionRecord, error)
}

// PurchasedProducts refreshes the purchased-product cache after a
// confirmed success. The cache is never mutated in place.
type PurchasedProducts interface {
	Reload(ctx context.Context) error
}

// EntitlementReader reports the externally-owned entitlement status. The
// core only reads it at the moment a restore outcome arrives.
type EntitlementReader interface {
	Status(ctx context.Context) (models.EntitlementStatus, error)
}

// RestoreNotifier is the post-restore notification path the orchestrator
// invokes when a purchase call reports an already-owned product.
type RestoreNotifier interface {
	NotifyRestored(ctx context.Context, product *models.Product, txn *models.TransactionRecord, origin models.PurchaseOrigin)
}
