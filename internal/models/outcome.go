package models

import "github.com/appfuel/purchasekit/internal/presentation"

type OriginKind string

const (
	OriginInternal OriginKind = "internal"
	OriginExternal OriginKind = "external"
)

// PurchaseOrigin identifies which caller drove a purchase attempt.
// Internal origin resolves a previously-fetched product by ID and carries
// the paywall surface that must receive UI side effects; external origin
// supplies the product directly and has no surface.
type PurchaseOrigin struct {
	Kind      OriginKind
	ProductID string
	Surface   presentation.Surface
	Product   *Product
}

type RestoreOrigin struct {
	Kind    OriginKind
	Surface presentation.Surface
}

func InternalPurchase(productID string, surface presentation.Surface) PurchaseOrigin {
	return PurchaseOrigin{Kind: OriginInternal, ProductID: productID, Surface: surface}
}

func ExternalPurchase(product *Product) PurchaseOrigin {
	return PurchaseOrigin{Kind: OriginExternal, Product: product}
}

func InternalRestore(surface presentation.Surface) RestoreOrigin {
	return RestoreOrigin{Kind: OriginInternal, Surface: surface}
}

func ExternalRestore() RestoreOrigin {
	return RestoreOrigin{Kind: OriginExternal}
}

// PurchaseState is the terminal verdict of a single purchase attempt.
type PurchaseState string

const (
	PurchaseStatePurchased PurchaseState = "purchased"
	PurchaseStateRestored  PurchaseState = "restored"
	PurchaseStateFailed    PurchaseState = "failed"
	PurchaseStatePending   PurchaseState = "pending"
	PurchaseStateCancelled PurchaseState = "cancelled"
)

// PurchaseResult is immutable once produced; exactly one per attempt.
// Err is set only for the failed state.
type PurchaseResult struct {
	State PurchaseState
	Err   error
}

func Purchased() PurchaseResult            { return PurchaseResult{State: PurchaseStatePurchased} }
func Restored() PurchaseResult             { return PurchaseResult{State: PurchaseStateRestored} }
func PurchaseFailed(err error) PurchaseResult {
	return PurchaseResult{State: PurchaseStateFailed, Err: err}
}
func PurchasePending() PurchaseResult   { return PurchaseResult{State: PurchaseStatePending} }
func PurchaseCancelled() PurchaseResult { return PurchaseResult{State: PurchaseStateCancelled} }

type RestoreState string

const (
	RestoreStateRestored RestoreState = "restored"
	RestoreStateFailed   RestoreState = "failed"
)

// RestoreResult is the restore backend's own verdict. Acceptance is decided
// separately by reconciling it against live entitlement status.
type RestoreResult struct {
	State RestoreState
	Err   error
}

func RestoreSucceeded() RestoreResult { return RestoreResult{State: RestoreStateRestored} }
func RestoreFailed(err error) RestoreResult {
	return RestoreResult{State: RestoreStateFailed, Err: err}
}
