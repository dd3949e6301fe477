package errors

import "errors"

var (
	ErrProductUnavailable  = errors.New("product not found in catalog")
	ErrNilProduct          = errors.New("product is nil")
	ErrPurchaseCancelled   = errors.New("purchase cancelled by user")
	ErrPurchasePending     = errors.New("purchase pending approval")
	ErrPlatformPurchase    = errors.New("platform purchase failed")
	ErrRestoreFailed       = errors.New("restore failed")
	ErrRestoreMismatch     = errors.New("restore reported success but entitlement is not active")
	ErrPurchaseInProgress  = errors.New("purchase already in progress for product")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEntitlementUnknown  = errors.New("entitlement status unavailable")
)
