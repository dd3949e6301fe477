// Package classify maps raw purchase errors to a user-facing disposition.
// Classification is a pure function of the error and the configuration
// snapshot so the full cross product is independently testable.
package classify

import (
	"errors"

	pkgerrors "github.com/appfuel/purchasekit/pkg/errors"
)

type DispositionKind string

const (
	// Suppressed means log only, no UI.
	Suppressed DispositionKind = "suppressed"
	// Cancelled means the user backed out; never alerted.
	Cancelled DispositionKind = "cancelled"
	// AlertUser means show the title/message to the user.
	AlertUser DispositionKind = "alert_user"
)

type Disposition struct {
	Kind       DispositionKind
	Title      string
	Message    string
	CloseLabel string
}

// failureTrigger is the trigger name a host registers to take over
// purchase-failure handling with its own paywall.
const failureTrigger = "transaction_fail"

// Purchase classifies a failed purchase outcome. The second return is false
// when the error is not one the classifier recognizes as actionable; the
// caller then falls back to generic failure tracking with no alert.
func Purchase(err error, triggers []string, showAlertOnFailure bool) (Disposition, bool) {
	if err == nil {
		return Disposition{}, false
	}

	if errors.Is(err, pkgerrors.ErrPurchaseCancelled) {
		return Disposition{Kind: Cancelled}, true
	}

	if !errors.Is(err, pkgerrors.ErrPlatformPurchase) {
		return Disposition{}, false
	}

	// A registered failure trigger means the host presents its own
	// follow-up paywall; the generic alert would double up on it.
	for _, trigger := range triggers {
		if trigger == failureTrigger {
			return Disposition{Kind: Suppressed}, true
		}
	}

	if !showAlertOnFailure {
		return Disposition{Kind: Suppressed}, true
	}

	return Disposition{
		Kind:       AlertUser,
		Title:      "An error occurred",
		Message:    err.Error(),
		CloseLabel: "OK",
	}, true
}
