package presentation

// LoadingState is the paywall's purchase-flow spinner state. Writes are
// idempotent; setting the same state twice is harmless.
type LoadingState string

const (
	LoadingStateNone       LoadingState = "none"
	LoadingStatePurchasing LoadingState = "purchasing"
	LoadingStateRestoring  LoadingState = "restoring"
)

type MessageKind string

const (
	MessageRestoreStarted  MessageKind = "restore_started"
	MessageRestored        MessageKind = "restored"
	MessageRestoreFailed   MessageKind = "restore_failed"
)

type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text,omitempty"`
}

// DismissResult tells the surface why it is being dismissed.
type DismissResult string

const (
	DismissPurchased DismissResult = "purchased"
	DismissRestored  DismissResult = "restored"
)

// Snapshot is the presentation context attached to lifecycle events.
type Snapshot struct {
	PaywallID          string `json:"paywall_id"`
	PaywallName        string `json:"paywall_name,omitempty"`
	FreeTrialAvailable bool   `json:"free_trial_available"`
}

// Surface is the paywall UI layer. Implementations live outside this
// module; the core only signals it.
type Surface interface {
	SetLoadingState(state LoadingState)
	PostMessage(msg Message)
	PresentAlert(title, message, closeLabel string)
	RequestDismiss(result DismissResult)
	Snapshot() Snapshot
}

// AlertPresenter is the top-most available UI context used for
// external-origin alerts when no paywall surface is attached.
type AlertPresenter interface {
	PresentAlert(title, message, closeLabel string)
}
