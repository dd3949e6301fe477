package models

// AlertCopy is user-facing alert text sourced from configuration.
type AlertCopy struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	CloseLabel string `json:"close_label"`
}

// PaywallConfig is the read-only configuration snapshot the core consults
// during an attempt. It is loaded once and injected; the core never
// mutates it.
type PaywallConfig struct {
	AutomaticallyDismiss           bool      `json:"automatically_dismiss"`
	ShouldShowPurchaseFailureAlert bool      `json:"should_show_purchase_failure_alert"`
	RestoreFailed                  AlertCopy `json:"restore_failed"`
	Triggers                       []string  `json:"triggers,omitempty"`
}
