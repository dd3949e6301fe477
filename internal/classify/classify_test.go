package classify

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/appfuel/purchasekit/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPurchase(t *testing.T) {
	platformErr := fmt.Errorf("%w: payment sheet dismissed by the store", pkgerrors.ErrPlatformPurchase)
	unknownErr := errors.New("receipt parse failure")

	tests := []struct {
		name       string
		err        error
		triggers   []string
		showAlert  bool
		wantOK     bool
		wantKind   DispositionKind
	}{
		{"nil error", nil, nil, true, false, ""},
		{"cancellation with alert flag", pkgerrors.ErrPurchaseCancelled, nil, true, true, Cancelled},
		{"cancellation without alert flag", pkgerrors.ErrPurchaseCancelled, nil, false, true, Cancelled},
		{"cancellation with triggers", pkgerrors.ErrPurchaseCancelled, []string{"transaction_fail"}, true, true, Cancelled},
		{"platform error, flag set, no triggers", platformErr, nil, true, true, AlertUser},
		{"platform error, flag unset, no triggers", platformErr, nil, false, true, Suppressed},
		{"platform error, flag set, failure trigger active", platformErr, []string{"transaction_fail"}, true, true, Suppressed},
		{"platform error, flag unset, failure trigger active", platformErr, []string{"transaction_fail"}, false, true, Suppressed},
		{"platform error, flag set, unrelated trigger", platformErr, []string{"campaign_launch"}, true, true, AlertUser},
		{"unrecognized error, flag set", unknownErr, nil, true, false, ""},
		{"unrecognized error, flag unset", unknownErr, nil, false, false, ""},
		{"product unavailable is not actionable", pkgerrors.ErrProductUnavailable, nil, true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disp, ok := Purchase(tt.err, tt.triggers, tt.showAlert)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKind, disp.Kind)
			}
		})
	}
}

func TestPurchaseIsDeterministic(t *testing.T) {
	platformErr := fmt.Errorf("%w: network unreachable", pkgerrors.ErrPlatformPurchase)
	triggers := []string{"campaign_launch"}

	first, firstOK := Purchase(platformErr, triggers, true)
	for i := 0; i < 10; i++ {
		disp, ok := Purchase(platformErr, triggers, true)
		assert.Equal(t, firstOK, ok)
		assert.Equal(t, first, disp)
	}
}

func TestPurchaseAlertCarriesErrorText(t *testing.T) {
	platformErr := fmt.Errorf("%w: card declined", pkgerrors.ErrPlatformPurchase)

	disp, ok := Purchase(platformErr, nil, true)
	assert.True(t, ok)
	assert.Equal(t, AlertUser, disp.Kind)
	assert.Equal(t, "An error occurred", disp.Title)
	assert.Contains(t, disp.Message, "card declined")
	assert.Equal(t, "OK", disp.CloseLabel)
}
