// Package storeclient talks to the platform purchase backend over HTTP.
// It implements the purchase capability, the restore capability, and the
// free-trial eligibility check.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/appfuel/purchasekit/internal/models"
	pkgerrors "github.com/appfuel/purchasekit/pkg/errors"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type purchaseResponse struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

func (c *Client) Purchase(ctx context.Context, product *models.Product, external bool) models.PurchaseResult {
	body, err := json.Marshal(map[string]interface{}{
		"product_id": product.ID,
		"external":   external,
	})
	if err != nil {
		return models.PurchaseFailed(fmt.Errorf("%w: %v", pkgerrors.ErrPlatformPurchase, err))
	}

	var resp purchaseResponse
	if err := c.post(ctx, "/v1/purchase", body, &resp); err != nil {
		slog.Error("purchase backend call failed", "product_id", product.ID, "error", err)
		return models.PurchaseFailed(fmt.Errorf("%w: %v", pkgerrors.ErrPlatformPurchase, err))
	}

	switch models.PurchaseState(resp.State) {
	case models.PurchaseStatePurchased:
		return models.Purchased()
	case models.PurchaseStateRestored:
		return models.Restored()
	case models.PurchaseStatePending:
		return models.PurchasePending()
	case models.PurchaseStateCancelled:
		return models.PurchaseCancelled()
	default:
		return models.PurchaseFailed(fmt.Errorf("%w: %s", pkgerrors.ErrPlatformPurchase, resp.Error))
	}
}

func (c *Client) RestorePurchases(ctx context.Context, external bool) models.RestoreResult {
	body, err := json.Marshal(map[string]interface{}{"external": external})
	if err != nil {
		return models.RestoreFailed(fmt.Errorf("%w: %v", pkgerrors.ErrRestoreFailed, err))
	}

	var resp purchaseResponse
	if err := c.post(ctx, "/v1/restore", body, &resp); err != nil {
		slog.Error("restore backend call failed", "error", err)
		return models.RestoreFailed(fmt.Errorf("%w: %v", pkgerrors.ErrRestoreFailed, err))
	}

	if models.RestoreState(resp.State) == models.RestoreStateRestored {
		return models.RestoreSucceeded()
	}
	return models.RestoreFailed(fmt.Errorf("%w: %s", pkgerrors.ErrRestoreFailed, resp.Error))
}

func (c *Client) IsFreeTrialAvailable(ctx context.Context, product *models.Product) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/eligibility/"+product.ID, nil)
	if err != nil {
		return false, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return false, fmt.Errorf("eligibility check returned status %d", res.StatusCode)
	}

	var payload struct {
		Eligible bool `json:"eligible"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return false, err
	}
	return payload.Eligible, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
