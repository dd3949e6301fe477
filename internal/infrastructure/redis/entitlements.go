package redis

import (
	"context"

	stderrors "errors"

	"github.com/appfuel/purchasekit/internal/models"
)

const entitlementKey = "entitlements:status"

// EntitlementReader reads the externally-maintained entitlement status.
// The key is written by the entitlement service, never by this module.
type EntitlementReader struct {
	client RedisClient
}

func NewEntitlementReader(client RedisClient) *EntitlementReader {
	return &EntitlementReader{client: client}
}

func (r *EntitlementReader) Status(ctx context.Context) (models.EntitlementStatus, error) {
	raw, err := r.client.Get(ctx, entitlementKey)
	if stderrors.Is(err, ErrKeyNotFound) {
		return models.EntitlementInactive, nil
	}
	if err != nil {
		return models.EntitlementUnknown, err
	}

	switch models.EntitlementStatus(raw) {
	case models.EntitlementActive:
		return models.EntitlementActive, nil
	case models.EntitlementInactive:
		return models.EntitlementInactive, nil
	default:
		return models.EntitlementUnknown, nil
	}
}
