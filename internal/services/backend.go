package service

import (
	"context"
	"log/slog"

	"github.com/appfuel/purchasekit/internal/models"
)

// routingBackend routes external-tagged purchases to the host-supplied
// purchase controller when one is configured, and everything else to the
// platform store backend.
type routingBackend struct {
	store      PurchaseBackend
	controller PurchaseController
}

// NewRoutingBackend wraps the store backend with controller routing.
// controller may be nil, in which case all calls go to the store.
func NewRoutingBackend(store PurchaseBackend, controller PurchaseController) PurchaseBackend {
	return &routingBackend{store: store, controller: controller}
}

func (b *routingBackend) Purchase(ctx context.Context, product *models.Product, external bool) models.PurchaseResult {
	if external && b.controller != nil {
		slog.Info("routing purchase to external purchase controller", "product_id", product.ID)
		return b.controller.Purchase(ctx, product)
	}
	return b.store.Purchase(ctx, product, external)
}
