package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/appfuel/purchasekit/internal/repository"
)

const (
	purchasedKey = "purchased_products"
	purchasedTTL = 24 * time.Hour
)

// PurchasedProducts caches the set of products the user owns. It is
// refreshed only via Reload after a confirmed purchase success, never
// mutated in place.
type PurchasedProducts struct {
	client       RedisClient
	transactions repository.TransactionRepository
}

func NewPurchasedProducts(client RedisClient, transactions repository.TransactionRepository) *PurchasedProducts {
	return &PurchasedProducts{client: client, transactions: transactions}
}

func (p *PurchasedProducts) Reload(ctx context.Context) error {
	productIDs, err := p.transactions.ListPurchasedProducts(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(productIDs)
	if err != nil {
		return err
	}
	if err := p.client.Set(ctx, purchasedKey, string(raw), purchasedTTL); err != nil {
		return err
	}

	slog.Info("purchased products reloaded", "count", len(productIDs))
	return nil
}
