// Package coordinator serializes purchase intents per product and resolves
// the last known platform transaction for a product.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/appfuel/purchasekit/internal/infrastructure/redis"
	"github.com/appfuel/purchasekit/internal/models"
	"github.com/appfuel/purchasekit/internal/repository"
	pkgerrors "github.com/appfuel/purchasekit/pkg/errors"
)

// lockTTL bounds a purchase intent by the underlying platform call; a
// crashed attempt releases its slot when the lock expires.
const lockTTL = 30 * time.Second

type Coordinator struct {
	client       redis.RedisClient
	transactions repository.TransactionRepository
}

func New(client redis.RedisClient, transactions repository.TransactionRepository) *Coordinator {
	return &Coordinator{client: client, transactions: transactions}
}

// BeginPurchase marks a purchase intent for the product. A held lock means
// another attempt for the same product is already in flight.
func (c *Coordinator) BeginPurchase(ctx context.Context, productID string, external bool) error {
	origin := "internal"
	if external {
		origin = "external"
	}

	ok, err := c.client.SetNX(ctx, lockKey(productID), origin, lockTTL)
	if err != nil {
		slog.Error("failed to mark purchase intent", "product_id", productID, "error", err)
		return err
	}
	if !ok {
		slog.Warn("purchase intent already marked", "product_id", productID)
		return fmt.Errorf("%w: %s", pkgerrors.ErrPurchaseInProgress, productID)
	}

	slog.Info("purchase intent marked", "product_id", productID, "origin", origin)
	return nil
}

func (c *Coordinator) LatestTransaction(ctx context.Context, productID string) (*models.TransactionRecord, error) {
	return c.transactions.GetLatestByProduct(ctx, productID)
}

func lockKey(productID string) string {
	return fmt.Sprintf("purchase:%s:lock", productID)
}
