package repository

import (
	"context"

	"github.com/appfuel/purchasekit/internal/models"
)

type TransactionRepository interface {
	GetLatestByProduct(ctx context.Context, productID string) (*models.TransactionRecord, error)
	ListPurchasedProducts(ctx context.Context) ([]string, error)
}
