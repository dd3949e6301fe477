package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	stderrors "errors"

	"github.com/appfuel/purchasekit/internal/models"
	pkgerrors "github.com/appfuel/purchasekit/pkg/errors"
)

const productTTL = 24 * time.Hour

// ProductStore caches previously-fetched platform products. A cache miss
// is a catalog-sync staleness condition, not a transient error.
type ProductStore struct {
	client RedisClient
}

func NewProductStore(client RedisClient) *ProductStore {
	return &ProductStore{client: client}
}

func (s *ProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	raw, err := s.client.Get(ctx, productKey(id))
	if stderrors.Is(err, ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrProductUnavailable, id)
	}
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		slog.Error("failed to unmarshal cached product", "product_id", id, "error", err)
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrProductUnavailable, id)
	}
	return &product, nil
}

func (s *ProductStore) Put(ctx context.Context, product *models.Product) error {
	if product == nil {
		return pkgerrors.ErrNilProduct
	}
	raw, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, productKey(product.ID), string(raw), productTTL)
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
