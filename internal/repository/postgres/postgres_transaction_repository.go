package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	stderrors "errors"

	"github.com/appfuel/purchasekit/internal/infrastructure/observability"
	"github.com/appfuel/purchasekit/internal/models"
	pkgerrors "github.com/appfuel/purchasekit/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

func (r *PostgresTransactionRepository) GetLatestByProduct(ctx context.Context, productID string) (*models.TransactionRecord, error) {
	var err error
	tracer := otel.Tracer("transaction-repository")
	ctx, span := tracer.Start(ctx, "GetLatestByProduct")
	defer span.End()

	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		observability.RepositoryCalls.WithLabelValues("GetLatestByProduct", status).Inc()
		observability.RepositoryDuration.WithLabelValues("GetLatestByProduct").Observe(time.Since(start).Seconds())
	}()

	span.SetAttributes(attribute.String("product_id", productID))

	var record models.TransactionRecord
	err = r.db.QueryRowContext(ctx,
		`SELECT id, product_id, state, purchased_at
		 FROM transactions
		 WHERE product_id = $1
		 ORDER BY purchased_at DESC
		 LIMIT 1`,
		productID,
	).Scan(&record.ID, &record.ProductID, &record.State, &record.PurchasedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		err = pkgerrors.ErrTransactionNotFound
		return nil, err
	}
	if err != nil {
		slog.Error("failed to query latest transaction", "product_id", productID, "error", err)
		return nil, fmt.Errorf("failed to query latest transaction: %w", err)
	}

	return &record, nil
}

func (r *PostgresTransactionRepository) ListPurchasedProducts(ctx context.Context) ([]string, error) {
	var err error
	tracer := otel.Tracer("transaction-repository")
	ctx, span := tracer.Start(ctx, "ListPurchasedProducts")
	defer span.End()

	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		observability.RepositoryCalls.WithLabelValues("ListPurchasedProducts", status).Inc()
		observability.RepositoryDuration.WithLabelValues("ListPurchasedProducts").Observe(time.Since(start).Seconds())
	}()

	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT product_id FROM transactions WHERE state = 'purchased'`)
	if err != nil {
		slog.Error("failed to list purchased products", "error", err)
		return nil, fmt.Errorf("failed to list purchased products: %w", err)
	}
	defer rows.Close()

	var productIDs []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			slog.Error("failed to scan purchased product row", "error", err)
			return nil, fmt.Errorf("failed to scan purchased product row: %w", err)
		}
		productIDs = append(productIDs, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchased products: %w", err)
	}

	return productIDs, nil
}
