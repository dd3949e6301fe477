package service

import (
	"context"
	"fmt"
	"log/slog"

	stderrors "errors"

	"github.com/appfuel/purchasekit/internal/classify"
	"github.com/appfuel/purchasekit/internal/infrastructure/observability"
	"github.com/appfuel/purchasekit/internal/models"
	"github.com/appfuel/purchasekit/internal/presentation"
	"github.com/appfuel/purchasekit/internal/tracking"
	pkgerrors "github.com/appfuel/purchasekit/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type PurchaseService interface {
	Purchase(ctx context.Context, origin models.PurchaseOrigin) models.PurchaseResult
}

type purchaseService struct {
	products    ProductStore
	eligibility TrialEligibility
	backend     PurchaseBackend
	coordinator Coordinator
	purchased   PurchasedProducts
	notifier    RestoreNotifier
	tracker     *tracking.Tracker
	alerts      presentation.AlertPresenter
	config      models.PaywallConfig
}

func NewPurchaseService(
	products ProductStore,
	eligibility TrialEligibility,
	backend PurchaseBackend,
	coordinator Coordinator,
	purchased PurchasedProducts,
	notifier RestoreNotifier,
	tracker *tracking.Tracker,
	alerts presentation.AlertPresenter,
	config models.PaywallConfig,
) *purchaseService {
	return &purchaseService{
		products:    products,
		eligibility: eligibility,
		backend:     backend,
		coordinator: coordinator,
		purchased:   purchased,
		notifier:    notifier,
		tracker:     tracker,
		alerts:      alerts,
		config:      config,
	}
}

// Purchase drives a single purchase attempt end-to-end. It never fails as
// a Go error: every branch resolves into a terminal PurchaseResult and the
// caller owns any further UI transition.
func (s *purchaseService) Purchase(ctx context.Context, origin models.PurchaseOrigin) models.PurchaseResult {
	tracer := otel.Tracer("purchase-orchestrator")
	ctx, span := tracer.Start(ctx, "Purchase")
	defer span.End()
	span.SetAttributes(attribute.String("origin", string(origin.Kind)))

	product, err := s.resolveProduct(ctx, origin)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "product resolution failed")
		slog.Error("failed to resolve product",
			"product_id", origin.ProductID,
			"origin", origin.Kind,
			"error", err)
		result := models.PurchaseFailed(err)
		s.countAttempt(origin, result)
		return result
	}
	span.SetAttributes(attribute.String("product_id", product.ID))

	// Captured before the purchase call so the trial classification
	// reflects pre-purchase eligibility.
	eligible := false
	if ok, err := s.eligibility.IsFreeTrialAvailable(ctx, product); err != nil {
		slog.Warn("failed to determine free trial eligibility", "product_id", product.ID, "error", err)
	} else {
		eligible = ok
	}

	s.tracker.TransactionStart(ctx, product, origin)
	if origin.Kind == models.OriginInternal && origin.Surface != nil {
		origin.Surface.SetLoadingState(presentation.LoadingStatePurchasing)
	}

	external := origin.Kind == models.OriginExternal
	if err := s.coordinator.BeginPurchase(ctx, product.ID, external); err != nil {
		slog.Warn("purchasing coordinator rejected begin mark", "product_id", product.ID, "error", err)
	}

	result := s.backend.Purchase(ctx, product, external)

	switch result.State {
	case models.PurchaseStatePurchased:
		s.handlePurchased(ctx, product, origin, eligible)
	case models.PurchaseStateRestored:
		s.handleRestored(ctx, product, origin)
	case models.PurchaseStateFailed:
		s.handleFailed(ctx, product, origin, result.Err)
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, "purchase failed")
	case models.PurchaseStatePending:
		s.handlePending(ctx, product, origin)
	case models.PurchaseStateCancelled:
		s.tracker.TransactionAbandoned(ctx, product, origin)
		s.clearLoading(origin)
		slog.Info("purchase abandoned by user", "product_id", product.ID, "origin", origin.Kind)
	}

	s.countAttempt(origin, result)
	return result
}

func (s *purchaseService) resolveProduct(ctx context.Context, origin models.PurchaseOrigin) (*models.Product, error) {
	switch origin.Kind {
	case models.OriginInternal:
		product, err := s.products.GetByID(ctx, origin.ProductID)
		if err != nil {
			// A missing product means catalog sync is stale; never retried.
			return nil, fmt.Errorf("%w: %s", pkgerrors.ErrProductUnavailable, origin.ProductID)
		}
		return product, nil
	default:
		if origin.Product == nil {
			return nil, pkgerrors.ErrNilProduct
		}
		return origin.Product, nil
	}
}

func (s *purchaseService) handlePurchased(ctx context.Context, product *models.Product, origin models.PurchaseOrigin, eligible bool) {
	txn, err := s.coordinator.LatestTransaction(ctx, product.ID)
	if err != nil {
		// Best effort; absence of a transaction record is tolerated.
		if !stderrors.Is(err, pkgerrors.ErrTransactionNotFound) {
			slog.Warn("failed to resolve latest transaction", "product_id", product.ID, "error", err)
		}
		txn = nil
	}

	if err := s.purchased.Reload(ctx); err != nil {
		slog.Error("failed to reload purchased products", "product_id", product.ID, "error", err)
	}

	s.tracker.TransactionCompleted(ctx, product, origin, txn, eligible && s.paywallAdvertisesTrial(origin))

	if origin.Kind == models.OriginInternal && origin.Surface != nil && s.config.AutomaticallyDismiss {
		origin.Surface.RequestDismiss(presentation.DismissPurchased)
	}

	slog.Info("purchase completed", "product_id", product.ID, "origin", origin.Kind)
}

// paywallAdvertisesTrial reports whether the presenting paywall offers the
// trial. External purchases have no paywall, so eligibility alone decides.
func (s *purchaseService) paywallAdvertisesTrial(origin models.PurchaseOrigin) bool {
	if origin.Kind == models.OriginInternal && origin.Surface != nil {
		return origin.Surface.Snapshot().FreeTrialAvailable
	}
	return true
}

func (s *purchaseService) handleRestored(ctx context.Context, product *models.Product, origin models.PurchaseOrigin) {
	txn, err := s.coordinator.LatestTransaction(ctx, product.ID)
	if err != nil {
		txn = nil
	}
	s.notifier.NotifyRestored(ctx, product, txn, origin)
	slog.Info("purchase resolved as restore", "product_id", product.ID, "origin", origin.Kind)
}

func (s *purchaseService) handleFailed(ctx context.Context, product *models.Product, origin models.PurchaseOrigin, cause error) {
	disp, ok := classify.Purchase(cause, s.config.Triggers, s.config.ShouldShowPurchaseFailureAlert)
	if !ok {
		s.tracker.TransactionFailed(ctx, product, origin, cause.Error())
		s.clearLoading(origin)
		return
	}

	switch disp.Kind {
	case classify.Cancelled:
		s.tracker.TransactionAbandoned(ctx, product, origin)
		s.clearLoading(origin)
	case classify.Suppressed:
		s.tracker.TransactionFailed(ctx, product, origin, cause.Error())
		s.clearLoading(origin)
		slog.Info("purchase failure suppressed", "product_id", product.ID, "error", cause)
	case classify.AlertUser:
		s.tracker.TransactionFailed(ctx, product, origin, cause.Error())
		s.clearLoading(origin)
		s.presentAlert(origin, disp.Title, disp.Message, disp.CloseLabel)
	}
}

func (s *purchaseService) handlePending(ctx context.Context, product *models.Product, origin models.PurchaseOrigin) {
	s.tracker.TransactionFailed(ctx, product, origin, "purchase pending approval")
	s.clearLoading(origin)
	s.presentAlert(origin,
		"Waiting for Approval",
		"Thank you! This purchase is pending approval. You will gain access once it is approved.",
		"OK")
	slog.Info("purchase deferred pending approval", "product_id", product.ID, "origin", origin.Kind)
}

func (s *purchaseService) clearLoading(origin models.PurchaseOrigin) {
	if origin.Kind == models.OriginInternal && origin.Surface != nil {
		origin.Surface.SetLoadingState(presentation.LoadingStateNone)
	}
}

func (s *purchaseService) presentAlert(origin models.PurchaseOrigin, title, message, closeLabel string) {
	if origin.Kind == models.OriginInternal && origin.Surface != nil {
		origin.Surface.PresentAlert(title, message, closeLabel)
		return
	}
	if s.alerts != nil {
		s.alerts.PresentAlert(title, message, closeLabel)
		return
	}
	slog.Warn("no UI context available for alert", "title", title)
}

func (s *purchaseService) countAttempt(origin models.PurchaseOrigin, result models.PurchaseResult) {
	observability.PurchaseAttempts.WithLabelValues(string(origin.Kind), string(result.State)).Inc()
}
