package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/appfuel/purchasekit/internal/infrastructure/observability"
	"github.com/appfuel/purchasekit/internal/models"
	"github.com/appfuel/purchasekit/internal/presentation"
	"github.com/appfuel/purchasekit/internal/tracking"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type RestoreService interface {
	Restore(ctx context.Context, origin models.RestoreOrigin) models.RestoreResult
	NotifyRestored(ctx context.Context, product *models.Product, txn *models.TransactionRecord, origin models.PurchaseOrigin)
}

type restoreService struct {
	backend      RestoreBackend
	controller   PurchaseController
	entitlements EntitlementReader
	tracker      *tracking.Tracker
	alerts       presentation.AlertPresenter
	config       models.PaywallConfig
}

// NewRestoreService builds the restore reconciler. controller is the
// optional host purchase-control hook; nil disables delegation.
func NewRestoreService(
	backend RestoreBackend,
	controller PurchaseController,
	entitlements EntitlementReader,
	tracker *tracking.Tracker,
	alerts presentation.AlertPresenter,
	config models.PaywallConfig,
) *restoreService {
	return &restoreService{
		backend:      backend,
		controller:   controller,
		entitlements: entitlements,
		tracker:      tracker,
		alerts:       alerts,
		config:       config,
	}
}

// Restore drives a restore attempt and reconciles the backend verdict
// against live entitlement status. It returns the raw backend outcome;
// the reconciled verdict travels on the event stream.
func (s *restoreService) Restore(ctx context.Context, origin models.RestoreOrigin) models.RestoreResult {
	tracer := otel.Tracer("restore-reconciler")
	ctx, span := tracer.Start(ctx, "Restore")
	defer span.End()
	span.SetAttributes(attribute.String("origin", string(origin.Kind)))

	if origin.Kind == models.OriginExternal && s.controller != nil {
		// The hook owns the whole flow, including its own UI feedback;
		// emitting our own events here would double-process the restore.
		slog.Info("delegating restore to external purchase controller")
		return s.controller.RestorePurchases(ctx)
	}

	if origin.Kind == models.OriginInternal && origin.Surface != nil {
		origin.Surface.SetLoadingState(presentation.LoadingStateRestoring)
		s.tracker.RestoreStarted(ctx, origin)
		origin.Surface.PostMessage(presentation.Message{Kind: presentation.MessageRestoreStarted})
	} else {
		s.tracker.RestoreStarted(ctx, origin)
	}

	result := s.backend.RestorePurchases(ctx, origin.Kind == models.OriginExternal)
	status := s.entitlementStatus(ctx)

	// A backend can report restored for a transaction that grants nothing,
	// and entitlement status can be stale relative to a fresh restore.
	// Requiring both prevents reporting false success.
	accepted := result.State == models.RestoreStateRestored && status == models.EntitlementActive
	observability.RestoreAttempts.WithLabelValues(string(origin.Kind), fmt.Sprintf("%t", accepted)).Inc()

	if accepted {
		s.tracker.RestoreCompleted(ctx, origin)
		if origin.Kind == models.OriginInternal && origin.Surface != nil {
			origin.Surface.SetLoadingState(presentation.LoadingStateNone)
		}
		s.NotifyRestored(ctx, nil, nil, models.PurchaseOrigin{Kind: origin.Kind, Surface: origin.Surface})
		slog.Info("restore accepted", "origin", origin.Kind)
		return result
	}

	message := restoreDiagnostic(result, status)
	span.SetStatus(codes.Error, message)
	slog.Error("restore rejected", "origin", origin.Kind, "status", status, "reason", message)

	s.tracker.RestoreFailed(ctx, origin, message)
	if origin.Kind == models.OriginInternal && origin.Surface != nil {
		origin.Surface.SetLoadingState(presentation.LoadingStateNone)
		origin.Surface.PostMessage(presentation.Message{Kind: presentation.MessageRestoreFailed, Text: message})
	}
	s.presentAlert(origin, s.config.RestoreFailed.Title, s.config.RestoreFailed.Message, s.config.RestoreFailed.CloseLabel)

	return result
}

// NotifyRestored runs the post-restore notification path: a
// transaction-restore lifecycle event, a message to the paywall, and an
// optional dismissal when automatic dismissal is configured.
func (s *restoreService) NotifyRestored(ctx context.Context, product *models.Product, txn *models.TransactionRecord, origin models.PurchaseOrigin) {
	s.tracker.TransactionRestored(ctx, product, origin, txn)

	if origin.Kind != models.OriginInternal || origin.Surface == nil {
		return
	}
	origin.Surface.PostMessage(presentation.Message{Kind: presentation.MessageRestored})
	if s.config.AutomaticallyDismiss {
		origin.Surface.RequestDismiss(presentation.DismissRestored)
	}
}

func (s *restoreService) entitlementStatus(ctx context.Context) models.EntitlementStatus {
	status, err := s.entitlements.Status(ctx)
	if err != nil {
		slog.Warn("failed to read entitlement status", "error", err)
		return models.EntitlementUnknown
	}
	return status
}

func restoreDiagnostic(result models.RestoreResult, status models.EntitlementStatus) string {
	if result.State == models.RestoreStateRestored {
		return fmt.Sprintf("restore reported success but entitlement status is %q", status)
	}
	if result.Err != nil {
		return fmt.Sprintf("restore failed: %v", result.Err)
	}
	return "restore failed with no error from the store"
}

func (s *restoreService) presentAlert(origin models.RestoreOrigin, title, message, closeLabel string) {
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
