package service

import (
	"context"
	"sync"

	"github.com/appfuel/purchasekit/internal/models"
	"github.com/appfuel/purchasekit/internal/presentation"
	"github.com/stretchr/testify/mock"
)

type mockProductStore struct {
	mock.Mock
}

func (m *mockProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product := args.Get(0); product != nil {
		return product.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockEligibility struct {
	mock.Mock
}

func (m *mockEligibility) IsFreeTrialAvailable(ctx context.Context, product *models.Product) (bool, error) {
	args := m.Called(ctx, product)
	return args.Bool(0), args.Error(1)
}

type mockPurchaseBackend struct {
	mock.Mock
}

func (m *mockPurchaseBackend) Purchase(ctx context.Context, product *models.Product, external bool) models.PurchaseResult {
	args := m.Called(ctx, product, external)
	return args.Get(0).(models.PurchaseResult)
}

type mockRestoreBackend struct {
	mock.Mock
}

func (m *mockRestoreBackend) RestorePurchases(ctx context.Context, external bool) models.RestoreResult {
	args := m.Called(ctx, external)
	return args.Get(0).(models.RestoreResult)
}

type mockController struct {
	mock.Mock
}

func (m *mockController) Purchase(ctx context.Context, product *models.Product) models.PurchaseResult {
	args := m.Called(ctx, product)
	return args.Get(0).(models.PurchaseResult)
}

func (m *mockController) RestorePurchases(ctx context.Context) models.RestoreResult {
	args := m.Called(ctx)
	return args.Get(0).(models.RestoreResult)
}

type mockCoordinator struct {
	mock.Mock
}

func (m *mockCoordinator) BeginPurchase(ctx context.Context, productID string, external bool) error {
	args := m.Called(ctx, productID, external)
	return args.Error(0)
}

func (m *mockCoordinator) LatestTransaction(ctx context.Context, productID string) (*models.TransactionRecord, error) {
	args := m.Called(ctx, productID)
	if record := args.Get(0); record != nil {
		return record.(*models.TransactionRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPurchased struct {
	mock.Mock
}

func (m *mockPurchased) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockEntitlements struct {
	mock.Mock
}

func (m *mockEntitlements) Status(ctx context.Context) (models.EntitlementStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.EntitlementStatus), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyRestored(ctx context.Context, product *models.Product, txn *models.TransactionRecord, origin models.PurchaseOrigin) {
	m.Called(ctx, product, txn, origin)
}

// recordingQueue records enqueue/flush calls in order for event assertions.
type recordingQueue struct {
	mu     sync.Mutex
	ops    []string
	events []models.LifecycleEvent
}

func (q *recordingQueue) Enqueue(_ context.Context, event models.LifecycleEvent) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ops = append(q.ops, "enqueue:"+string(event.Type))
	q.events = append(q.events, event)
	return nil
}

func (q *recordingQueue) Flush(_ context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ops = append(q.ops, "flush")
	return nil
}

func (q *recordingQueue) opsSnapshot() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.ops...)
}

func (q *recordingQueue) eventsSnapshot() []models.LifecycleEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.LifecycleEvent(nil), q.events...)
}

func (q *recordingQueue) countByType(eventType models.LifecycleEventType) int {
	count := 0
	for _, event := range q.eventsSnapshot() {
		if event.Type == eventType {
			count++
		}
	}
	return count
}

type alertCall struct {
	title, message, closeLabel string
}

// fakeSurface is an in-memory paywall surface recording every signal.
type fakeSurface struct {
	mu            sync.Mutex
	snapshot      presentation.Snapshot
	loadingStates []presentation.LoadingState
	messages      []presentation.Message
	alerts        []alertCall
	dismissals    []presentation.DismissResult
}

func (f *fakeSurface) SetLoadingState(state presentation.LoadingState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadingStates = append(f.loadingStates, state)
}

func (f *fakeSurface) PostMessage(msg presentation.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
}

func (f *fakeSurface) PresentAlert(title, message, closeLabel string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, alertCall{title, message, closeLabel})
}

func (f *fakeSurface) RequestDismiss(result presentation.DismissResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dismissals = append(f.dismissals, result)
}

func (f *fakeSurface) Snapshot() presentation.Snapshot {
	return f.snapshot
}

// fakeAlerts is the top-most UI context used by external-origin alerts.
type fakeAlerts struct {
	mu    sync.Mutex
	calls []alertCall
}

func (f *fakeAlerts) PresentAlert(title, message, closeLabel string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, alertCall{title, message, closeLabel})
}
