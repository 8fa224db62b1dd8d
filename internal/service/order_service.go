package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"water-dashboard/internal/catalog"
	"water-dashboard/internal/ledger"
	"water-dashboard/internal/models"
	"water-dashboard/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrUnknownDelta is returned when a quantity step is not +1 or -1
var ErrUnknownDelta = errors.New("quantity can only change by +1 or -1")

// OrderEventPublisher publishes committed orders
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
}

// OrderService serializes the dashboard's access to the order ledger and
// derives the read models shown next to the order form.
type OrderService struct {
	mu        sync.Mutex
	catalog   *catalog.Provider
	ledger    *ledger.Ledger
	inbox     *Inbox
	publisher OrderEventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service. With a nil publisher order
// notifications go straight to the inbox instead of through the broker.
func NewOrderService(
	catalog *catalog.Provider,
	ledger *ledger.Ledger,
	inbox *Inbox,
	publisher OrderEventPublisher,
) *OrderService {
	s := &OrderService{
		catalog:   catalog,
		ledger:    ledger,
		inbox:     inbox,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
	ledger.SetPersistErrorHandler(s.notifyPersistFailure)
	return s
}

// DraftView is the order form state
type DraftView struct {
	ClientName  string          `json:"client_name"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
	CanSubmit   bool            `json:"can_submit"`
}

// Draft returns the current order form state
func (s *OrderService) Draft(ctx context.Context) DraftView {
	_, span := util.StartSpan(ctx, "OrderService.Draft")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftView()
}

// SetClient selects the client of the draft
func (s *OrderService) SetClient(ctx context.Context, name string) DraftView {
	_, span := util.StartSpan(ctx, "OrderService.SetClient")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.SetClient(name)
	return s.draftView()
}

// SetProduct selects the product of the draft
func (s *OrderService) SetProduct(ctx context.Context, name string) DraftView {
	_, span := util.StartSpan(ctx, "OrderService.SetProduct")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.SetProduct(name)
	return s.draftView()
}

// AdjustQuantity applies a +1 or -1 step to the draft quantity
func (s *OrderService) AdjustQuantity(ctx context.Context, delta int) (DraftView, error) {
	_, span := util.StartSpan(ctx, "OrderService.AdjustQuantity")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if delta != 1 && delta != -1 {
		return s.draftView(), ErrUnknownDelta
	}

	s.ledger.AdjustQuantity(delta)
	return s.draftView(), nil
}

// PlaceOrder submits the draft. It fails with ledger.ErrInvalidDraft while
// client or product is missing, and with ledger.ErrNotLoaded while the stored
// ledger cannot be read. An unloaded ledger is reloaded first.
func (s *OrderService) PlaceOrder(ctx context.Context) (models.OrderRecord, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	s.mu.Lock()
	s.ledger.Load(ctx)
	record, err := s.ledger.Submit(ctx)
	s.mu.Unlock()
	if err != nil {
		return models.OrderRecord{}, err
	}

	s.announce(ctx, record)
	return record, nil
}

// Orders returns the ledger, newest first
func (s *OrderService) Orders(ctx context.Context) []models.OrderRecord {
	_, span := util.StartSpan(ctx, "OrderService.Orders")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Orders()
}

// Ready reports whether the ledger has been rehydrated, retrying the load
// when an earlier read failed
func (s *OrderService) Ready(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Load(ctx)
	return s.ledger.Loaded()
}

// Products returns the product catalog
func (s *OrderService) Products() []models.CatalogProduct {
	return s.catalog.ListProducts()
}

// Inbox returns the notification inbox
func (s *OrderService) Inbox() *Inbox {
	return s.inbox
}

// announce publishes the order, or notifies directly when no broker is wired.
// Failures are logged and never undo the order.
func (s *OrderService) announce(ctx context.Context, record models.OrderRecord) {
	if s.publisher == nil {
		s.inbox.Push(models.NotificationOrderPlaced,
			OrderPlacedMessage(record.ClientName, record.ProductName, record.Quantity, record.TotalPrice))
		return
	}

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		ClientName:  record.ClientName,
		ProductName: record.ProductName,
		Quantity:    record.Quantity,
		TotalPrice:  record.TotalPrice,
		Date:        record.PlacedAt,
	}

	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
		s.inbox.Add(event.EventID, models.NotificationOrderPlaced,
			OrderPlacedMessage(record.ClientName, record.ProductName, record.Quantity, record.TotalPrice))
	}
}

func (s *OrderService) notifyPersistFailure(err error) {
	s.inbox.Push(models.NotificationPersistFailure, PersistFailureMessage(err))
}

// draftView must be called with s.mu held
func (s *OrderService) draftView() DraftView {
	d := s.ledger.Draft()
	return DraftView{
		ClientName:  d.ClientName,
		ProductName: d.ProductName,
		Quantity:    d.Quantity,
		Total:       s.ledger.CurrentTotal(),
		CanSubmit:   s.ledger.CanSubmit(),
	}
}
