// Package ledger implements the order form workflow: the pending draft, its
// price, and the append-only newest-first ledger of committed orders that is
// persisted as a whole under a single storage key.
package ledger

import (
	"context"
	"errors"
	"time"

	"water-dashboard/internal/models"
	"water-dashboard/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StorageKey is the durable storage slot holding the serialized ledger
const StorageKey = "orders"

var (
	// ErrInvalidDraft is returned by Submit when client or product is missing
	ErrInvalidDraft = errors.New("order draft is incomplete")
	// ErrNotLoaded is returned by Submit before Load has completed
	ErrNotLoaded = errors.New("ledger has not been loaded")
)

// Storage is a synchronous key-value slot store. Get reports found=false for
// a key that was never written.
type Storage interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// PriceLookup resolves a product name to its unit price, zero when unknown
type PriceLookup interface {
	PriceOf(productName string) decimal.Decimal
}

// Option configures a Ledger
type Option func(*Ledger)

// WithClock overrides the time source used for PlacedAt
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithPersistErrorHandler registers a callback for failed ledger writes
func WithPersistErrorHandler(fn func(error)) Option {
	return func(l *Ledger) {
		l.onPersistError = fn
	}
}

// WithLogger overrides the global logger
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// Ledger owns the order draft and the committed orders of one session.
// It is not safe for concurrent use.
type Ledger struct {
	storage        Storage
	prices         PriceLookup
	now            func() time.Time
	onPersistError func(error)
	logger         *zap.Logger

	draft   models.OrderDraft
	records []models.OrderRecord
	loaded  bool
}

// New creates an empty ledger. Load must run before orders can be submitted.
func New(storage Storage, prices PriceLookup, opts ...Option) *Ledger {
	l := &Ledger{
		storage: storage,
		prices:  prices,
		now:     time.Now,
		logger:  util.GetLogger(),
		draft:   models.EmptyDraft(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open creates a ledger and rehydrates it from storage
func Open(ctx context.Context, storage Storage, prices PriceLookup, opts ...Option) *Ledger {
	l := New(storage, prices, opts...)
	l.Load(ctx)
	return l
}

// SetPersistErrorHandler replaces the callback for failed ledger writes
func (l *Ledger) SetPersistErrorHandler(fn func(error)) {
	l.onPersistError = fn
}

// Load replaces the in-memory ledger with the persisted one. Absent or
// malformed data leaves the ledger empty. A storage read error leaves the
// ledger unloaded so Submit keeps refusing orders and Load can be retried;
// the stored slot is never overwritten without having been read. Once a load
// succeeds further calls have no effect. Load never writes back.
func (l *Ledger) Load(ctx context.Context) {
	if l.loaded {
		l.logger.Debug("Ledger already loaded, ignoring reload")
		return
	}

	data, found, err := l.storage.Get(ctx, StorageKey)
	if err != nil {
		l.logger.Warn("Failed to read persisted ledger, will retry", zap.Error(err))
		util.LedgerLoadsTotal.WithLabelValues("read_error").Inc()
		return
	}
	l.loaded = true

	if !found {
		util.LedgerLoadsTotal.WithLabelValues("absent").Inc()
		return
	}

	records, err := Decode(data)
	if err != nil {
		l.logger.Warn("Persisted ledger is malformed, starting empty", zap.Error(err))
		util.LedgerLoadsTotal.WithLabelValues("malformed").Inc()
		return
	}

	l.records = records
	util.LedgerLoadsTotal.WithLabelValues("restored").Inc()
	l.logger.Info("Ledger restored", zap.Int("orders", len(records)))
}

// Loaded reports whether a Load has read storage successfully
func (l *Ledger) Loaded() bool {
	return l.loaded
}

// Draft returns the current draft
func (l *Ledger) Draft() models.OrderDraft {
	return l.draft
}

// Orders returns the committed orders, newest first
func (l *Ledger) Orders() []models.OrderRecord {
	return append([]models.OrderRecord(nil), l.records...)
}

// Len returns the number of committed orders
func (l *Ledger) Len() int {
	return len(l.records)
}

// SetClient stores the selected client name as given
func (l *Ledger) SetClient(name string) {
	l.draft.ClientName = name
}

// SetProduct stores the selected product name as given
func (l *Ledger) SetProduct(name string) {
	l.draft.ProductName = name
}

// AdjustQuantity adds delta to the quantity, never going below 1
func (l *Ledger) AdjustQuantity(delta int) {
	q := l.draft.Quantity + delta
	if q < 1 {
		q = 1
	}
	l.draft.Quantity = q
}

// CurrentTotal returns the unit price of the selected product times the quantity
func (l *Ledger) CurrentTotal() decimal.Decimal {
	return l.prices.PriceOf(l.draft.ProductName).Mul(decimal.NewFromInt(int64(l.draft.Quantity)))
}

// CanSubmit reports whether both client and product are selected
func (l *Ledger) CanSubmit() bool {
	return l.draft.ClientName != "" && l.draft.ProductName != ""
}

// Submit commits the draft as the newest order, resets the draft and writes
// the whole ledger to storage. A failed write is reported to the persist
// error handler but does not undo the commit.
func (l *Ledger) Submit(ctx context.Context) (models.OrderRecord, error) {
	if !l.loaded {
		util.OrdersRejectedTotal.WithLabelValues("not_loaded").Inc()
		return models.OrderRecord{}, ErrNotLoaded
	}
	if !l.CanSubmit() {
		util.OrdersRejectedTotal.WithLabelValues("invalid_draft").Inc()
		return models.OrderRecord{}, ErrInvalidDraft
	}

	record := models.OrderRecord{
		ClientName:  l.draft.ClientName,
		ProductName: l.draft.ProductName,
		Quantity:    l.draft.Quantity,
		TotalPrice:  l.CurrentTotal(),
		PlacedAt:    l.now().Local().Format(models.DateLayout),
	}

	records := make([]models.OrderRecord, 0, len(l.records)+1)
	records = append(records, record)
	l.records = append(records, l.records...)
	l.draft = models.EmptyDraft()

	util.OrdersPlacedTotal.Inc()
	util.OrdersRevenueTotal.Add(record.TotalPrice.InexactFloat64())
	l.logger.Info("Order placed",
		zap.String("client", record.ClientName),
		zap.String("product", record.ProductName),
		zap.Int("quantity", record.Quantity),
		zap.String("total", record.TotalPrice.String()))

	l.persist(ctx)

	return record, nil
}

// persist writes the whole ledger under StorageKey
func (l *Ledger) persist(ctx context.Context) {
	start := time.Now()
	defer func() {
		util.LedgerPersistLatency.Observe(time.Since(start).Seconds())
	}()

	data, err := Encode(l.records)
	if err == nil {
		err = l.storage.Set(ctx, StorageKey, data)
	}
	if err == nil {
		return
	}

	util.LedgerPersistFailuresTotal.Inc()
	l.logger.Error("Failed to persist ledger", zap.Int("orders", len(l.records)), zap.Error(err))
	if l.onPersistError != nil {
		l.onPersistError(err)
	}
}
