package service

import (
	"fmt"
	"sync"
	"time"

	"water-dashboard/internal/models"
	"water-dashboard/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// seenIDsLimit bounds the ids remembered for deduplication after their
// notification has been evicted
const seenIDsLimit = 1024

// Inbox is the bounded, newest-first list behind the dashboard bell
type Inbox struct {
	mu    sync.Mutex
	limit int
	items []models.Notification
	now   func() time.Time

	seen      map[string]struct{}
	seenOrder []string
}

// NewInbox creates an inbox keeping at most limit notifications
func NewInbox(limit int) *Inbox {
	if limit < 1 {
		limit = 1
	}
	return &Inbox{limit: limit, now: time.Now, seen: make(map[string]struct{})}
}

// Push adds a notification with a fresh id
func (i *Inbox) Push(kind, message string) models.Notification {
	n, _ := i.Add(uuid.New().String(), kind, message)
	return n
}

// Add adds a notification unless its id was added before. Ids stay known
// after their notification is evicted, up to the last seenIDsLimit ids.
// It reports whether the notification was added.
func (i *Inbox) Add(id, kind, message string) (models.Notification, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, dup := i.seen[id]; dup {
		for _, existing := range i.items {
			if existing.ID == id {
				return existing, false
			}
		}
		return models.Notification{ID: id, Kind: kind, Message: message}, false
	}
	i.remember(id)

	n := models.Notification{
		ID:        id,
		Kind:      kind,
		Message:   message,
		CreatedAt: i.now(),
	}

	items := make([]models.Notification, 0, len(i.items)+1)
	items = append(items, n)
	items = append(items, i.items...)
	if len(items) > i.limit {
		items = items[:i.limit]
	}
	i.items = items

	util.NotificationsPushedTotal.WithLabelValues(kind).Inc()
	return n, true
}

// remember must be called with i.mu held
func (i *Inbox) remember(id string) {
	i.seen[id] = struct{}{}
	i.seenOrder = append(i.seenOrder, id)
	if len(i.seenOrder) > seenIDsLimit {
		delete(i.seen, i.seenOrder[0])
		i.seenOrder = i.seenOrder[1:]
	}
}

// List returns the notifications, newest first
func (i *Inbox) List() []models.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]models.Notification(nil), i.items...)
}

// UnreadCount returns the badge count
func (i *Inbox) UnreadCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	count := 0
	for _, n := range i.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkAllRead clears the badge and returns how many notifications changed
func (i *Inbox) MarkAllRead() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	changed := 0
	for idx := range i.items {
		if !i.items[idx].Read {
			i.items[idx].Read = true
			changed++
		}
	}
	return changed
}

// OrderPlacedMessage is the bell text for a committed order
func OrderPlacedMessage(client, product string, quantity int, total decimal.Decimal) string {
	return fmt.Sprintf("Nuevo pedido de %s: %d x %s (%s Bs)", client, quantity, product, total.String())
}

// PersistFailureMessage is the bell text for a ledger write that failed
func PersistFailureMessage(err error) string {
	return fmt.Sprintf("El pedido se registró pero no se pudo guardar: %v", err)
}
