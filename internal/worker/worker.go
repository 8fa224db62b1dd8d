package worker

import (
	"context"

	"water-dashboard/internal/broker"
	"water-dashboard/internal/models"
	"water-dashboard/internal/service"
	"water-dashboard/internal/util"

	"go.uber.org/zap"
)

// NotificationWorker turns order events from the broker into dashboard notifications
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	inbox        *service.Inbox
	logger       *zap.Logger
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, inbox *service.Inbox) *NotificationWorker {
	w := &NotificationWorker{
		consumer:     consumer,
		eventHandler: broker.NewEventHandler(),
		inbox:        inbox,
		logger:       util.GetLogger(),
	}
	w.eventHandler.OnOrderPlaced(w.HandleOrderPlaced)
	return w
}

// HandleOrderPlaced adds the bell entry for an order. Redelivered events are ignored.
func (w *NotificationWorker) HandleOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	_, span := util.StartSpan(ctx, "NotificationWorker.HandleOrderPlaced")
	defer span.End()

	_, added := w.inbox.Add(event.EventID, models.NotificationOrderPlaced,
		service.OrderPlacedMessage(event.ClientName, event.ProductName, event.Quantity, event.TotalPrice))
	if !added {
		w.logger.Info("Event already processed", zap.String("event_id", event.EventID))
	}
	return nil
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	w.logger.Info("Stopping notification worker")
	return w.consumer.Close()
}
