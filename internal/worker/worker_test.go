package worker

import (
	"context"
	"testing"

	"water-dashboard/internal/models"
	"water-dashboard/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleOrderPlaced(t *testing.T) {
	inbox := service.NewInbox(10)
	w := NewNotificationWorker(nil, inbox)

	event := &models.OrderPlacedEvent{
		BaseEvent:   models.BaseEvent{EventID: "evt-7", EventType: models.EventTypeOrderPlaced},
		ClientName:  "Mariana Reyes",
		ProductName: "Botellón de 20 Lts",
		Quantity:    2,
		TotalPrice:  decimal.NewFromInt(30),
	}

	require.NoError(t, w.HandleOrderPlaced(context.Background(), event))
	require.NoError(t, w.HandleOrderPlaced(context.Background(), event))

	items := inbox.List()
	require.Len(t, items, 1)
	assert.Equal(t, "evt-7", items[0].ID)
	assert.Equal(t, "Nuevo pedido de Mariana Reyes: 2 x Botellón de 20 Lts (30 Bs)", items[0].Message)
}
