package catalog

import (
	"testing"

	"water-dashboard/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceOf(t *testing.T) {
	p := New()

	assert.True(t, decimal.NewFromInt(15).Equal(p.PriceOf("Botellón de 20 Lts")))
	assert.True(t, decimal.RequireFromString("18.5").Equal(p.PriceOf("Paquete de 6 botellas de 2 Lts")))
	assert.True(t, p.PriceOf("").IsZero())
	assert.True(t, p.PriceOf("Botellón de 50 Lts").IsZero())
	assert.True(t, p.PriceOf("botellón de 20 lts").IsZero(), "lookup is case sensitive")
}

func TestPriceOfFirstMatchWins(t *testing.T) {
	p := NewWith(nil, []models.CatalogProduct{
		{ID: 1, Name: "Agua", UnitPrice: decimal.NewFromInt(3)},
		{ID: 2, Name: "Agua", UnitPrice: decimal.NewFromInt(7)},
	})

	assert.True(t, decimal.NewFromInt(3).Equal(p.PriceOf("Agua")))
}

func TestListsAreStable(t *testing.T) {
	p := New()

	clients := p.ListClients()
	require.Len(t, clients, 4)
	assert.Equal(t, "Daniela Ayala", clients[0].Name)

	clients[0].Name = "changed"
	assert.Equal(t, "Daniela Ayala", p.ListClients()[0].Name)

	products := p.ListProducts()
	assert.Equal(t, products, p.ListProducts())

	ids := map[int64]bool{}
	for _, product := range products {
		assert.False(t, ids[product.ID], "duplicate product id %d", product.ID)
		ids[product.ID] = true
		assert.True(t, product.UnitPrice.IsPositive(), product.Name)
	}
}

func TestSampleChart(t *testing.T) {
	chart := SampleChart()
	require.Len(t, chart, 5)
	assert.Equal(t, models.ChartPoint{Name: "3", Value1: 300, Value2: 400}, chart[2])
}
