package ledger

import (
	"encoding/json"
	"testing"

	"water-dashboard/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripEmpty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	records, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRoundTripEntries(t *testing.T) {
	records := []models.OrderRecord{
		{ClientName: "Julio Espinoza", ProductName: "Paquete de 6 botellas de 2 Lts", Quantity: 3, TotalPrice: decimal.RequireFromString("55.5"), PlacedAt: "21/01/2023"},
		{ClientName: "Daniela Ayala", ProductName: "Botellón de 20 Lts", Quantity: 3, TotalPrice: decimal.NewFromInt(45), PlacedAt: "20/01/2023"},
		{ClientName: "", ProductName: "Botellón de 10 Lts", Quantity: 1, TotalPrice: decimal.Zero, PlacedAt: "19/01/2023"},
	}

	data, err := Encode(records)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assertSameOrders(t, records, decoded)
}

func TestEncodeFieldNames(t *testing.T) {
	data, err := Encode([]models.OrderRecord{
		{ClientName: "Daniela Ayala", ProductName: "Botellón de 20 Lts", Quantity: 3, TotalPrice: decimal.NewFromInt(45), PlacedAt: "20/01/2023"},
	})
	require.NoError(t, err)

	assert.JSONEq(t,
		`[{"clientName":"Daniela Ayala","productName":"Botellón de 20 Lts","quantity":3,"totalPrice":45,"date":"20/01/2023"}]`,
		string(data))

	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "45", string(raw[0]["totalPrice"]), "totals are stored as JSON numbers")
}

func TestDecodeAcceptsQuotedTotals(t *testing.T) {
	records, err := Decode([]byte(`[{"clientName":"c","productName":"p","quantity":2,"totalPrice":"30.5","date":"d"}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, decimal.RequireFromString("30.5").Equal(records[0].TotalPrice))
}

func TestDecodeNullIsEmpty(t *testing.T) {
	records, err := Decode([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeMalformed(t *testing.T) {
	for _, input := range []string{
		``,
		`"orders"`,
		`[null]`,
		`[{"clientName":"c","productName":"p","quantity":1,"totalPrice":"abc","date":"d"}]`,
		`[{"clientName":"c","productName":"p","quantity":-2,"totalPrice":1,"date":"d"}]`,
		`[{"clientName":"c","productName":"p","quantity":1.5,"totalPrice":1,"date":"d"}]`,
	} {
		_, err := Decode([]byte(input))
		assert.ErrorIs(t, err, ErrMalformed, input)
	}
}
