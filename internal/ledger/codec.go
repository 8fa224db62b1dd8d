package ledger

import (
	"encoding/json"
	"errors"
	"fmt"

	"water-dashboard/internal/models"

	"github.com/shopspring/decimal"
)

// ErrMalformed reports persisted data that does not have the ledger shape
var ErrMalformed = errors.New("malformed ledger data")

// storedOrder is the persisted form of an OrderRecord. Pointers let Decode
// tell a missing field from a zero value.
type storedOrder struct {
	ClientName  *string      `json:"clientName"`
	ProductName *string      `json:"productName"`
	Quantity    *int         `json:"quantity"`
	TotalPrice  *json.Number `json:"totalPrice"`
	Date        *string      `json:"date"`
}

// Encode serializes the whole ledger, newest first, as a JSON array
func Encode(records []models.OrderRecord) ([]byte, error) {
	stored := make([]storedOrder, 0, len(records))
	for i := range records {
		rec := records[i]
		total := json.Number(rec.TotalPrice.String())
		stored = append(stored, storedOrder{
			ClientName:  &rec.ClientName,
			ProductName: &rec.ProductName,
			Quantity:    &rec.Quantity,
			TotalPrice:  &total,
			Date:        &rec.PlacedAt,
		})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	return data, nil
}

// Decode parses data written by Encode. Any shape mismatch yields ErrMalformed.
func Decode(data []byte) ([]models.OrderRecord, error) {
	var stored []storedOrder
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	records := make([]models.OrderRecord, 0, len(stored))
	for i, s := range stored {
		if s.ClientName == nil || s.ProductName == nil || s.Quantity == nil || s.TotalPrice == nil || s.Date == nil {
			return nil, fmt.Errorf("%w: entry %d is missing fields", ErrMalformed, i)
		}
		if *s.Quantity < 1 {
			return nil, fmt.Errorf("%w: entry %d has quantity %d", ErrMalformed, i, *s.Quantity)
		}

		total, err := decimal.NewFromString(s.TotalPrice.String())
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d total: %v", ErrMalformed, i, err)
		}

		records = append(records, models.OrderRecord{
			ClientName:  *s.ClientName,
			ProductName: *s.ProductName,
			Quantity:    *s.Quantity,
			TotalPrice:  total,
			PlacedAt:    *s.Date,
		})
	}

	return records, nil
}
