package service

import (
	"bytes"
	"context"
	"fmt"

	"water-dashboard/internal/models"
	"water-dashboard/internal/util"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the worksheet name of the orders workbook
const ExportSheet = "Pedidos"

// ExportOrders returns the ledger as an XLSX workbook
func (s *OrderService) ExportOrders(ctx context.Context) ([]byte, error) {
	_, span := util.StartSpan(ctx, "OrderService.ExportOrders")
	defer span.End()

	return OrdersWorkbook(s.Orders(ctx))
}

// OrdersWorkbook writes one row per order, newest first, under a header row
func OrdersWorkbook(records []models.OrderRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), ExportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Cliente", "Producto", "Cantidad", "Total (Bs)", "Fecha"}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}

		row := []interface{}{
			rec.ClientName,
			rec.ProductName,
			rec.Quantity,
			rec.TotalPrice.InexactFloat64(),
			rec.PlacedAt,
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
