package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Money is written as a JSON number, the same shape the stored ledger uses
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// CatalogClient represents a client offered by the order form
type CatalogClient struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// FirstName returns the first whitespace-separated part of the name
func (c CatalogClient) FirstName() string {
	parts := strings.Fields(c.Name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// LastName returns everything after the first name
func (c CatalogClient) LastName() string {
	parts := strings.Fields(c.Name)
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], " ")
}

// CatalogProduct represents a product with its unit price in Bs
type CatalogProduct struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderDraft is the order being assembled in the form
type OrderDraft struct {
	ClientName  string `json:"client_name"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// EmptyDraft returns the draft a session starts with
func EmptyDraft() OrderDraft {
	return OrderDraft{Quantity: 1}
}

// OrderRecord is a committed order. Records are never modified after creation.
type OrderRecord struct {
	ClientName  string          `json:"clientName"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	PlacedAt    string          `json:"date"`
}

// DateLayout is the layout of OrderRecord.PlacedAt (dd/mm/yyyy)
const DateLayout = "02/01/2006"

// StatCard is one of the summary cards on top of the dashboard
type StatCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
	Trend string `json:"trend"`
}

// ChartPoint is one group of the dashboard bar chart
type ChartPoint struct {
	Name   string `json:"name"`
	Value1 int    `json:"value1"`
	Value2 int    `json:"value2"`
}

// ClientActivity is the last order shown next to a client
type ClientActivity struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// ClientSummary is a row of the dashboard client list
type ClientSummary struct {
	Name         string         `json:"name"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	ImageURL     string         `json:"image_url,omitempty"`
	LastActivity ClientActivity `json:"last_activity"`
	OrderCount   int            `json:"order_count"`
}

// Notification is an entry of the dashboard bell
type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification kinds
const (
	NotificationOrderPlaced    = "ORDER_PLACED"
	NotificationPersistFailure = "PERSIST_FAILURE"
)
