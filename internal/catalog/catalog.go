// Package catalog holds the fixed reference data the order form is built from.
package catalog

import (
	"water-dashboard/internal/models"

	"github.com/shopspring/decimal"
)

// Provider serves the client and product catalog. The data is fixed for the
// lifetime of the process and every accessor returns a fresh copy.
type Provider struct {
	clients  []models.CatalogClient
	products []models.CatalogProduct
}

// New creates a provider with the default catalog
func New() *Provider {
	return NewWith(defaultClients(), defaultProducts())
}

// NewWith creates a provider over the given data
func NewWith(clients []models.CatalogClient, products []models.CatalogProduct) *Provider {
	return &Provider{
		clients:  append([]models.CatalogClient(nil), clients...),
		products: append([]models.CatalogProduct(nil), products...),
	}
}

// ListClients returns the catalog clients in display order
func (p *Provider) ListClients() []models.CatalogClient {
	return append([]models.CatalogClient(nil), p.clients...)
}

// ListProducts returns the catalog products in display order
func (p *Provider) ListProducts() []models.CatalogProduct {
	return append([]models.CatalogProduct(nil), p.products...)
}

// PriceOf returns the unit price of the first product named productName,
// or zero when there is no such product.
func (p *Provider) PriceOf(productName string) decimal.Decimal {
	for _, product := range p.products {
		if product.Name == productName {
			return product.UnitPrice
		}
	}
	return decimal.Zero
}

func defaultClients() []models.CatalogClient {
	return []models.CatalogClient{
		{Name: "Daniela Ayala", ImageURL: "https://randomuser.me/api/portraits/women/1.jpg"},
		{Name: "Rubén González", ImageURL: "https://randomuser.me/api/portraits/men/1.jpg"},
		{Name: "Mariana Reyes", ImageURL: "https://randomuser.me/api/portraits/women/2.jpg"},
		{Name: "Julio Espinoza", ImageURL: "https://randomuser.me/api/portraits/men/2.jpg"},
	}
}

func defaultProducts() []models.CatalogProduct {
	return []models.CatalogProduct{
		{ID: 1, Name: "Botellón de 20 Lts", UnitPrice: decimal.NewFromInt(15)},
		{ID: 2, Name: "Botellón de 10 Lts", UnitPrice: decimal.NewFromInt(10)},
		{ID: 3, Name: "Paquete de 6 botellas de 2 Lts", UnitPrice: decimal.RequireFromString("18.50")},
	}
}
