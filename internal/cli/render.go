package cli

import (
	"fmt"
	"strings"

	"water-dashboard/internal/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#2563EB")
	dim    = lipgloss.Color("#64748B")
	faint  = lipgloss.Color("#E2E8F0")
	money  = lipgloss.Color("#059669")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headStyle   = lipgloss.NewStyle().Bold(true).Foreground(dim)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	moneyStyle  = lipgloss.NewStyle().Foreground(money)
	separator   = lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("─", 72))
	placedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)
)

// RenderOrders renders the ledger as a table, newest first
func RenderOrders(orders []models.OrderRecord) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Pedidos"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d en total", len(orders))))
	b.WriteString("\n")
	b.WriteString(separator + "\n")

	if len(orders) == 0 {
		b.WriteString(dimStyle.Render("Sin pedidos todavía") + "\n")
		return b.String()
	}

	b.WriteString(headStyle.Render(fmt.Sprintf("%-12s %-22s %-28s %5s %10s", "Fecha", "Cliente", "Producto", "Cant.", "Total")))
	b.WriteString("\n")
	for _, o := range orders {
		b.WriteString(fmt.Sprintf("%-12s %-22s %-28s %5d ", o.PlacedAt, o.ClientName, o.ProductName, o.Quantity))
		b.WriteString(moneyStyle.Render(fmt.Sprintf("%7s Bs", o.TotalPrice.String())))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPlaced renders the confirmation of a placed order
func RenderPlaced(o models.OrderRecord) string {
	body := fmt.Sprintf("%s\n%s\n%d x %s\n%s",
		titleStyle.Render("Pedido realizado"),
		o.ClientName,
		o.Quantity, o.ProductName,
		moneyStyle.Render(o.TotalPrice.String()+" Bs"))
	return placedStyle.Render(body) + "\n"
}

// RenderCatalog renders clients and products
func RenderCatalog(clients []models.CatalogClient, products []models.CatalogProduct) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Clientes") + "\n")
	for _, c := range clients {
		b.WriteString(fmt.Sprintf("  %s %s\n", c.FirstName(), dimStyle.Render(c.LastName())))
	}

	b.WriteString("\n" + titleStyle.Render("Productos") + "\n")
	for _, p := range products {
		b.WriteString(fmt.Sprintf("  %d  %-32s ", p.ID, p.Name))
		b.WriteString(moneyStyle.Render(p.UnitPrice.String() + " Bs"))
		b.WriteString("\n")
	}
	return b.String()
}
