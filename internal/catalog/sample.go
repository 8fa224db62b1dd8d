package catalog

import (
	"water-dashboard/internal/models"

	"github.com/shopspring/decimal"
)

// Baselines of the summary cards. Orders and income grow with the ledger.
const (
	SampleNewClients    = 18
	SampleActiveLoans   = 25
	SampleOrdersTotal   = 1236
	SampleTrend         = "+8.2%"
	SampleActivityDate  = "20/01/2023"
	SampleActivityTotal = 100
)

// SampleIncomeTotal is the income baseline in Bs
var SampleIncomeTotal = decimal.NewFromInt(1783)

// SampleChart returns the bar chart series shown on the dashboard
func SampleChart() []models.ChartPoint {
	return []models.ChartPoint{
		{Name: "1", Value1: 1500, Value2: 900},
		{Name: "2", Value1: 1400, Value2: 900},
		{Name: "3", Value1: 300, Value2: 400},
		{Name: "4", Value1: 900, Value2: 1400},
		{Name: "5", Value1: 1400, Value2: 1600},
	}
}

// SampleActivity is shown for clients without orders in the ledger
func SampleActivity() models.ClientActivity {
	return models.ClientActivity{
		Date:   SampleActivityDate,
		Amount: decimal.NewFromInt(SampleActivityTotal),
	}
}
