package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The mobile client reads amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// SalesStat is a quantity/amount/count triple for a range of sale transactions.
type SalesStat struct {
	Quantity     decimal.Decimal `json:"quantity"`
	Amount       decimal.Decimal `json:"amount"`
	Transactions int64           `json:"transactions"`
}

// TrendBucket is one time unit of a trend series.
type TrendBucket struct {
	Date          string          `json:"date"`
	Label         string          `json:"label"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// TrendMetadata describes the window a trend series covers.
type TrendMetadata struct {
	Period      string `json:"period"`
	PeriodLabel string `json:"periodLabel"`
	Unit        string `json:"unit"`
	Length      int    `json:"length"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// ExpenseBreakdown splits the daily expenses total by source.
type ExpenseBreakdown struct {
	CharaPurchases decimal.Decimal `json:"charaPurchases"`
	MilkPurchases  decimal.Decimal `json:"milkPurchases"`
}

// BuyerConsumption is one row of the month-to-date buyer ranking.
type BuyerConsumption struct {
	UserID        string          `json:"userId,omitempty"`
	Name          string          `json:"name"`
	Mobile        string          `json:"mobile"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AverageRate   decimal.Decimal `json:"averageRate"`
}

// SelectedBuyer is the drill-down block for a single requested buyer.
type SelectedBuyer struct {
	UserID       string          `json:"userId,omitempty"`
	Name         string          `json:"name"`
	Mobile       string          `json:"mobile"`
	DailySales   SalesStat       `json:"dailySales"`
	MonthlySales SalesStat       `json:"monthlySales"`
	Trend        []TrendBucket   `json:"trend"`
	AverageRate  decimal.Decimal `json:"averageRate"`
}

// DashboardSummary is the consolidated dashboard payload. It is built per request.
type DashboardSummary struct {
	GeneratedAt           time.Time          `json:"generatedAt"`
	DailyExpenses         decimal.Decimal    `json:"dailyExpenses"`
	DailyExpenseBreakdown ExpenseBreakdown   `json:"dailyExpenseBreakdown"`
	DailySales            SalesStat          `json:"dailySales"`
	MonthlySales          SalesStat          `json:"monthlySales"`
	UserConsumptions      []BuyerConsumption `json:"userConsumptions"`
	SalesTrend            []TrendBucket      `json:"salesTrend"`
	SelectedBuyer         *SelectedBuyer     `json:"selectedBuyer"`
	TrendMetadata         TrendMetadata      `json:"trendMetadata"`
}

// ProfitLossDetails itemizes the profit & loss totals.
type ProfitLossDetails struct {
	MilkSales       decimal.Decimal `json:"milkSales"`
	AnimalSales     decimal.Decimal `json:"animalSales"`
	MilkPurchases   decimal.Decimal `json:"milkPurchases"`
	AnimalPurchases decimal.Decimal `json:"animalPurchases"`
	CharaPurchases  decimal.Decimal `json:"charaPurchases"`
	OtherExpenses   decimal.Decimal `json:"otherExpenses"`
}

// ProfitLossReport summarizes revenue against expenses for a period.
type ProfitLossReport struct {
	Period        string            `json:"period"`
	StartDate     string            `json:"startDate"`
	EndDate       string            `json:"endDate"`
	TotalRevenue  decimal.Decimal   `json:"totalRevenue"`
	TotalExpenses decimal.Decimal   `json:"totalExpenses"`
	Profit        decimal.Decimal   `json:"profit"`
	Loss          decimal.Decimal   `json:"loss"`
	Details       ProfitLossDetails `json:"details"`
}

// BuyerPurchaseRow is one sale line of the buyer consumption export.
type BuyerPurchaseRow struct {
	Buyer         Buyer
	Date          time.Time
	Quantity      decimal.Decimal
	PricePerLiter decimal.Decimal
	TotalAmount   decimal.Decimal
}

// DailySnapshot is the nightly summary persisted to MongoDB.
type DailySnapshot struct {
	Date               string    `bson:"date" json:"date"`
	DailyExpenses      float64   `bson:"daily_expenses" json:"daily_expenses"`
	DailySalesQuantity float64   `bson:"daily_sales_quantity" json:"daily_sales_quantity"`
	DailySalesAmount   float64   `bson:"daily_sales_amount" json:"daily_sales_amount"`
	MonthlySalesAmount float64   `bson:"monthly_sales_amount" json:"monthly_sales_amount"`
	Transactions       int64     `bson:"transactions" json:"transactions"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}
