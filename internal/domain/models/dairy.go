package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money flowing in (sale) from money flowing out (purchase).
type TransactionType string

const (
	TransactionSale     TransactionType = "sale"
	TransactionPurchase TransactionType = "purchase"
)

// MilkTransaction captures one milk sale or purchase.
type MilkTransaction struct {
	ID            string
	Type          TransactionType
	Date          time.Time
	Quantity      decimal.Decimal
	PricePerLiter decimal.Decimal
	TotalAmount   decimal.Decimal
	Buyer         string
	BuyerPhone    string
	Seller        string
	SellerPhone   string
	Notes         string
}

// NormalizedBuyerPhone is the join key against the user registry.
func (t MilkTransaction) NormalizedBuyerPhone() string {
	return NormalizeMobile(t.BuyerPhone)
}

// CharaPurchase captures a fodder purchase.
type CharaPurchase struct {
	ID          string
	Date        time.Time
	Quantity    decimal.Decimal
	PricePerKg  decimal.Decimal
	TotalAmount decimal.Decimal
	Supplier    string
	Notes       string
}

// AnimalTransaction captures a livestock sale or purchase.
type AnimalTransaction struct {
	ID          string
	Type        TransactionType
	Date        time.Time
	AnimalName  string
	AnimalType  string
	Price       decimal.Decimal
	BuyerPhone  string
	SellerPhone string
}

// NormalizeMobile trims surrounding whitespace from a phone number.
func NormalizeMobile(mobile string) string {
	return strings.TrimSpace(mobile)
}
