package models

import "time"

// TransactionFilter selects milk transactions by type and an inclusive
// [From, To] date range, optionally restricted to one normalized buyer mobile.
// An empty Type matches both sales and purchases.
type TransactionFilter struct {
	Type        TransactionType
	From        time.Time
	To          time.Time
	BuyerMobile string
}

// Matches reports whether tx satisfies the filter. Buyer matching is exact
// after trimming the stored phone.
func (f TransactionFilter) Matches(tx MilkTransaction) bool {
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if tx.Date.Before(f.From) || tx.Date.After(f.To) {
		return false
	}
	if f.BuyerMobile != "" && tx.NormalizedBuyerPhone() != f.BuyerMobile {
		return false
	}
	return true
}
