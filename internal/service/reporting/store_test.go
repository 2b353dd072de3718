package reporting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// memoryStore is an in-memory Store. Errors, when set, are returned by the
// matching reader.
type memoryStore struct {
	milk    []models.MilkTransaction
	chara   []models.CharaPurchase
	animals []models.AnimalTransaction
	users   []models.User

	milkErr   error
	charaErr  error
	animalErr error
	userErr   error

	milkCalls int
}

func (m *memoryStore) FindMilkTransactions(_ context.Context, filter models.TransactionFilter) ([]models.MilkTransaction, error) {
	m.milkCalls++
	if m.milkErr != nil {
		return nil, m.milkErr
	}
	var out []models.MilkTransaction
	for _, tx := range m.milk {
		if filter.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *memoryStore) FindCharaPurchases(_ context.Context, from, to time.Time) ([]models.CharaPurchase, error) {
	if m.charaErr != nil {
		return nil, m.charaErr
	}
	var out []models.CharaPurchase
	for _, p := range m.chara {
		if !p.Date.Before(from) && !p.Date.After(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryStore) FindAnimalTransactions(_ context.Context, from, to time.Time) ([]models.AnimalTransaction, error) {
	if m.animalErr != nil {
		return nil, m.animalErr
	}
	var out []models.AnimalTransaction
	for _, a := range m.animals {
		if !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memoryStore) FindUserByMobile(_ context.Context, mobile string) (*models.User, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	for _, u := range m.users {
		if models.NormalizeMobile(u.Mobile) == mobile {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) FindUsersByMobiles(_ context.Context, mobiles []string) ([]models.User, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	wanted := make(map[string]bool, len(mobiles))
	for _, mobile := range mobiles {
		wanted[mobile] = true
	}
	var out []models.User
	for _, u := range m.users {
		if wanted[models.NormalizeMobile(u.Mobile)] {
			out = append(out, u)
		}
	}
	return out, nil
}

func day(year int, month time.Month, d, hour int) time.Time {
	return time.Date(year, month, d, hour, 0, 0, 0, time.UTC)
}

func sale(at time.Time, phone string, qty, price int64) models.MilkTransaction {
	q := decimal.NewFromInt(qty)
	p := decimal.NewFromInt(price)
	return models.MilkTransaction{
		Type:          models.TransactionSale,
		Date:          at,
		Quantity:      q,
		PricePerLiter: p,
		TotalAmount:   q.Mul(p),
		BuyerPhone:    phone,
	}
}

func purchase(at time.Time, amount int64) models.MilkTransaction {
	return models.MilkTransaction{
		Type:        models.TransactionPurchase,
		Date:        at,
		Quantity:    decimal.NewFromInt(1),
		TotalAmount: decimal.NewFromInt(amount),
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
