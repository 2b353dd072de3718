package models

import "github.com/shopspring/decimal"

// Role mirrors the numeric roles stored on user documents.
type Role int

const (
	RoleSuperAdmin Role = 0
	RoleAdmin      Role = 1
	RoleConsumer   Role = 2
)

// User is a registered profile; consumers are the farm's milk buyers.
type User struct {
	ID                string
	Name              string
	Mobile            string
	Role              Role
	MilkFixedPrice    *decimal.Decimal
	DailyMilkQuantity *decimal.Decimal
}
