package mongodb

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// Stored numbers are IEEE doubles (or int32 for whole values); they are
// converted to decimals at the boundary so every sum downstream is exact.

type milkTransactionDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Type          string             `bson:"type"`
	Date          time.Time          `bson:"date"`
	Quantity      float64            `bson:"quantity"`
	PricePerLiter float64            `bson:"pricePerLiter"`
	TotalAmount   float64            `bson:"totalAmount"`
	Buyer         string             `bson:"buyer,omitempty"`
	BuyerPhone    string             `bson:"buyerPhone,omitempty"`
	Seller        string             `bson:"seller,omitempty"`
	SellerPhone   string             `bson:"sellerPhone,omitempty"`
	Notes         string             `bson:"notes,omitempty"`
}

func (d milkTransactionDocument) toModel() models.MilkTransaction {
	return models.MilkTransaction{
		ID:            d.ID.Hex(),
		Type:          models.TransactionType(d.Type),
		Date:          d.Date.UTC(),
		Quantity:      decimal.NewFromFloat(d.Quantity),
		PricePerLiter: decimal.NewFromFloat(d.PricePerLiter),
		TotalAmount:   decimal.NewFromFloat(d.TotalAmount),
		Buyer:         d.Buyer,
		BuyerPhone:    d.BuyerPhone,
		Seller:        d.Seller,
		SellerPhone:   d.SellerPhone,
		Notes:         d.Notes,
	}
}

type charaPurchaseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Date        time.Time          `bson:"date"`
	Quantity    float64            `bson:"quantity"`
	PricePerKg  float64            `bson:"pricePerKg"`
	TotalAmount float64            `bson:"totalAmount"`
	Supplier    string             `bson:"supplier,omitempty"`
	Notes       string             `bson:"notes,omitempty"`
}

func (d charaPurchaseDocument) toModel() models.CharaPurchase {
	return models.CharaPurchase{
		ID:          d.ID.Hex(),
		Date:        d.Date.UTC(),
		Quantity:    decimal.NewFromFloat(d.Quantity),
		PricePerKg:  decimal.NewFromFloat(d.PricePerKg),
		TotalAmount: decimal.NewFromFloat(d.TotalAmount),
		Supplier:    d.Supplier,
		Notes:       d.Notes,
	}
}

type animalTransactionDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Type        string             `bson:"type"`
	Date        time.Time          `bson:"date"`
	AnimalName  string             `bson:"animalName,omitempty"`
	AnimalType  string             `bson:"animalType,omitempty"`
	Price       float64            `bson:"price"`
	BuyerPhone  string             `bson:"buyerPhone,omitempty"`
	SellerPhone string             `bson:"sellerPhone,omitempty"`
}

func (d animalTransactionDocument) toModel() models.AnimalTransaction {
	return models.AnimalTransaction{
		ID:          d.ID.Hex(),
		Type:        models.TransactionType(d.Type),
		Date:        d.Date.UTC(),
		AnimalName:  d.AnimalName,
		AnimalType:  d.AnimalType,
		Price:       decimal.NewFromFloat(d.Price),
		BuyerPhone:  d.BuyerPhone,
		SellerPhone: d.SellerPhone,
	}
}

type userDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Mobile            string             `bson:"mobile"`
	Role              int                `bson:"role"`
	MilkFixedPrice    *float64           `bson:"milkFixedPrice,omitempty"`
	DailyMilkQuantity *float64           `bson:"dailyMilkQuantity,omitempty"`
}

func (d userDocument) toModel() models.User {
	return models.User{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Mobile:            d.Mobile,
		Role:              models.Role(d.Role),
		MilkFixedPrice:    optionalDecimal(d.MilkFixedPrice),
		DailyMilkQuantity: optionalDecimal(d.DailyMilkQuantity),
	}
}

func optionalDecimal(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
