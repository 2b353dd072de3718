package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

func dateRangeFilter(from, to time.Time) bson.M {
	return bson.M{"date": bson.M{"$gte": from, "$lte": to}}
}

// transactionFilter mirrors models.TransactionFilter.Matches. The buyer match
// trims the stored phone server side, so padded values still join.
func transactionFilter(f models.TransactionFilter) bson.M {
	filter := dateRangeFilter(f.From, f.To)
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.BuyerMobile != "" {
		filter["$expr"] = bson.M{
			"$eq": bson.A{
				bson.M{"$trim": bson.M{"input": bson.M{"$ifNull": bson.A{"$buyerPhone", ""}}}},
				f.BuyerMobile,
			},
		}
	}
	return filter
}

func usersByMobilesFilter(mobiles []string) bson.M {
	return bson.M{"mobile": bson.M{"$in": mobiles}}
}
