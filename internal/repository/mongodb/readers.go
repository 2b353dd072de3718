package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

func byDateAsc() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
}

var userProjection = bson.M{"name": 1, "mobile": 1, "role": 1, "milkFixedPrice": 1, "dailyMilkQuantity": 1}

// FindMilkTransactions returns milk transactions matching filter, oldest first.
func (r *MongoDBRepository) FindMilkTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.MilkTransaction, error) {
	var docs []milkTransactionDocument
	if err := r.findAll(ctx, milkTransactionsColl, transactionFilter(filter), byDateAsc(), &docs); err != nil {
		return nil, fmt.Errorf("find milk transactions: %w", err)
	}

	out := make([]models.MilkTransaction, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	r.logger.Debug("milk transactions loaded",
		zap.String("type", string(filter.Type)),
		zap.Time("from", filter.From),
		zap.Time("to", filter.To),
		zap.Int("count", len(out)))
	return out, nil
}

// FindCharaPurchases returns fodder purchases dated within [from, to].
func (r *MongoDBRepository) FindCharaPurchases(ctx context.Context, from, to time.Time) ([]models.CharaPurchase, error) {
	var docs []charaPurchaseDocument
	if err := r.findAll(ctx, charaPurchasesColl, dateRangeFilter(from, to), byDateAsc(), &docs); err != nil {
		return nil, fmt.Errorf("find chara purchases: %w", err)
	}

	out := make([]models.CharaPurchase, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// FindAnimalTransactions returns livestock transactions dated within [from, to].
func (r *MongoDBRepository) FindAnimalTransactions(ctx context.Context, from, to time.Time) ([]models.AnimalTransaction, error) {
	var docs []animalTransactionDocument
	if err := r.findAll(ctx, animalTransactionsColl, dateRangeFilter(from, to), byDateAsc(), &docs); err != nil {
		return nil, fmt.Errorf("find animal transactions: %w", err)
	}

	out := make([]models.AnimalTransaction, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// FindUserByMobile returns the user registered under mobile, or nil.
func (r *MongoDBRepository) FindUserByMobile(ctx context.Context, mobile string) (*models.User, error) {
	var doc userDocument
	err := r.collection(usersColl).
		FindOne(ctx, bson.M{"mobile": mobile}, options.FindOne().SetProjection(userProjection)).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", mobile, err)
	}

	user := doc.toModel()
	return &user, nil
}

// FindUsersByMobiles returns every user whose mobile is in mobiles.
func (r *MongoDBRepository) FindUsersByMobiles(ctx context.Context, mobiles []string) ([]models.User, error) {
	if len(mobiles) == 0 {
		return nil, nil
	}

	var docs []userDocument
	opts := options.Find().SetProjection(userProjection)
	if err := r.findAll(ctx, usersColl, usersByMobilesFilter(mobiles), opts, &docs); err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	out := make([]models.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (r *MongoDBRepository) findAll(ctx context.Context, coll string, filter interface{}, opts *options.FindOptions, results interface{}) error {
	cursor, err := r.collection(coll).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}
