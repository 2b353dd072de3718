package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// SaveDailySnapshot upserts the snapshot keyed by its date.
func (r *MongoDBRepository) SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error {
	collection := r.collection(dailyReportsColl)
	_, err := collection.ReplaceOne(ctx,
		bson.M{"date": snapshot.Date},
		snapshot,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert daily snapshot: %w", err)
	}
	r.logger.Debug("daily snapshot stored", zap.String("date", snapshot.Date))
	return nil
}
