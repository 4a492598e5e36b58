package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMongoIndexes() error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}
	db := MongoDatabase()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// live_transcriptions indexes
	live := db.Collection("live_transcriptions")
	_, err := live.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// 1) Ensure no duplicate turn per webinar
		{
			Keys: bson.D{{Key: "webinar_id", Value: 1}, {Key: "turn_order", Value: 1}},
			Options: options.Index().
				SetName("uniq_webinar_turn").
				SetUnique(true),
		},
		// 2) Query helper for recent turns
		{
			Keys:    bson.D{{Key: "webinar_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("by_webinar_ts"),
		},
	})
	return err
}
