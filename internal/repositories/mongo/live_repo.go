package mongo

import (
	"context"

	"github.com/vocallq/vocallq/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultTurnLimit caps how many live turns an analytics read fetches.
const DefaultTurnLimit = 100

type LiveTranscriptionRepository interface {
	Insert(ctx context.Context, turn *models.LiveTranscription) error
	// ListByWebinar returns turns ordered by turn_order ascending, capped at
	// limit (DefaultTurnLimit when limit <= 0).
	ListByWebinar(ctx context.Context, webinarID string, limit int64) ([]models.LiveTranscription, error)
}

type liveRepo struct {
	col *mongo.Collection
}

func NewLiveTranscriptionRepo(db *mongo.Database) LiveTranscriptionRepository {
	return &liveRepo{col: db.Collection("live_transcriptions")}
}

func (r *liveRepo) Insert(ctx context.Context, turn *models.LiveTranscription) error {
	_, err := r.col.InsertOne(ctx, turn)
	return err
}

func (r *liveRepo) ListByWebinar(ctx context.Context, webinarID string, limit int64) ([]models.LiveTranscription, error) {
	if limit <= 0 {
		limit = DefaultTurnLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "turn_order", Value: 1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"webinar_id": webinarID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.LiveTranscription{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
