package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mobilev/server/domain/entities"
	"github.com/mobilev/server/domain/repositories"
)

type ShareRepository struct {
	collection *mongo.Collection
}

// NewShareRepository creates a MongoDB share repository.
func NewShareRepository(db *mongo.Database) repositories.ShareRepository {
	return &ShareRepository{
		collection: db.Collection("shares"),
	}
}

// Create implements repositories.ShareRepository
func (r *ShareRepository) Create(ctx context.Context, share *entities.Share) error {
	if share == nil {
		return errors.New("share cannot be nil")
	}
	if share.CreatedAt.IsZero() {
		share.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, share); err != nil {
		return fmt.Errorf("failed to create share: %w", err)
	}
	return nil
}

// UpdateScores implements repositories.ShareRepository. Only shares owned
// by userID with the given recording date are touched.
func (r *ShareRepository) UpdateScores(ctx context.Context, userID, dateRecorded string, values [3]*string) (int64, error) {
	if userID == "" {
		return 0, errors.New("user ID cannot be empty")
	}

	filter := bson.M{"user_id": userID, "date_recorded": dateRecorded}
	update := bson.M{
		"$set": bson.M{
			"scores.0.value": values[0],
			"scores.1.value": values[1],
			"scores.2.value": values[2],
		},
	}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to update share scores: %w", err)
	}
	return result.MatchedCount, nil
}
