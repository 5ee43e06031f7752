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

type AnalysisRepository struct {
	collection *mongo.Collection
}

// NewAnalysisRepository creates a MongoDB completion-record repository.
func NewAnalysisRepository(db *mongo.Database) repositories.AnalysisRepository {
	return &AnalysisRepository{
		collection: db.Collection("analyses"),
	}
}

// Create implements repositories.AnalysisRepository
func (r *AnalysisRepository) Create(ctx context.Context, analysis *entities.Analysis) error {
	if analysis == nil {
		return errors.New("analysis cannot be nil")
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, analysis); err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

// GetByUserAndDate implements repositories.AnalysisRepository
func (r *AnalysisRepository) GetByUserAndDate(ctx context.Context, userID, dateRecorded string) (*entities.Analysis, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	filter := bson.M{"user_id": userID, "date_recorded": dateRecorded}

	var analysis entities.Analysis
	err := r.collection.FindOne(ctx, filter).Decode(&analysis)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // Still pending, no record yet
		}
		return nil, fmt.Errorf("failed to get analysis for user %s: %w", userID, err)
	}

	return &analysis, nil
}
