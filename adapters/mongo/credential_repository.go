package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mobilev/server/domain/entities"
	"github.com/mobilev/server/domain/repositories"
)

type CredentialRepository struct {
	collection *mongo.Collection
}

// NewCredentialRepository creates a repository over the single shared
// speech-to-text credential row. The admin portal writes it; the pipeline
// only reads.
func NewCredentialRepository(db *mongo.Database) repositories.CredentialRepository {
	return &CredentialRepository{
		collection: db.Collection("stt_credentials"),
	}
}

// Get implements repositories.CredentialRepository
func (r *CredentialRepository) Get(ctx context.Context) (*entities.Credential, error) {
	var cred entities.Credential
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&cred)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transcription credentials: %w", err)
	}
	return &cred, nil
}
