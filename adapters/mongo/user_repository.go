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

type UserRepository struct {
	users *mongo.Collection
	sros  *mongo.Collection
}

// NewUserRepository creates a MongoDB user/SRO profile repository.
func NewUserRepository(db *mongo.Database) repositories.UserRepository {
	return &UserRepository{
		users: db.Collection("users"),
		sros:  db.Collection("sros"),
	}
}

// GetByID implements repositories.UserRepository
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if id == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	var user entities.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &user, nil
}

// GetSRO implements repositories.UserRepository
func (r *UserRepository) GetSRO(ctx context.Context, id string) (*entities.SRO, error) {
	if id == "" {
		return nil, errors.New("SRO ID cannot be empty")
	}

	var sro entities.SRO
	err := r.sros.FindOne(ctx, bson.M{"_id": id}).Decode(&sro)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get SRO %s: %w", id, err)
	}
	return &sro, nil
}
