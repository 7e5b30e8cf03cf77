package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vebops/store/internal/domain/models"
)

// ListUsers returns every user account sorted by email.
func (r *MongoDBRepository) ListUsers(ctx context.Context) ([]models.UserAccount, error) {
	opts := options.Find().SetSort(bson.D{{Key: "email", Value: 1}})
	cursor, err := r.db.Collection(collUsers).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var users []models.UserAccount
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// FindUserByEmail returns the account for an email, or nil when absent.
func (r *MongoDBRepository) FindUserByEmail(ctx context.Context, email string) (*models.UserAccount, error) {
	var user models.UserAccount
	err := r.db.Collection(collUsers).FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindUserByID returns the account for a hex id, or nil when absent.
func (r *MongoDBRepository) FindUserByID(ctx context.Context, id string) (*models.UserAccount, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("parse user id %s: %w", id, err)
	}

	var user models.UserAccount
	err = r.db.Collection(collUsers).FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// InsertUser appends a new account and returns it with its generated id.
func (r *MongoDBRepository) InsertUser(ctx context.Context, user models.UserAccount) (models.UserAccount, error) {
	user.ID = primitive.NewObjectID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.Collection(collUsers).InsertOne(ctx, user); err != nil {
		return models.UserAccount{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// CountUsers reports how many accounts exist; used for first-run seeding.
func (r *MongoDBRepository) CountUsers(ctx context.Context) (int64, error) {
	count, err := r.db.Collection(collUsers).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
