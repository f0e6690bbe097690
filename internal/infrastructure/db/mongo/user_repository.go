package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository on MongoDB.
type UserRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

type userDoc struct {
	ID           int64     `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password_hash"`
	Bio          *string   `bson:"bio"`
	ImageURL     *string   `bson:"image_url"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Bio:          d.Bio,
		ImageURL:     d.ImageURL,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := nextID(ctx, r.counters, collectionUsers)
	if err != nil {
		return nil, err
	}

	doc := userDoc{
		ID:           id,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Bio:          user.Bio,
		ImageURL:     user.ImageURL,
		CreatedAt:    user.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if isUsernameConflict(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

const (
	usernameIndex     = "users_username_key"
	duplicateKeyError = 11000
)

// isUsernameConflict reports whether err is a duplicate key on the username
// index. Collisions on _id or other indexes are left as integrity failures.
func isUsernameConflict(err error) bool {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return false
	}
	for _, e := range we.WriteErrors {
		if e.Code == duplicateKeyError && strings.Contains(e.Message, usernameIndex) {
			return true
		}
	}
	return false
}

func (r *UserRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(usernameIndex),
	})
	return err
}
