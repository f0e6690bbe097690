package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// RecipeRepository implements ports.RecipeRepository on MongoDB.
type RecipeRepository struct {
	col      *mongo.Collection
	users    *mongo.Collection
	counters *mongo.Collection
}

type recipeDoc struct {
	ID                int64     `bson:"_id"`
	Title             string    `bson:"title"`
	Instructions      string    `bson:"instructions"`
	MinutesToComplete *int      `bson:"minutes_to_complete"`
	UserID            int64     `bson:"user_id"`
	CreatedAt         time.Time `bson:"created_at"`
}

func (d recipeDoc) toDomain() domain.Recipe {
	return domain.Recipe{
		ID:                d.ID,
		Title:             d.Title,
		Instructions:      d.Instructions,
		MinutesToComplete: d.MinutesToComplete,
		UserID:            d.UserID,
		CreatedAt:         d.CreatedAt.UTC(),
	}
}

func (r *RecipeRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer cur.Close(ctx) //nolint:errcheck

	out := make([]domain.Recipe, 0)
	for cur.Next(ctx) {
		var doc recipeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode recipe: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return out, nil
}

// Insert stores recipe after checking its owner exists, since MongoDB has
// no foreign keys.
func (r *RecipeRepository) Insert(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	n, err := r.users.CountDocuments(ctx, bson.M{"_id": recipe.UserID}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("check recipe owner: %w", err)
	}
	if n == 0 {
		return nil, domain.NewValidationError("user_id", "Recipe owner does not exist")
	}

	id, err := nextID(ctx, r.counters, collectionRecipes)
	if err != nil {
		return nil, err
	}
	doc := recipeDoc{
		ID:                id,
		Title:             recipe.Title,
		Instructions:      recipe.Instructions,
		MinutesToComplete: recipe.MinutesToComplete,
		UserID:            recipe.UserID,
		CreatedAt:         recipe.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	created := doc.toDomain()
	return &created, nil
}

func (r *RecipeRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("idx_recipes_user_id"),
	})
	return err
}
