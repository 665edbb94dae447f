package mongostore

import (
	"context"
	"time"

	"homechef-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type favoriteRepo struct {
	coll *mongo.Collection
}

func (r *favoriteRepo) Create(ctx context.Context, fav *models.Favorite) error {
	if fav.ID == "" {
		fav.ID = newID()
	}
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, fav)
	return translate(err)
}

func (r *favoriteRepo) Exists(ctx context.Context, email, mealID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"userEmail": email, "mealId": mealID})
	return n > 0, translate(err)
}

func (r *favoriteRepo) ListByUser(ctx context.Context, email string) ([]models.Favorite, error) {
	favs := []models.Favorite{}
	err := findAll(ctx, r.coll, bson.M{"userEmail": email}, &favs, newestFirst())
	return favs, err
}

func (r *favoriteRepo) Delete(ctx context.Context, id, email string) error {
	return deleted(r.coll.DeleteOne(ctx, bson.M{"_id": id, "userEmail": email}))
}
