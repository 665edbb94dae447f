package mongostore

import (
	"context"
	"time"

	"homechef-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type reviewRepo struct {
	coll *mongo.Collection
}

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = newID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, review)
	return translate(err)
}

func (r *reviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (r *reviewRepo) Exists(ctx context.Context, mealID, reviewerEmail string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"mealId": mealID, "reviewerEmail": reviewerEmail})
	return n > 0, translate(err)
}

func (r *reviewRepo) ListByMeal(ctx context.Context, mealID string) ([]models.Review, error) {
	reviews := []models.Review{}
	err := findAll(ctx, r.coll, bson.M{"mealId": mealID}, &reviews, newestFirst())
	return reviews, err
}

func (r *reviewRepo) ListByReviewer(ctx context.Context, email string) ([]models.Review, error) {
	reviews := []models.Review{}
	err := findAll(ctx, r.coll, bson.M{"reviewerEmail": email}, &reviews, newestFirst())
	return reviews, err
}

func (r *reviewRepo) Update(ctx context.Context, id string, patch models.ReviewPatch) error {
	set := bson.M{}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}
	if patch.Comment != nil {
		set["comment"] = *patch.Comment
	}
	if len(set) == 0 {
		return nil
	}
	return matched(r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}))
}

func (r *reviewRepo) Delete(ctx context.Context, id string) error {
	return deleted(r.coll.DeleteOne(ctx, bson.M{"_id": id}))
}
