package mongostore

import (
	"context"
	"time"

	"homechef-api/models"
	"homechef-api/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mealRepo struct {
	coll *mongo.Collection
}

func (r *mealRepo) Create(ctx context.Context, meal *models.Meal) error {
	if meal.ID == "" {
		meal.ID = newID()
	}
	if meal.CreatedAt.IsZero() {
		meal.CreatedAt = time.Now().UTC()
	}
	if meal.Ingredients == nil {
		meal.Ingredients = []string{}
	}
	_, err := r.coll.InsertOne(ctx, meal)
	return translate(err)
}

func (r *mealRepo) GetByID(ctx context.Context, id string) (*models.Meal, error) {
	var meal models.Meal
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&meal); err != nil {
		return nil, translate(err)
	}
	return &meal, nil
}

func (r *mealRepo) List(ctx context.Context, filter store.MealFilter) ([]models.Meal, int64, error) {
	query := bson.M{}
	if filter.ChefEmail != "" {
		query["chefEmail"] = filter.ChefEmail
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, translate(err)
	}

	opts := newestFirst().
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	meals := []models.Meal{}
	if err := findAll(ctx, r.coll, query, &meals, opts); err != nil {
		return nil, 0, err
	}
	return meals, total, nil
}

func (r *mealRepo) TopRated(ctx context.Context, n int) ([]models.Meal, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(int64(n))

	meals := []models.Meal{}
	err := findAll(ctx, r.coll, bson.M{}, &meals, opts)
	return meals, err
}

func (r *mealRepo) Update(ctx context.Context, id string, patch models.MealPatch) error {
	set := bson.M{}
	if patch.FoodName != nil {
		set["foodName"] = *patch.FoodName
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}
	if patch.Ingredients != nil {
		set["ingredients"] = *patch.Ingredients
	}
	if patch.DeliveryArea != nil {
		set["deliveryArea"] = *patch.DeliveryArea
	}
	if patch.EstimatedDeliveryTime != nil {
		set["estimatedDeliveryTime"] = *patch.EstimatedDeliveryTime
	}
	if patch.ChefExperience != nil {
		set["chefExperience"] = *patch.ChefExperience
	}
	if len(set) == 0 {
		return nil
	}
	return matched(r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}))
}

func (r *mealRepo) Delete(ctx context.Context, id string) error {
	return deleted(r.coll.DeleteOne(ctx, bson.M{"_id": id}))
}
