package mongostore

import (
	"context"
	"time"

	"homechef-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepo struct {
	coll *mongo.Collection
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, user)
	return translate(err)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := findAll(ctx, r.coll, bson.M{}, &users, newestFirst())
	return users, err
}

func (r *userRepo) SetRole(ctx context.Context, email string, role models.UserRole, chefID *string) error {
	update := bson.M{"$set": bson.M{"role": role}}
	if chefID != nil {
		update = bson.M{"$set": bson.M{"role": role, "chefId": *chefID}}
	} else {
		update["$unset"] = bson.M{"chefId": ""}
	}
	return matched(r.coll.UpdateOne(ctx, bson.M{"email": email}, update))
}

func (r *userRepo) SetStatus(ctx context.Context, id string, status models.UserStatus) error {
	return matched(r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}}))
}

func (r *userRepo) ChefIDExists(ctx context.Context, chefID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"chefId": chefID})
	return n > 0, translate(err)
}
