package mongostore

import (
	"context"
	"time"

	"homechef-api/models"
	"homechef-api/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type orderRepo struct {
	coll *mongo.Collection
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = newID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	// $push needs an array, not null
	if order.StatusHistory == nil {
		order.StatusHistory = []models.StatusChange{}
	}
	_, err := r.coll.InsertOne(ctx, order)
	return translate(err)
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, email string) ([]models.Order, error) {
	orders := []models.Order{}
	err := findAll(ctx, r.coll, bson.M{"userEmail": email}, &orders, newestFirst())
	return orders, err
}

func (r *orderRepo) ListByChef(ctx context.Context, chefID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := findAll(ctx, r.coll, bson.M{"chefId": chefID}, &orders, newestFirst())
	return orders, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, change models.StatusChange, markPaid bool) error {
	set := bson.M{"orderStatus": change.To}
	if markPaid {
		set["paymentStatus"] = models.PaymentPaid
	}
	update := bson.M{
		"$set":  set,
		"$push": bson.M{"statusHistory": change},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "orderStatus": change.From}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// tell a missing order apart from one that moved on
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return store.ErrConflict
}

func (r *orderRepo) MarkPaid(ctx context.Context, id, transactionID string, paidAt time.Time) error {
	update := bson.M{"$set": bson.M{
		"paymentStatus": models.PaymentPaid,
		"paymentTime":   paidAt,
		"transactionId": transactionID,
	}}
	return matched(r.coll.UpdateOne(ctx, bson.M{"_id": id}, update))
}
