package mongostore

import (
	"context"

	"homechef-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type paymentRepo struct {
	coll *mongo.Collection
}

func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = newID()
	}
	_, err := r.coll.InsertOne(ctx, payment)
	return translate(err)
}

func (r *paymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&payment); err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (r *paymentRepo) ListByUser(ctx context.Context, email string) ([]models.Payment, error) {
	payments := []models.Payment{}
	opts := options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}})
	err := findAll(ctx, r.coll, bson.M{"userEmail": email}, &payments, opts)
	return payments, err
}
