package mongostore

import (
	"context"
	"time"

	"homechef-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type requestRepo struct {
	coll *mongo.Collection
}

func (r *requestRepo) Create(ctx context.Context, req *models.Request) error {
	if req.ID == "" {
		req.ID = newID()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, req)
	return translate(err)
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (*models.Request, error) {
	var req models.Request
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *requestRepo) List(ctx context.Context) ([]models.Request, error) {
	reqs := []models.Request{}
	err := findAll(ctx, r.coll, bson.M{}, &reqs, newestFirst())
	return reqs, err
}

func (r *requestRepo) HasPending(ctx context.Context, email string, requestType models.RequestType) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"userEmail":     email,
		"requestType":   requestType,
		"requestStatus": models.RequestPending,
	})
	return n > 0, translate(err)
}

func (r *requestRepo) Resolve(ctx context.Context, id string, status models.RequestStatus, at time.Time) error {
	filter := bson.M{"_id": id, "requestStatus": models.RequestPending}
	update := bson.M{"$set": bson.M{"requestStatus": status, "resolvedAt": at}}
	return matched(r.coll.UpdateOne(ctx, filter, update))
}
