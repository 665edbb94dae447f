// Package mongostore implements store.Store on MongoDB, the production
// document store.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homechef-api/logger"
	"homechef-api/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection     = "users"
	mealsCollection     = "meals"
	ordersCollection    = "orders"
	requestsCollection  = "requests"
	reviewsCollection   = "reviews"
	favoritesCollection = "favorites"
	paymentsCollection  = "payments"
)

type Options struct {
	URI string
	DB  string

	// Transactions enables multi-document transactions; requires a replica set.
	Transactions bool
}

type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
	logger       *logger.Logger
}

var _ store.Store = (*Store)(nil)

func Open(opts Options, log *logger.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s := &Store{
		client:       client,
		db:           client.Database(opts.DB),
		transactions: opts.Transactions,
		logger:       log.WithComponent("mongostore"),
	}
	if err := s.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// EnsureIndexes declares the unique indexes that back cross-document invariants
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			uniqueIndex(bson.D{{Key: "email", Value: 1}}),
			partialUniqueIndex(bson.D{{Key: "chefId", Value: 1}}, bson.M{"chefId": bson.M{"$exists": true}}),
		},
		mealsCollection: {
			{Keys: bson.D{{Key: "chefEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "rating", Value: -1}}},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "userEmail", Value: 1}}},
			{Keys: bson.D{{Key: "chefId", Value: 1}}},
		},
		requestsCollection: {
			partialUniqueIndex(
				bson.D{{Key: "userEmail", Value: 1}, {Key: "requestType", Value: 1}},
				bson.M{"requestStatus": "pending"},
			),
		},
		reviewsCollection: {
			uniqueIndex(bson.D{{Key: "mealId", Value: 1}, {Key: "reviewerEmail", Value: 1}}),
		},
		favoritesCollection: {
			uniqueIndex(bson.D{{Key: "userEmail", Value: 1}, {Key: "mealId", Value: 1}}),
		},
		paymentsCollection: {
			uniqueIndex(bson.D{{Key: "transactionId", Value: 1}}),
			uniqueIndex(bson.D{{Key: "orderId", Value: 1}}),
		},
	}

	for name, idx := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	s.logger.Info("MongoDB indexes ensured", "collections", len(indexes))
	return nil
}

func uniqueIndex(keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
}

func partialUniqueIndex(keys bson.D, filter bson.M) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(true).SetPartialFilterExpression(filter),
	}
}

func (s *Store) Users() store.UserRepository {
	return &userRepo{coll: s.db.Collection(usersCollection)}
}

func (s *Store) Meals() store.MealRepository {
	return &mealRepo{coll: s.db.Collection(mealsCollection)}
}

func (s *Store) Orders() store.OrderRepository {
	return &orderRepo{coll: s.db.Collection(ordersCollection)}
}

func (s *Store) Requests() store.RequestRepository {
	return &requestRepo{coll: s.db.Collection(requestsCollection)}
}

func (s *Store) Reviews() store.ReviewRepository {
	return &reviewRepo{coll: s.db.Collection(reviewsCollection)}
}

func (s *Store) Favorites() store.FavoriteRepository {
	return &favoriteRepo{coll: s.db.Collection(favoritesCollection)}
}

func (s *Store) Payments() store.PaymentRepository {
	return &paymentRepo{coll: s.db.Collection(paymentsCollection)}
}

// InTx runs fn inside a session transaction. Without transaction support fn
// runs directly, so callers order their writes with the guarded step first.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	if !s.transactions {
		return fn(ctx, s)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, s)
	})
	return err
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	return err
}

func matched(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func deleted(res *mongo.DeleteResult, err error) error {
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// findAll decodes every document matching filter into out
func findAll(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}, opts ...*options.FindOptions) error {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return translate(err)
	}
	defer cursor.Close(ctx)
	return translate(cursor.All(ctx, out))
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
