// Package store defines the document-store access layer: one repository per
// collection plus a transaction runner. Backends live in sub-packages.
package store

import (
	"context"
	"errors"
	"time"

	"homechef-api/models"
)

var (
	ErrNotFound  = errors.New("store: document not found")
	ErrDuplicate = errors.New("store: duplicate key")
	// ErrConflict means a conditional write lost to a concurrent change.
	ErrConflict = errors.New("store: document changed concurrently")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// SetRole returns ErrNotFound when no user has the email.
	SetRole(ctx context.Context, email string, role models.UserRole, chefID *string) error
	SetStatus(ctx context.Context, id string, status models.UserStatus) error
	ChefIDExists(ctx context.Context, chefID string) (bool, error)
}

// MealFilter selects a page of meals, optionally for a single chef
type MealFilter struct {
	ChefEmail string
	Page      int
	Limit     int
}

type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	GetByID(ctx context.Context, id string) (*models.Meal, error)
	List(ctx context.Context, filter MealFilter) ([]models.Meal, int64, error)
	TopRated(ctx context.Context, n int) ([]models.Meal, error)
	Update(ctx context.Context, id string, patch models.MealPatch) error
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, email string) ([]models.Order, error)
	ListByChef(ctx context.Context, chefID string) ([]models.Order, error)
	// UpdateStatus applies the status change only while the order is still in
	// change.From; otherwise it returns ErrConflict. markPaid also sets
	// paymentStatus=paid.
	UpdateStatus(ctx context.Context, id string, change models.StatusChange, markPaid bool) error
	MarkPaid(ctx context.Context, id, transactionID string, paidAt time.Time) error
}

type RequestRepository interface {
	Create(ctx context.Context, req *models.Request) error
	GetByID(ctx context.Context, id string) (*models.Request, error)
	List(ctx context.Context) ([]models.Request, error)
	HasPending(ctx context.Context, email string, requestType models.RequestType) (bool, error)
	// Resolve moves a pending request to status. Returns ErrNotFound when no
	// pending request with the id exists.
	Resolve(ctx context.Context, id string, status models.RequestStatus, at time.Time) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Exists(ctx context.Context, mealID, reviewerEmail string) (bool, error)
	ListByMeal(ctx context.Context, mealID string) ([]models.Review, error)
	ListByReviewer(ctx context.Context, email string) ([]models.Review, error)
	Update(ctx context.Context, id string, patch models.ReviewPatch) error
	Delete(ctx context.Context, id string) error
}

type FavoriteRepository interface {
	Create(ctx context.Context, fav *models.Favorite) error
	Exists(ctx context.Context, email, mealID string) (bool, error)
	ListByUser(ctx context.Context, email string) ([]models.Favorite, error)
	// Delete removes the favorite only if it belongs to email.
	Delete(ctx context.Context, id, email string) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	ListByUser(ctx context.Context, email string) ([]models.Payment, error)
}

// Store is the handle passed to handlers instead of ambient connection state
type Store interface {
	Users() UserRepository
	Meals() MealRepository
	Orders() OrderRepository
	Requests() RequestRepository
	Reviews() ReviewRepository
	Favorites() FavoriteRepository
	Payments() PaymentRepository

	// InTx runs fn with a Store bound to a single transaction when the
	// backend supports one, otherwise sequentially on the same Store.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	Close(ctx context.Context) error
}
