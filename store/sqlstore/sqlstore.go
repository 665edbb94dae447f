// Package sqlstore implements store.Store on GORM with an embedded SQLite
// database. It backs local development and the test suite.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homechef-api/models"
	"homechef-api/store"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open connects to the SQLite file at path and migrates the schema
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer; transactions must not wait on a second connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Migrate creates tables and the indexes that enforce cross-document invariants
func (s *Store) Migrate() error {
	err := s.db.AutoMigrate(
		&models.User{},
		&models.Meal{},
		&models.Order{},
		&models.Request{},
		&models.Review{},
		&models.Favorite{},
		&models.Payment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// at most one pending request per (email, type)
	err = s.db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_requests_pending
		ON requests(user_email, request_type) WHERE request_status = 'pending'`).Error
	if err != nil {
		return fmt.Errorf("failed to create pending request index: %w", err)
	}
	return nil
}

func (s *Store) Users() store.UserRepository { return &userRepo{db: s.db} }
func (s *Store) Meals() store.MealRepository { return &mealRepo{db: s.db} }
func (s *Store) Orders() store.OrderRepository { return &orderRepo{db: s.db} }
func (s *Store) Requests() store.RequestRepository { return &requestRepo{db: s.db} }
func (s *Store) Reviews() store.ReviewRepository { return &reviewRepo{db: s.db} }
func (s *Store) Favorites() store.FavoriteRepository { return &favoriteRepo{db: s.db} }
func (s *Store) Payments() store.PaymentRepository { return &paymentRepo{db: s.db} }

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &Store{db: tx})
	})
}

func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newID() string {
	return uuid.NewString()
}

// translate maps driver errors onto the store sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	return err
}

// affected turns a zero-row write into ErrNotFound
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
