package mongostore

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	"homechef-api/logger"
	"homechef-api/models"
	"homechef-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), store.ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, translate(dup), store.ErrDuplicate)

	other := errors.New("network")
	assert.Equal(t, other, translate(other))
}

// openTest needs a live server, e.g. MONGODB_URI=mongodb://localhost:27017
func openTest(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}

	db := "homechef_test_" + strconv.FormatInt(time.Now().UnixNano(), 36)
	s, err := Open(Options{URI: uri, DB: db}, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		_ = s.db.Drop(ctx)
		_ = s.Close(ctx)
	})
	return s
}

func TestUsersAndRequests(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	require.NoError(t, s.Users().Create(ctx, &models.User{Email: "a@example.com", Role: models.RoleUser, Status: models.StatusActive}))
	require.NoError(t, s.Users().Create(ctx, &models.User{Email: "b@example.com", Role: models.RoleUser, Status: models.StatusActive}))
	assert.ErrorIs(t, s.Users().Create(ctx, &models.User{Email: "a@example.com"}), store.ErrDuplicate)

	chefID := "chef-1234"
	require.NoError(t, s.Users().SetRole(ctx, "a@example.com", models.RoleChef, &chefID))
	assert.ErrorIs(t, s.Users().SetRole(ctx, "b@example.com", models.RoleChef, &chefID), store.ErrDuplicate)
	assert.ErrorIs(t, s.Users().SetRole(ctx, "ghost@example.com", models.RoleAdmin, nil), store.ErrNotFound)

	req := &models.Request{UserEmail: "b@example.com", RequestType: models.RequestChef, RequestStatus: models.RequestPending}
	require.NoError(t, s.Requests().Create(ctx, req))
	assert.ErrorIs(t, s.Requests().Create(ctx, &models.Request{UserEmail: "b@example.com", RequestType: models.RequestChef, RequestStatus: models.RequestPending}), store.ErrDuplicate)

	require.NoError(t, s.Requests().Resolve(ctx, req.ID, models.RequestApproved, time.Now()))
	assert.ErrorIs(t, s.Requests().Resolve(ctx, req.ID, models.RequestRejected, time.Now()), store.ErrNotFound)
}

func TestOrdersAndPayments(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	o := &models.Order{MealID: "m1", UserEmail: "a@example.com", Quantity: 1, Price: 5,
		OrderStatus: models.OrderPending, PaymentStatus: models.PaymentPending}
	require.NoError(t, s.Orders().Create(ctx, o))

	change := models.StatusChange{From: models.OrderPending, To: models.OrderAccepted, ChangedBy: "chef", At: time.Now().UTC()}
	require.NoError(t, s.Orders().UpdateStatus(ctx, o.ID, change, false))

	stale := models.StatusChange{From: models.OrderPending, To: models.OrderCancelled, ChangedBy: "a@example.com", At: time.Now().UTC()}
	assert.ErrorIs(t, s.Orders().UpdateStatus(ctx, o.ID, stale, false), store.ErrConflict)
	assert.ErrorIs(t, s.Orders().UpdateStatus(ctx, "missing", stale, false), store.ErrNotFound)

	err := s.InTx(ctx, func(ctx context.Context, tx store.Store) error {
		if err := tx.Payments().Create(ctx, &models.Payment{OrderID: o.ID, TransactionID: "pi_1"}); err != nil {
			return err
		}
		return tx.Orders().MarkPaid(ctx, o.ID, "pi_1", time.Now().UTC())
	})
	require.NoError(t, err)

	got, err := s.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderAccepted, got.OrderStatus)
	assert.Equal(t, models.PaymentPaid, got.PaymentStatus)
	assert.Len(t, got.StatusHistory, 1)

	assert.ErrorIs(t, s.Payments().Create(ctx, &models.Payment{OrderID: "o2", TransactionID: "pi_1"}), store.ErrDuplicate)
}
