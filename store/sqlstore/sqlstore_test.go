package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"homechef-api/models"
	"homechef-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestUsers(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	u := &models.User{Email: "a@example.com", Role: models.RoleUser, Status: models.StatusActive}
	require.NoError(t, s.Users().Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	err := s.Users().Create(ctx, &models.User{Email: "a@example.com", Role: models.RoleUser})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	_, err = s.Users().GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	chefID := "chef-4242"
	require.NoError(t, s.Users().SetRole(ctx, u.Email, models.RoleChef, &chefID))
	exists, err := s.Users().ChefIDExists(ctx, chefID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Users().Create(ctx, &models.User{Email: "b@example.com", Role: models.RoleUser}))
	err = s.Users().SetRole(ctx, "b@example.com", models.RoleChef, &chefID)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	assert.ErrorIs(t, s.Users().SetRole(ctx, "ghost@example.com", models.RoleAdmin, nil), store.ErrNotFound)
	assert.ErrorIs(t, s.Users().SetStatus(ctx, "missing", models.StatusFraud), store.ErrNotFound)
}

func TestRequests_OnePendingPerType(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	pending := func() *models.Request {
		return &models.Request{UserEmail: "a@example.com", RequestType: models.RequestChef, RequestStatus: models.RequestPending}
	}
	first := pending()
	require.NoError(t, s.Requests().Create(ctx, first))
	assert.ErrorIs(t, s.Requests().Create(ctx, pending()), store.ErrDuplicate)

	has, err := s.Requests().HasPending(ctx, "a@example.com", models.RequestChef)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, s.Requests().Resolve(ctx, first.ID, models.RequestRejected, time.Now()))
	assert.ErrorIs(t, s.Requests().Resolve(ctx, first.ID, models.RequestApproved, time.Now()), store.ErrNotFound)

	// resolved requests no longer block a new one
	require.NoError(t, s.Requests().Create(ctx, pending()))
}

func TestOrders_StatusHistory(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	o := &models.Order{MealID: "m1", UserEmail: "a@example.com", Quantity: 2, Price: 10,
		OrderStatus: models.OrderPending, PaymentStatus: models.PaymentPending}
	require.NoError(t, s.Orders().Create(ctx, o))

	change := models.StatusChange{From: models.OrderPending, To: models.OrderAccepted, ChangedBy: "chef@example.com", At: time.Now().UTC()}
	require.NoError(t, s.Orders().UpdateStatus(ctx, o.ID, change, false))
	change = models.StatusChange{From: models.OrderAccepted, To: models.OrderDelivered, ChangedBy: "chef@example.com", At: time.Now().UTC()}
	require.NoError(t, s.Orders().UpdateStatus(ctx, o.ID, change, true))

	got, err := s.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, got.OrderStatus)
	assert.Equal(t, models.PaymentPaid, got.PaymentStatus)
	assert.Len(t, got.StatusHistory, 2)

	assert.ErrorIs(t, s.Orders().UpdateStatus(ctx, "missing", change, false), store.ErrNotFound)
	assert.ErrorIs(t, s.Orders().MarkPaid(ctx, "missing", "pi", time.Now()), store.ErrNotFound)
}

func TestOrders_StaleTransitionConflicts(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	o := &models.Order{MealID: "m1", UserEmail: "a@example.com", Quantity: 1, Price: 4,
		OrderStatus: models.OrderPending, PaymentStatus: models.PaymentPending}
	require.NoError(t, s.Orders().Create(ctx, o))

	cancel := models.StatusChange{From: models.OrderPending, To: models.OrderCancelled, ChangedBy: "a@example.com", At: time.Now().UTC()}
	require.NoError(t, s.Orders().UpdateStatus(ctx, o.ID, cancel, false))

	// the chef checked the order while it was still pending
	accept := models.StatusChange{From: models.OrderPending, To: models.OrderAccepted, ChangedBy: "chef@example.com", At: time.Now().UTC()}
	assert.ErrorIs(t, s.Orders().UpdateStatus(ctx, o.ID, accept, false), store.ErrConflict)

	got, err := s.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, got.OrderStatus)
	assert.Len(t, got.StatusHistory, 1)
}

func TestInTx_RollsBack(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(ctx context.Context, tx store.Store) error {
		if err := tx.Payments().Create(ctx, &models.Payment{OrderID: "o1", TransactionID: "pi_1"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Payments().GetByTransactionID(ctx, "pi_1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPayments_Unique(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	require.NoError(t, s.Payments().Create(ctx, &models.Payment{OrderID: "o1", TransactionID: "pi_1", UserEmail: "a@example.com"}))
	assert.ErrorIs(t, s.Payments().Create(ctx, &models.Payment{OrderID: "o2", TransactionID: "pi_1"}), store.ErrDuplicate)
	assert.ErrorIs(t, s.Payments().Create(ctx, &models.Payment{OrderID: "o1", TransactionID: "pi_2"}), store.ErrDuplicate)

	list, err := s.Payments().ListByUser(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReviewsAndFavorites_Unique(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	require.NoError(t, s.Reviews().Create(ctx, &models.Review{MealID: "m1", ReviewerEmail: "a@example.com", Rating: 3}))
	assert.ErrorIs(t, s.Reviews().Create(ctx, &models.Review{MealID: "m1", ReviewerEmail: "a@example.com", Rating: 5}), store.ErrDuplicate)

	fav := &models.Favorite{UserEmail: "a@example.com", MealID: "m1"}
	require.NoError(t, s.Favorites().Create(ctx, fav))
	assert.ErrorIs(t, s.Favorites().Create(ctx, &models.Favorite{UserEmail: "a@example.com", MealID: "m1"}), store.ErrDuplicate)
	assert.ErrorIs(t, s.Favorites().Delete(ctx, fav.ID, "b@example.com"), store.ErrNotFound)
	assert.NoError(t, s.Favorites().Delete(ctx, fav.ID, "a@example.com"))
}
