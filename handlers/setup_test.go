package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"homechef-api/handlers"
	"homechef-api/logger"
	"homechef-api/middleware"
	"homechef-api/models"
	"homechef-api/payment"
	"homechef-api/routes"
	"homechef-api/store"
	"homechef-api/store/sqlstore"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	args := m.Called(ctx, subject, payload)
	return args.Error(0)
}

func (m *mockPublisher) Close() {}

// fakeProvider serves checkout sessions from memory
type fakeProvider struct {
	mu       sync.Mutex
	sessions map[string]*payment.Session
	created  []payment.CheckoutRequest
	err      error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: map[string]*payment.Session{}}
}

func (f *fakeProvider) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	id := "cs_test_" + req.OrderID
	s := &payment.Session{
		ID:          id,
		URL:         "https://checkout.example.com/" + id,
		AmountTotal: req.UnitAmount * req.Quantity,
		Currency:    "usd",
		Metadata:    map[string]string{payment.MetadataOrderID: req.OrderID, payment.MetadataMealID: req.MealID},
	}
	f.sessions[id] = s
	return s, nil
}

func (f *fakeProvider) GetSession(ctx context.Context, id string) (*payment.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("no such session")
	}
	copied := *s
	return &copied, nil
}

// completeSession marks a session paid the way the provider would after checkout
func (f *fakeProvider) completeSession(id, orderID, txID string, amount int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[id] = &payment.Session{
		ID:            id,
		TransactionID: txID,
		PaymentStatus: payment.StatusPaid,
		AmountTotal:   amount,
		Currency:      "usd",
		Metadata:      map[string]string{payment.MetadataOrderID: orderID},
	}
}

type testEnv struct {
	t        *testing.T
	router   *gin.Engine
	store    store.Store
	handler  *handlers.Handler
	provider *fakeProvider
	events   *mockPublisher
	chefSeq  int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := sqlstore.Open(filepath.Join(t.TempDir(), "homechef.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	provider := newFakeProvider()
	h := handlers.New(st, provider, pub, logger.Discard())

	r := gin.New()
	routes.Setup(r, h, middleware.NewJWTVerifier(testSecret, "", ""), st.Users())

	return &testEnv{t: t, router: r, store: st, handler: h, provider: provider, events: pub}
}

// withStore reroutes requests through handlers backed by st
func (e *testEnv) withStore(st store.Store) {
	h := handlers.New(st, e.provider, e.events, logger.Discard())
	r := gin.New()
	routes.Setup(r, h, middleware.NewJWTVerifier(testSecret, "", ""), e.store.Users())
	e.router = r
	e.handler = h
}

func (e *testEnv) token(email string) string {
	e.t.Helper()
	tok, err := middleware.GenerateToken(testSecret, "", email, "Test "+email, time.Hour)
	require.NoError(e.t, err)
	return tok
}

// do sends body as JSON with a bearer token for email; an empty email sends no token
func (e *testEnv) do(method, path, email string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set("Authorization", "Bearer "+e.token(email))
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func (e *testEnv) seedUser(email string, role models.UserRole) *models.User {
	e.t.Helper()
	ctx := context.Background()
	u := &models.User{Name: "User " + email, Email: email, Role: models.RoleUser, Status: models.StatusActive}
	require.NoError(e.t, e.store.Users().Create(ctx, u))
	if role != models.RoleUser {
		var chefID *string
		if role == models.RoleChef {
			e.chefSeq++
			id := fmt.Sprintf("chef-%04d", e.chefSeq)
			chefID = &id
		}
		require.NoError(e.t, e.store.Users().SetRole(ctx, email, role, chefID))
	}
	u, err := e.store.Users().GetByEmail(ctx, email)
	require.NoError(e.t, err)
	return u
}

func (e *testEnv) seedMeal(chef *models.User, name string, price float64) *models.Meal {
	e.t.Helper()
	m := &models.Meal{FoodName: name, ChefName: chef.Name, ChefEmail: chef.Email, Price: price}
	if chef.ChefID != nil {
		m.ChefID = *chef.ChefID
	}
	require.NoError(e.t, e.store.Meals().Create(context.Background(), m))
	return m
}

func (e *testEnv) seedOrder(customer *models.User, meal *models.Meal, qty int) *models.Order {
	e.t.Helper()
	o := &models.Order{
		MealID:        meal.ID,
		MealName:      meal.FoodName,
		UserEmail:     customer.Email,
		ChefID:        meal.ChefID,
		ChefEmail:     meal.ChefEmail,
		Quantity:      qty,
		UnitPrice:     meal.Price,
		Price:         models.LineTotal(meal.Price, qty),
		OrderStatus:   models.OrderPending,
		PaymentStatus: models.PaymentPending,
	}
	require.NoError(e.t, e.store.Orders().Create(context.Background(), o))
	return o
}

// obj is shorthand for a JSON object body
type obj = map[string]interface{}
