package routes

import (
	"homechef-api/handlers"
	"homechef-api/middleware"
	"homechef-api/models"
	"homechef-api/store"

	"github.com/gin-gonic/gin"
)

// Access is the authorization level a route demands
type Access int

const (
	Public Access = iota
	// Authenticated only needs a verified token; the caller may have no user record yet
	Authenticated
	// Member is any registered user, whatever the role
	Member
	Chef
	ChefOrAdmin
	Admin
)

type Route struct {
	Method  string
	Path    string
	Access  Access
	Handler gin.HandlerFunc
}

// Table lists every route with its access level
func Table(h *handlers.Handler) []Route {
	return []Route{
		{"GET", "/", Public, h.Root},
		{"GET", "/health", Public, h.Health},
		{"GET", "/state-machine", Public, h.StateMachineInfo},

		// Users
		{"POST", "/users", Authenticated, h.CreateUser},
		{"GET", "/users", Admin, h.ListUsers},
		{"GET", "/users/me/role", Authenticated, h.GetMyRole},
		{"GET", "/users/:email", Authenticated, h.GetUser},
		{"PATCH", "/users/fraud/:id", Admin, h.MarkFraud},

		// Meals
		{"GET", "/meals", Public, h.ListMeals},
		{"GET", "/meals/top-rated", Public, h.TopRatedMeals},
		{"GET", "/meals/:id", Authenticated, h.GetMeal},
		{"POST", "/meals", Chef, h.CreateMeal},
		{"PUT", "/meals/:id", ChefOrAdmin, h.UpdateMeal},
		{"DELETE", "/meals/:id", ChefOrAdmin, h.DeleteMeal},

		// Orders
		{"POST", "/orders", Member, h.CreateOrder},
		{"GET", "/orders/my", Member, h.MyOrders},
		{"GET", "/orders/chef", Chef, h.ChefOrders},
		{"GET", "/orders/:id", Member, h.GetOrder},
		{"PATCH", "/orders/:id/status", ChefOrAdmin, h.UpdateOrderStatus},
		{"PATCH", "/orders/:id/cancel", Member, h.CancelOrder},

		// Role requests
		{"POST", "/requests", Member, h.SubmitRequest},
		{"GET", "/requests", Admin, h.ListRequests},
		{"PATCH", "/requests/accept/:id", Admin, h.ApproveRequest},
		{"PATCH", "/requests/reject/:id", Admin, h.RejectRequest},

		// Reviews
		{"GET", "/reviews", Public, h.ListMealReviews},
		{"GET", "/reviews/my", Member, h.MyReviews},
		{"POST", "/reviews", Member, h.CreateReview},
		{"PATCH", "/reviews/:id", Member, h.UpdateReview},
		{"DELETE", "/reviews/:id", Member, h.DeleteReview},

		// Favorites
		{"GET", "/favorites", Member, h.ListFavorites},
		{"POST", "/favorites", Member, h.CreateFavorite},
		{"DELETE", "/favorites/:id", Member, h.DeleteFavorite},

		// Payments
		{"POST", "/create-checkout-session", Member, h.CreateCheckoutSession},
		{"POST", "/payment-success", Member, h.ConfirmPayment},
		{"GET", "/payments/my", Member, h.MyPayments},
	}
}

// Setup registers the route table on r, attaching the middleware chain each
// access level requires.
func Setup(r gin.IRoutes, h *handlers.Handler, verifier middleware.TokenVerifier, users store.UserRepository) {
	for _, rt := range Table(h) {
		chain := append(guards(rt.Access, verifier, users), rt.Handler)
		r.Handle(rt.Method, rt.Path, chain...)
	}
}

func guards(access Access, verifier middleware.TokenVerifier, users store.UserRepository) []gin.HandlerFunc {
	auth := middleware.AuthRequired(verifier)
	switch access {
	case Authenticated:
		return []gin.HandlerFunc{auth}
	case Member:
		return []gin.HandlerFunc{auth, middleware.RoleRequired(users, models.RoleUser, models.RoleChef, models.RoleAdmin)}
	case Chef:
		return []gin.HandlerFunc{auth, middleware.RoleRequired(users, models.RoleChef)}
	case ChefOrAdmin:
		return []gin.HandlerFunc{auth, middleware.RoleRequired(users, models.RoleChef, models.RoleAdmin)}
	case Admin:
		return []gin.HandlerFunc{auth, middleware.RoleRequired(users, models.RoleAdmin)}
	default:
		return nil
	}
}
