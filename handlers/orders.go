package handlers

import (
	"errors"
	"net/http"
	"time"

	"homechef-api/events"
	"homechef-api/middleware"
	"homechef-api/models"
	"homechef-api/statemachine"
	"homechef-api/store"

	"github.com/gin-gonic/gin"
)

type CreateOrderRequest struct {
	MealID   string `json:"mealId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Address  string `json:"address"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus models.OrderStatus `json:"orderStatus" binding:"required,orderstatus"`
}

type orderStatusEvent struct {
	OrderID   string             `json:"orderId"`
	From      models.OrderStatus `json:"from"`
	To        models.OrderStatus `json:"to"`
	ChangedBy string             `json:"changedBy"`
}

// CreateOrder places an order at the meal's current price
func (h *Handler) CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(c)
	if user.IsFraud() {
		respondError(c, http.StatusForbidden, "Fraud accounts cannot place orders")
		return
	}

	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	meal, err := h.store.Meals().GetByID(ctx, req.MealID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Meal not found")
		return
	}
	if err != nil {
		h.internalError(c, "Failed to get meal", err)
		return
	}

	now := time.Now().UTC()
	order := models.Order{
		MealID:        meal.ID,
		MealName:      meal.FoodName,
		UserEmail:     user.Email,
		ChefID:        meal.ChefID,
		ChefEmail:     meal.ChefEmail,
		Quantity:      req.Quantity,
		UnitPrice:     meal.Price,
		Price:         models.LineTotal(meal.Price, req.Quantity),
		Address:       req.Address,
		OrderStatus:   models.OrderPending,
		PaymentStatus: models.PaymentPending,
		StatusHistory: []models.StatusChange{{To: models.OrderPending, ChangedBy: user.Email, At: now}},
		CreatedAt:     now,
	}
	if err := h.store.Orders().Create(ctx, &order); err != nil {
		h.internalError(c, "Failed to place order", err)
		return
	}

	h.publish(ctx, events.SubjectOrderCreated, order)
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// MyOrders returns the caller's orders, newest first
func (h *Handler) MyOrders(c *gin.Context) {
	orders, err := h.store.Orders().ListByUser(c.Request.Context(), middleware.GetEmail(c))
	if err != nil {
		h.internalError(c, "Failed to list orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// ChefOrders returns orders placed against the calling chef's meals
func (h *Handler) ChefOrders(c *gin.Context) {
	chef := middleware.GetUser(c)
	if chef.ChefID == nil {
		c.JSON(http.StatusOK, gin.H{"count": 0, "orders": []models.Order{}})
		return
	}

	orders, err := h.store.Orders().ListByChef(c.Request.Context(), *chef.ChefID)
	if err != nil {
		h.internalError(c, "Failed to list chef orders", err)
		return
	}

	summary := map[models.OrderStatus]int{}
	for _, o := range orders {
		summary[o.OrderStatus]++
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orderSummary": summary, "orders": orders})
}

func (h *Handler) loadOrder(c *gin.Context) (*models.Order, bool) {
	order, err := h.store.Orders().GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Order not found")
		return nil, false
	}
	if err != nil {
		h.internalError(c, "Failed to get order", err)
		return nil, false
	}
	return order, true
}

func ownsAsChef(user *models.User, order *models.Order) bool {
	return user.ChefID != nil && *user.ChefID == order.ChefID
}

// GetOrder is visible to the customer, the order's chef and admins
func (h *Handler) GetOrder(c *gin.Context) {
	order, ok := h.loadOrder(c)
	if !ok {
		return
	}
	user := middleware.GetUser(c)
	if order.UserEmail != user.Email && !ownsAsChef(user, order) && user.Role != models.RoleAdmin {
		respondError(c, http.StatusForbidden, "This order does not belong to you")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order through the state machine. Delivery also
// marks the order as paid.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, ok := h.loadOrder(c)
	if !ok {
		return
	}

	user := middleware.GetUser(c)
	actor := statemachine.ActorAdmin
	if user.Role != models.RoleAdmin {
		actor = statemachine.ActorChef
		if !ownsAsChef(user, order) {
			respondError(c, http.StatusForbidden, "This order does not belong to your kitchen")
			return
		}
	}

	h.transition(c, order, req.OrderStatus, actor, user.Email)
}

// CancelOrder lets the customer withdraw an unpaid pending order
func (h *Handler) CancelOrder(c *gin.Context) {
	order, ok := h.loadOrder(c)
	if !ok {
		return
	}
	user := middleware.GetUser(c)
	if order.UserEmail != user.Email {
		respondError(c, http.StatusForbidden, "This order does not belong to you")
		return
	}
	if order.PaymentStatus == models.PaymentPaid {
		respondError(c, http.StatusConflict, "Paid orders cannot be cancelled")
		return
	}

	h.transition(c, order, models.OrderCancelled, statemachine.ActorUser, user.Email)
}

func (h *Handler) transition(c *gin.Context, order *models.Order, to models.OrderStatus, actor statemachine.Actor, by string) {
	if err := statemachine.CanTransition(order.OrderStatus, to, actor); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"message":         err.Error(),
			"currentStatus":   order.OrderStatus,
			"requested":       to,
			"validNextStates": statemachine.ValidTransitionsFrom(order.OrderStatus),
		})
		return
	}

	ctx := c.Request.Context()
	change := models.StatusChange{From: order.OrderStatus, To: to, ChangedBy: by, At: time.Now().UTC()}
	markPaid := to == models.OrderDelivered
	if err := h.store.Orders().UpdateStatus(ctx, order.ID, change, markPaid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		if errors.Is(err, store.ErrConflict) {
			respondError(c, http.StatusConflict, "Order status changed, retry")
			return
		}
		h.internalError(c, "Failed to update order status", err)
		return
	}

	paymentStatus := order.PaymentStatus
	if markPaid {
		paymentStatus = models.PaymentPaid
	}
	h.publish(ctx, events.SubjectOrderStatusChanged, orderStatusEvent{
		OrderID:   order.ID,
		From:      change.From,
		To:        change.To,
		ChangedBy: by,
	})
	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"orderId":        order.ID,
		"previousStatus": change.From,
		"orderStatus":    change.To,
		"paymentStatus":  paymentStatus,
	})
}
