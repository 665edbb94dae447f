package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"homechef-api/events"
	"homechef-api/middleware"
	"homechef-api/models"
	"homechef-api/payment"
	"homechef-api/store"

	"github.com/gin-gonic/gin"
)

type CheckoutSessionRequest struct {
	OrderID  string  `json:"orderId" binding:"required"`
	MealID   string  `json:"mealId"`
	MealName string  `json:"mealName"`
	Price    float64 `json:"price" binding:"omitempty,gt=0"`
	Quantity int     `json:"quantity" binding:"omitempty,min=1"`
}

type ConfirmPaymentRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

var (
	errOrderMissing = errors.New("order missing")
	errForeignOrder = errors.New("order belongs to another user")
)

// CreateCheckoutSession starts a hosted checkout for one of the caller's
// unpaid orders. The charged amount comes from the stored order, so the
// client-sent price and quantity are informational only.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	ctx := c.Request.Context()
	email := middleware.GetEmail(c)

	var req CheckoutSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.store.Orders().GetByID(ctx, req.OrderID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.internalError(c, "Failed to get order", err)
		return
	}
	if order.UserEmail != email {
		respondError(c, http.StatusForbidden, "This order does not belong to you")
		return
	}
	if order.PaymentStatus == models.PaymentPaid {
		respondError(c, http.StatusConflict, "Order is already paid")
		return
	}
	if order.OrderStatus == models.OrderCancelled {
		respondError(c, http.StatusConflict, "Cancelled orders cannot be paid")
		return
	}

	session, err := h.payments.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		OrderID:       order.ID,
		MealID:        order.MealID,
		MealName:      order.MealName,
		CustomerEmail: email,
		UnitAmount:    models.ToMinorUnits(order.UnitPrice),
		Quantity:      int64(order.Quantity),
	})
	if err != nil {
		h.logger.Error("Checkout session failed", "error", err, "order_id", order.ID)
		respondError(c, http.StatusBadGateway, "Payment provider unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}

type paymentEvent struct {
	OrderID       string  `json:"orderId"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	UserEmail     string  `json:"userEmail"`
}

// ConfirmPayment reconciles a completed checkout: one Payment record per
// transaction, and the order flips to paid in the same transaction.
func (h *Handler) ConfirmPayment(c *gin.Context) {
	ctx := c.Request.Context()
	email := middleware.GetEmail(c)

	var req ConfirmPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.payments.GetSession(ctx, req.SessionID)
	if err != nil {
		h.logger.Error("Checkout session lookup failed", "error", err, "session_id", req.SessionID)
		respondError(c, http.StatusBadGateway, "Payment provider unavailable")
		return
	}
	if !session.Paid() {
		respondError(c, http.StatusBadRequest, "Payment not completed")
		return
	}
	if session.TransactionID == "" {
		respondError(c, http.StatusBadRequest, "Session has no transaction")
		return
	}

	_, err = h.store.Payments().GetByTransactionID(ctx, session.TransactionID)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Payment already recorded"})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.internalError(c, "Failed to check payment", err)
		return
	}

	var rec models.Payment
	err = h.store.InTx(ctx, func(ctx context.Context, tx store.Store) error {
		order, err := tx.Orders().GetByID(ctx, session.OrderID())
		if errors.Is(err, store.ErrNotFound) {
			return errOrderMissing
		}
		if err != nil {
			return err
		}
		if order.UserEmail != email {
			return errForeignOrder
		}
		// the provider already captured the money, so it is recorded either way
		if order.OrderStatus == models.OrderCancelled {
			h.logger.Warn("Payment captured for cancelled order", "order_id", order.ID, "transaction_id", session.TransactionID)
		}

		paidAt := time.Now().UTC()
		rec = models.Payment{
			OrderID:       order.ID,
			TransactionID: session.TransactionID,
			Amount:        models.FromMinorUnits(session.AmountTotal),
			Currency:      session.Currency,
			UserEmail:     order.UserEmail,
			ChefID:        order.ChefID,
			MealID:        order.MealID,
			MealName:      order.MealName,
			Status:        models.PaymentPaid,
			PaidAt:        paidAt,
		}
		if err := tx.Payments().Create(ctx, &rec); err != nil {
			return err
		}
		return tx.Orders().MarkPaid(ctx, order.ID, session.TransactionID, paidAt)
	})
	switch {
	case errors.Is(err, errOrderMissing):
		respondError(c, http.StatusNotFound, "Order not found")
		return
	case errors.Is(err, errForeignOrder):
		respondError(c, http.StatusForbidden, "This order does not belong to you")
		return
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Duplicate payment blocked"})
		return
	case err != nil:
		h.internalError(c, "Failed to record payment", err)
		return
	}

	h.publish(ctx, events.SubjectPaymentSucceeded, paymentEvent{
		OrderID:       rec.OrderID,
		TransactionID: rec.TransactionID,
		Amount:        rec.Amount,
		Currency:      rec.Currency,
		UserEmail:     rec.UserEmail,
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment recorded", "payment": rec})
}

// MyPayments returns the caller's payment history
func (h *Handler) MyPayments(c *gin.Context) {
	payments, err := h.store.Payments().ListByUser(c.Request.Context(), middleware.GetEmail(c))
	if err != nil {
		h.internalError(c, "Failed to list payments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(payments), "payments": payments})
}
