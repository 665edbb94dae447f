package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"homechef-api/events"
	"homechef-api/middleware"
	"homechef-api/models"
	"homechef-api/store"

	"github.com/gin-gonic/gin"
)

// chefIDAttempts bounds the uniqueness-checked retry loop for chef identifiers
const chefIDAttempts = 20

var (
	errRequestResolved  = errors.New("request already resolved")
	errChefIDsExhausted = errors.New("could not allocate a unique chef identifier")
)

type CreateRequestRequest struct {
	RequestType models.RequestType `json:"requestType" binding:"required,requesttype"`
}

type requestEvent struct {
	RequestID   string             `json:"requestId"`
	UserEmail   string             `json:"userEmail"`
	RequestType models.RequestType `json:"requestType"`
	ChefID      string             `json:"chefId,omitempty"`
}

// SubmitRequest asks for chef or admin privileges for the caller
func (h *Handler) SubmitRequest(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(c)

	var req CreateRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	if string(user.Role) == string(req.RequestType) {
		respondError(c, http.StatusConflict, "You already have the "+string(req.RequestType)+" role")
		return
	}

	pending, err := h.store.Requests().HasPending(ctx, user.Email, req.RequestType)
	if err != nil {
		h.internalError(c, "Failed to check pending requests", err)
		return
	}
	if pending {
		respondError(c, http.StatusConflict, "You already have a pending "+string(req.RequestType)+" request")
		return
	}

	request := models.Request{
		UserName:      user.Name,
		UserEmail:     user.Email,
		RequestType:   req.RequestType,
		RequestStatus: models.RequestPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.store.Requests().Create(ctx, &request); err != nil {
		// the partial unique index catches submissions racing past HasPending
		if errors.Is(err, store.ErrDuplicate) {
			respondError(c, http.StatusConflict, "You already have a pending "+string(req.RequestType)+" request")
			return
		}
		h.internalError(c, "Failed to create request", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Request submitted", "request": request})
}

// ListRequests returns every role request (admin only)
func (h *Handler) ListRequests(c *gin.Context) {
	reqs, err := h.store.Requests().List(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to list requests", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reqs), "requests": reqs})
}

// loadPendingRequest answers 404/409 unless the request exists and is pending
func (h *Handler) loadPendingRequest(c *gin.Context) (*models.Request, bool) {
	req, err := h.store.Requests().GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Request not found")
		return nil, false
	}
	if err != nil {
		h.internalError(c, "Failed to get request", err)
		return nil, false
	}
	if req.RequestStatus != models.RequestPending {
		respondError(c, http.StatusConflict, "Request already "+string(req.RequestStatus))
		return nil, false
	}
	return req, true
}

// ApproveRequest promotes the requesting user and resolves the request in one
// transaction.
func (h *Handler) ApproveRequest(c *gin.Context) {
	req, ok := h.loadPendingRequest(c)
	if !ok {
		return
	}

	role := models.RoleAdmin
	if req.RequestType == models.RequestChef {
		role = models.RoleChef
	}

	var chefID *string
	err := h.store.InTx(c.Request.Context(), func(ctx context.Context, tx store.Store) error {
		if role == models.RoleChef {
			id, err := h.newChefID(ctx, tx.Users())
			if err != nil {
				return err
			}
			chefID = &id
		}

		if err := tx.Users().SetRole(ctx, req.UserEmail, role, chefID); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			h.logger.Warn("Approved request for unknown user", "request_id", req.ID, "email", req.UserEmail)
		}

		if err := tx.Requests().Resolve(ctx, req.ID, models.RequestApproved, time.Now().UTC()); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errRequestResolved
			}
			return err
		}
		return nil
	})
	switch {
	case errors.Is(err, errRequestResolved):
		respondError(c, http.StatusConflict, "Request already resolved")
		return
	case errors.Is(err, store.ErrDuplicate), errors.Is(err, errChefIDsExhausted):
		respondError(c, http.StatusConflict, "Could not allocate a chef identifier, please retry")
		return
	case err != nil:
		h.internalError(c, "Failed to approve request", err)
		return
	}

	event := requestEvent{RequestID: req.ID, UserEmail: req.UserEmail, RequestType: req.RequestType}
	if chefID != nil {
		event.ChefID = *chefID
	}
	h.publish(c.Request.Context(), events.SubjectRequestApproved, event)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Request approved",
		"requestId": req.ID,
		"role":      role,
		"chefId":    chefID,
	})
}

// RejectRequest resolves a pending request without touching the user
func (h *Handler) RejectRequest(c *gin.Context) {
	req, ok := h.loadPendingRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	err := h.store.Requests().Resolve(ctx, req.ID, models.RequestRejected, time.Now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusConflict, "Request already resolved")
		return
	}
	if err != nil {
		h.internalError(c, "Failed to reject request", err)
		return
	}

	h.publish(ctx, events.SubjectRequestRejected, requestEvent{
		RequestID:   req.ID,
		UserEmail:   req.UserEmail,
		RequestType: req.RequestType,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Request rejected", "requestId": req.ID})
}

// newChefID draws chef-NNNN identifiers until one is unused. The unique index
// on chefId still guards against a concurrent approval taking the same one.
func (h *Handler) newChefID(ctx context.Context, users store.UserRepository) (string, error) {
	for i := 0; i < chefIDAttempts; i++ {
		id := fmt.Sprintf("chef-%04d", 1000+h.randIntn(9000))
		exists, err := users.ChefIDExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", errChefIDsExhausted
}
