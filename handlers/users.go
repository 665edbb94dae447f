package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"homechef-api/middleware"
	"homechef-api/models"
	"homechef-api/store"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	Name    string `json:"name"`
	Image   string `json:"image"`
	Address string `json:"address"`
}

// CreateUser records the caller's account on first sign-in. Role and status
// are always server defaults.
func (h *Handler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()
	identity := middleware.GetIdentity(c)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	existing, err := h.store.Users().GetByEmail(ctx, identity.Email)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "User already exists", "inserted": false, "user": existing})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.internalError(c, "Failed to look up user", err)
		return
	}

	name := req.Name
	if name == "" {
		name = identity.Name
	}
	user := models.User{
		Name:      name,
		Email:     identity.Email,
		Image:     req.Image,
		Address:   req.Address,
		Role:      models.RoleUser,
		Status:    models.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.Users().Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondError(c, http.StatusConflict, "User already exists")
			return
		}
		h.internalError(c, "Failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created", "inserted": true, "user": user})
}

// ListUsers returns every account (admin only)
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.Users().List(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to list users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// GetUser returns one account; callers may read their own, admins any
func (h *Handler) GetUser(c *gin.Context) {
	ctx := c.Request.Context()
	email := c.Param("email")
	caller := middleware.GetEmail(c)

	if email != caller {
		me, err := h.store.Users().GetByEmail(ctx, caller)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			h.internalError(c, "Failed to look up caller", err)
			return
		}
		if me == nil || me.Role != models.RoleAdmin {
			respondError(c, http.StatusForbidden, "Forbidden: you can only view your own profile")
			return
		}
	}

	user, err := h.store.Users().GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.internalError(c, "Failed to get user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetMyRole tells the client which dashboard to render
func (h *Handler) GetMyRole(c *gin.Context) {
	user, err := h.store.Users().GetByEmail(c.Request.Context(), middleware.GetEmail(c))
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.internalError(c, "Failed to get user role", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": user.Role, "status": user.Status, "chefId": user.ChefID})
}

// MarkFraud flags an account; fraud accounts cannot publish meals or order
func (h *Handler) MarkFraud(c *gin.Context) {
	err := h.store.Users().SetStatus(c.Request.Context(), c.Param("id"), models.StatusFraud)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.internalError(c, "Failed to mark user as fraud", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User marked as fraud", "userId": c.Param("id")})
}
