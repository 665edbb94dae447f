package handlers

import (
	"errors"
	"net/http"
	"time"

	"homechef-api/middleware"
	"homechef-api/models"
	"homechef-api/store"

	"github.com/gin-gonic/gin"
)

type CreateFavoriteRequest struct {
	MealID string `json:"mealId" binding:"required"`
}

func (h *Handler) ListFavorites(c *gin.Context) {
	favs, err := h.store.Favorites().ListByUser(c.Request.Context(), middleware.GetEmail(c))
	if err != nil {
		h.internalError(c, "Failed to list favorites", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(favs), "favorites": favs})
}

// CreateFavorite bookmarks a meal for the caller, once per meal
func (h *Handler) CreateFavorite(c *gin.Context) {
	ctx := c.Request.Context()
	email := middleware.GetEmail(c)

	var req CreateFavoriteRequest
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

	exists, err := h.store.Favorites().Exists(ctx, email, meal.ID)
	if err != nil {
		h.internalError(c, "Failed to check favorites", err)
		return
	}
	if exists {
		respondError(c, http.StatusConflict, "Meal is already in your favorites")
		return
	}

	fav := models.Favorite{
		UserEmail: email,
		MealID:    meal.ID,
		MealName:  meal.FoodName,
		ChefName:  meal.ChefName,
		Price:     meal.Price,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.Favorites().Create(ctx, &fav); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondError(c, http.StatusConflict, "Meal is already in your favorites")
			return
		}
		h.internalError(c, "Failed to add favorite", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Added to favorites", "favorite": fav})
}

// DeleteFavorite only removes favorites owned by the caller
func (h *Handler) DeleteFavorite(c *gin.Context) {
	err := h.store.Favorites().Delete(c.Request.Context(), c.Param("id"), middleware.GetEmail(c))
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Favorite not found")
		return
	}
	if err != nil {
		h.internalError(c, "Failed to delete favorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites", "favoriteId": c.Param("id")})
}
