package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"homechef-api/middleware"
	"homechef-api/models"
	"homechef-api/store"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
	topRatedCount   = 6
)

type CreateMealRequest struct {
	FoodName              string   `json:"foodName" binding:"required"`
	Image                 string   `json:"image"`
	Price                 float64  `json:"price" binding:"required,gt=0"`
	Rating                float64  `json:"rating" binding:"gte=0,lte=5"`
	Ingredients           []string `json:"ingredients"`
	DeliveryArea          string   `json:"deliveryArea"`
	EstimatedDeliveryTime string   `json:"estimatedDeliveryTime"`
	ChefExperience        string   `json:"chefExperience"`
}

// ListMeals returns a page of meals, optionally for one chef (public)
func (h *Handler) ListMeals(c *gin.Context) {
	page, ok := positiveQueryInt(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := positiveQueryInt(c, "limit", defaultPageSize)
	if !ok {
		return
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	meals, total, err := h.store.Meals().List(c.Request.Context(), store.MealFilter{
		ChefEmail: c.Query("email"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		h.internalError(c, "Failed to list meals", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meals":      meals,
		"pagination": models.NewPagination(page, limit, total),
	})
}

func positiveQueryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		respondError(c, http.StatusBadRequest, "Query parameter '"+key+"' must be a positive integer")
		return 0, false
	}
	return n, true
}

// TopRatedMeals returns the best rated meals for the home page (public)
func (h *Handler) TopRatedMeals(c *gin.Context) {
	meals, err := h.store.Meals().TopRated(c.Request.Context(), topRatedCount)
	if err != nil {
		h.internalError(c, "Failed to load top rated meals", err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *Handler) GetMeal(c *gin.Context) {
	meal, err := h.store.Meals().GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Meal not found")
		return
	}
	if err != nil {
		h.internalError(c, "Failed to get meal", err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// CreateMeal publishes a meal under the calling chef
func (h *Handler) CreateMeal(c *gin.Context) {
	chef := middleware.GetUser(c)
	if chef.IsFraud() {
		respondError(c, http.StatusForbidden, "Fraud accounts cannot publish meals")
		return
	}

	var req CreateMealRequest
	if !bindJSON(c, &req) {
		return
	}

	meal := models.Meal{
		FoodName:              req.FoodName,
		ChefName:              chef.Name,
		ChefEmail:             chef.Email,
		Image:                 req.Image,
		Price:                 req.Price,
		Rating:                req.Rating,
		Ingredients:           req.Ingredients,
		DeliveryArea:          req.DeliveryArea,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
		ChefExperience:        req.ChefExperience,
		CreatedAt:             time.Now().UTC(),
	}
	if chef.ChefID != nil {
		meal.ChefID = *chef.ChefID
	}
	if err := h.store.Meals().Create(c.Request.Context(), &meal); err != nil {
		h.internalError(c, "Failed to create meal", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Meal created", "meal": meal})
}

// loadOwnedMeal fetches the meal and checks the caller may modify it
func (h *Handler) loadOwnedMeal(c *gin.Context) (*models.Meal, bool) {
	meal, err := h.store.Meals().GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Meal not found")
		return nil, false
	}
	if err != nil {
		h.internalError(c, "Failed to get meal", err)
		return nil, false
	}

	user := middleware.GetUser(c)
	if user.Role != models.RoleAdmin && meal.ChefEmail != user.Email {
		respondError(c, http.StatusForbidden, "You don't own this meal")
		return nil, false
	}
	return meal, true
}

// UpdateMeal applies a partial update; only named fields change
func (h *Handler) UpdateMeal(c *gin.Context) {
	meal, ok := h.loadOwnedMeal(c)
	if !ok {
		return
	}

	var patch models.MealPatch
	if !bindJSON(c, &patch) {
		return
	}
	if patch.Empty() {
		respondError(c, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	ctx := c.Request.Context()
	if err := h.store.Meals().Update(ctx, meal.ID, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Meal not found")
			return
		}
		h.internalError(c, "Failed to update meal", err)
		return
	}

	updated, err := h.store.Meals().GetByID(ctx, meal.ID)
	if err != nil {
		h.internalError(c, "Failed to reload meal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal updated", "meal": updated})
}

func (h *Handler) DeleteMeal(c *gin.Context) {
	meal, ok := h.loadOwnedMeal(c)
	if !ok {
		return
	}
	if err := h.store.Meals().Delete(c.Request.Context(), meal.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Meal not found")
			return
		}
		h.internalError(c, "Failed to delete meal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted", "mealId": meal.ID})
}
