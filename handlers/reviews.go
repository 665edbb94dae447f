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

type CreateReviewRequest struct {
	MealID  string `json:"mealId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ListMealReviews returns the reviews of one meal (public)
func (h *Handler) ListMealReviews(c *gin.Context) {
	mealID := c.Query("mealId")
	if mealID == "" {
		respondError(c, http.StatusBadRequest, "Query parameter 'mealId' is required")
		return
	}
	reviews, err := h.store.Reviews().ListByMeal(c.Request.Context(), mealID)
	if err != nil {
		h.internalError(c, "Failed to list reviews", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

func (h *Handler) MyReviews(c *gin.Context) {
	reviews, err := h.store.Reviews().ListByReviewer(c.Request.Context(), middleware.GetEmail(c))
	if err != nil {
		h.internalError(c, "Failed to list reviews", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

// CreateReview allows one review per meal per reviewer
func (h *Handler) CreateReview(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(c)

	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.store.Meals().GetByID(ctx, req.MealID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Meal not found")
			return
		}
		h.internalError(c, "Failed to get meal", err)
		return
	}

	exists, err := h.store.Reviews().Exists(ctx, req.MealID, user.Email)
	if err != nil {
		h.internalError(c, "Failed to check existing review", err)
		return
	}
	if exists {
		respondError(c, http.StatusConflict, "You have already reviewed this meal")
		return
	}

	review := models.Review{
		MealID:        req.MealID,
		ReviewerEmail: user.Email,
		ReviewerName:  user.Name,
		ReviewerImage: user.Image,
		Rating:        req.Rating,
		Comment:       req.Comment,
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.store.Reviews().Create(ctx, &review); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondError(c, http.StatusConflict, "You have already reviewed this meal")
			return
		}
		h.internalError(c, "Failed to create review", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review added", "review": review})
}

func (h *Handler) loadReview(c *gin.Context) (*models.Review, bool) {
	review, err := h.store.Reviews().GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Review not found")
		return nil, false
	}
	if err != nil {
		h.internalError(c, "Failed to get review", err)
		return nil, false
	}
	return review, true
}

// UpdateReview lets the author change rating or comment
func (h *Handler) UpdateReview(c *gin.Context) {
	review, ok := h.loadReview(c)
	if !ok {
		return
	}
	if review.ReviewerEmail != middleware.GetEmail(c) {
		respondError(c, http.StatusForbidden, "You can only edit your own reviews")
		return
	}

	var patch models.ReviewPatch
	if !bindJSON(c, &patch) {
		return
	}
	if patch.Empty() {
		respondError(c, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	ctx := c.Request.Context()
	if err := h.store.Reviews().Update(ctx, review.ID, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Review not found")
			return
		}
		h.internalError(c, "Failed to update review", err)
		return
	}

	updated, err := h.store.Reviews().GetByID(ctx, review.ID)
	if err != nil {
		h.internalError(c, "Failed to reload review", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review updated", "review": updated})
}

// DeleteReview is allowed for the author and admins
func (h *Handler) DeleteReview(c *gin.Context) {
	review, ok := h.loadReview(c)
	if !ok {
		return
	}
	user := middleware.GetUser(c)
	if review.ReviewerEmail != user.Email && user.Role != models.RoleAdmin {
		respondError(c, http.StatusForbidden, "You can only delete your own reviews")
		return
	}

	if err := h.store.Reviews().Delete(c.Request.Context(), review.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Review not found")
			return
		}
		h.internalError(c, "Failed to delete review", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted", "reviewId": review.ID})
}
