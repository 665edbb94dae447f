package sqlstore

import (
	"context"
	"time"

	"homechef-api/models"

	"gorm.io/gorm"
)

type reviewRepo struct {
	db *gorm.DB
}

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = newID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	return translate(r.db.WithContext(ctx).Create(review).Error)
}

func (r *reviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (r *reviewRepo) Exists(ctx context.Context, mealID, reviewerEmail string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("meal_id = ? AND reviewer_email = ?", mealID, reviewerEmail).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *reviewRepo) ListByMeal(ctx context.Context, mealID string) ([]models.Review, error) {
	reviews := []models.Review{}
	err := r.db.WithContext(ctx).Where("meal_id = ?", mealID).Order("created_at desc").Find(&reviews).Error
	return reviews, translate(err)
}

func (r *reviewRepo) ListByReviewer(ctx context.Context, email string) ([]models.Review, error) {
	reviews := []models.Review{}
	err := r.db.WithContext(ctx).Where("reviewer_email = ?", email).Order("created_at desc").Find(&reviews).Error
	return reviews, translate(err)
}

func (r *reviewRepo) Update(ctx context.Context, id string, patch models.ReviewPatch) error {
	var values models.Review
	var fields []string
	if patch.Rating != nil {
		values.Rating = *patch.Rating
		fields = append(fields, "Rating")
	}
	if patch.Comment != nil {
		values.Comment = *patch.Comment
		fields = append(fields, "Comment")
	}
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Select(fields).Updates(&values)
	return affected(res)
}

func (r *reviewRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{}))
}
