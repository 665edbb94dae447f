package sqlstore

import (
	"context"
	"time"

	"homechef-api/models"

	"gorm.io/gorm"
)

type favoriteRepo struct {
	db *gorm.DB
}

func (r *favoriteRepo) Create(ctx context.Context, fav *models.Favorite) error {
	if fav.ID == "" {
		fav.ID = newID()
	}
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now().UTC()
	}
	return translate(r.db.WithContext(ctx).Create(fav).Error)
}

func (r *favoriteRepo) Exists(ctx context.Context, email, mealID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_email = ? AND meal_id = ?", email, mealID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *favoriteRepo) ListByUser(ctx context.Context, email string) ([]models.Favorite, error) {
	favs := []models.Favorite{}
	err := r.db.WithContext(ctx).Where("user_email = ?", email).Order("created_at desc").Find(&favs).Error
	return favs, translate(err)
}

func (r *favoriteRepo) Delete(ctx context.Context, id, email string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_email = ?", id, email).Delete(&models.Favorite{})
	return affected(res)
}
