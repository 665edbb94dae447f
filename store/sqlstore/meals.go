package sqlstore

import (
	"context"
	"time"

	"homechef-api/models"
	"homechef-api/store"

	"gorm.io/gorm"
)

type mealRepo struct {
	db *gorm.DB
}

func (r *mealRepo) Create(ctx context.Context, meal *models.Meal) error {
	if meal.ID == "" {
		meal.ID = newID()
	}
	if meal.CreatedAt.IsZero() {
		meal.CreatedAt = time.Now().UTC()
	}
	return translate(r.db.WithContext(ctx).Create(meal).Error)
}

func (r *mealRepo) GetByID(ctx context.Context, id string) (*models.Meal, error) {
	var meal models.Meal
	if err := r.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &meal, nil
}

func (r *mealRepo) List(ctx context.Context, filter store.MealFilter) ([]models.Meal, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Meal{})
	if filter.ChefEmail != "" {
		query = query.Where("chef_email = ?", filter.ChefEmail)
	}
	// Count and Find each start from the shared filter.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	meals := []models.Meal{}
	err := query.Order("created_at desc").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&meals).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return meals, total, nil
}

func (r *mealRepo) TopRated(ctx context.Context, n int) ([]models.Meal, error) {
	meals := []models.Meal{}
	err := r.db.WithContext(ctx).Order("rating desc").Order("created_at desc").Limit(n).Find(&meals).Error
	return meals, translate(err)
}

func (r *mealRepo) Update(ctx context.Context, id string, patch models.MealPatch) error {
	var values models.Meal
	var fields []string
	if patch.FoodName != nil {
		values.FoodName = *patch.FoodName
		fields = append(fields, "FoodName")
	}
	if patch.Image != nil {
		values.Image = *patch.Image
		fields = append(fields, "Image")
	}
	if patch.Price != nil {
		values.Price = *patch.Price
		fields = append(fields, "Price")
	}
	if patch.Rating != nil {
		values.Rating = *patch.Rating
		fields = append(fields, "Rating")
	}
	if patch.Ingredients != nil {
		values.Ingredients = *patch.Ingredients
		fields = append(fields, "Ingredients")
	}
	if patch.DeliveryArea != nil {
		values.DeliveryArea = *patch.DeliveryArea
		fields = append(fields, "DeliveryArea")
	}
	if patch.EstimatedDeliveryTime != nil {
		values.EstimatedDeliveryTime = *patch.EstimatedDeliveryTime
		fields = append(fields, "EstimatedDeliveryTime")
	}
	if patch.ChefExperience != nil {
		values.ChefExperience = *patch.ChefExperience
		fields = append(fields, "ChefExperience")
	}
	if len(fields) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&models.Meal{}).
		Where("id = ?", id).
		Select(fields).
		Updates(&values)
	return affected(res)
}

func (r *mealRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Meal{}))
}
