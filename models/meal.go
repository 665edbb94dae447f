package models

import "time"

type Meal struct {
	ID                    string    `json:"_id" bson:"_id" gorm:"primaryKey"`
	FoodName              string    `json:"foodName" bson:"foodName" gorm:"not null"`
	ChefName              string    `json:"chefName" bson:"chefName"`
	ChefEmail             string    `json:"chefEmail" bson:"chefEmail" gorm:"index;not null"`
	ChefID                string    `json:"chefId" bson:"chefId" gorm:"index"`
	Image                 string    `json:"image" bson:"image"`
	Price                 float64   `json:"price" bson:"price" gorm:"not null"`
	Rating                float64   `json:"rating" bson:"rating" gorm:"index;default:0"`
	Ingredients           []string  `json:"ingredients" bson:"ingredients" gorm:"serializer:json"`
	DeliveryArea          string    `json:"deliveryArea" bson:"deliveryArea"`
	EstimatedDeliveryTime string    `json:"estimatedDeliveryTime" bson:"estimatedDeliveryTime"`
	ChefExperience        string    `json:"chefExperience" bson:"chefExperience"`
	CreatedAt             time.Time `json:"createdAt" bson:"createdAt" gorm:"index"`
}

// MealPatch carries a partial update; nil fields are left untouched
type MealPatch struct {
	FoodName              *string   `json:"foodName"`
	Image                 *string   `json:"image"`
	Price                 *float64  `json:"price" binding:"omitempty,gt=0"`
	Rating                *float64  `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Ingredients           *[]string `json:"ingredients"`
	DeliveryArea          *string   `json:"deliveryArea"`
	EstimatedDeliveryTime *string   `json:"estimatedDeliveryTime"`
	ChefExperience        *string   `json:"chefExperience"`
}

// Empty reports whether the patch would change nothing
func (p MealPatch) Empty() bool {
	return p.FoodName == nil && p.Image == nil && p.Price == nil && p.Rating == nil &&
		p.Ingredients == nil && p.DeliveryArea == nil && p.EstimatedDeliveryTime == nil &&
		p.ChefExperience == nil
}

// Pagination is the envelope returned with paged meal listings
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalMeals  int64 `json:"totalMeals"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination derives page flags from the total count
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalMeals:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
