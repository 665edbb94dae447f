package models

import "time"

type Favorite struct {
	ID        string    `json:"_id" bson:"_id" gorm:"primaryKey"`
	UserEmail string    `json:"userEmail" bson:"userEmail" gorm:"not null;uniqueIndex:idx_favorite_user_meal"`
	MealID    string    `json:"mealId" bson:"mealId" gorm:"not null;uniqueIndex:idx_favorite_user_meal"`
	MealName  string    `json:"mealName" bson:"mealName"`
	ChefName  string    `json:"chefName" bson:"chefName"`
	Price     float64   `json:"price" bson:"price"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
