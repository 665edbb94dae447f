package models

import "time"

type Review struct {
	ID            string    `json:"_id" bson:"_id" gorm:"primaryKey"`
	MealID        string    `json:"mealId" bson:"mealId" gorm:"not null;uniqueIndex:idx_review_meal_reviewer"`
	ReviewerEmail string    `json:"reviewerEmail" bson:"reviewerEmail" gorm:"not null;uniqueIndex:idx_review_meal_reviewer"`
	ReviewerName  string    `json:"reviewerName" bson:"reviewerName"`
	ReviewerImage string    `json:"reviewerImage" bson:"reviewerImage"`
	Rating        int       `json:"rating" bson:"rating" gorm:"not null"`
	Comment       string    `json:"comment" bson:"comment"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

type ReviewPatch struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

func (p ReviewPatch) Empty() bool {
	return p.Rating == nil && p.Comment == nil
}
