package models

import "time"

// Payment is written once per confirmed checkout; TransactionID is the idempotency key
type Payment struct {
	ID            string        `json:"_id" bson:"_id" gorm:"primaryKey"`
	OrderID       string        `json:"orderId" bson:"orderId" gorm:"uniqueIndex;not null"`
	TransactionID string        `json:"transactionId" bson:"transactionId" gorm:"uniqueIndex;not null"`
	Amount        float64       `json:"amount" bson:"amount"`
	Currency      string        `json:"currency" bson:"currency"`
	UserEmail     string        `json:"userEmail" bson:"userEmail" gorm:"index"`
	ChefID        string        `json:"chefId" bson:"chefId"`
	MealID        string        `json:"mealId" bson:"mealId"`
	MealName      string        `json:"mealName" bson:"mealName"`
	Status        PaymentStatus `json:"status" bson:"status"`
	PaidAt        time.Time     `json:"paidAt" bson:"paidAt"`
}
