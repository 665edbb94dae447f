package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order states
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderAccepted, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type Order struct {
	ID            string         `json:"_id" bson:"_id" gorm:"primaryKey"`
	MealID        string         `json:"mealId" bson:"mealId" gorm:"index;not null"`
	MealName      string         `json:"mealName" bson:"mealName"`
	UserEmail     string         `json:"userEmail" bson:"userEmail" gorm:"index;not null"`
	ChefID        string         `json:"chefId" bson:"chefId" gorm:"index"`
	ChefEmail     string         `json:"chefEmail" bson:"chefEmail"`
	Quantity      int            `json:"quantity" bson:"quantity" gorm:"not null"`
	UnitPrice     float64        `json:"unitPrice" bson:"unitPrice"`
	Price         float64        `json:"price" bson:"price" gorm:"not null"` // unitPrice × quantity, fixed at creation
	Address       string         `json:"address" bson:"address"`
	OrderStatus   OrderStatus    `json:"orderStatus" bson:"orderStatus" gorm:"not null;default:'pending'"`
	PaymentStatus PaymentStatus  `json:"paymentStatus" bson:"paymentStatus" gorm:"not null;default:'pending'"`
	PaymentTime   *time.Time     `json:"paymentTime,omitempty" bson:"paymentTime,omitempty"`
	TransactionID string         `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	StatusHistory []StatusChange `json:"statusHistory,omitempty" bson:"statusHistory" gorm:"serializer:json"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt" gorm:"index"`
}

// StatusChange is one entry of an order's audit trail
type StatusChange struct {
	From      OrderStatus `json:"from,omitempty" bson:"from,omitempty"`
	To        OrderStatus `json:"to" bson:"to"`
	ChangedBy string      `json:"changedBy" bson:"changedBy"`
	At        time.Time   `json:"at" bson:"at"`
}
