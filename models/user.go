package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleChef  UserRole = "chef"
	RoleAdmin UserRole = "admin"
)

// UserStatus marks whether an account may keep trading
type UserStatus string

const (
	StatusActive UserStatus = "active"
	StatusFraud  UserStatus = "fraud"
)

type User struct {
	ID        string     `json:"_id" bson:"_id" gorm:"primaryKey"`
	Name      string     `json:"name" bson:"name"`
	Email     string     `json:"email" bson:"email" gorm:"uniqueIndex;not null"`
	Image     string     `json:"image" bson:"image"`
	Address   string     `json:"address" bson:"address"`
	Role      UserRole   `json:"role" bson:"role" gorm:"not null;default:'user'"`
	Status    UserStatus `json:"status" bson:"status" gorm:"not null;default:'active'"`
	ChefID    *string    `json:"chefId,omitempty" bson:"chefId,omitempty" gorm:"uniqueIndex"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
}

// IsFraud reports whether the account has been flagged by an admin
func (u *User) IsFraud() bool {
	return u.Status == StatusFraud
}
