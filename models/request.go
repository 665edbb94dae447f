package models

import "time"

// RequestType is the privilege a user asks to be elevated to
type RequestType string

const (
	RequestChef  RequestType = "chef"
	RequestAdmin RequestType = "admin"
)

func (t RequestType) Valid() bool {
	return t == RequestChef || t == RequestAdmin
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Request is a role-elevation ask; it is resolved exactly once
type Request struct {
	ID            string        `json:"_id" bson:"_id" gorm:"primaryKey"`
	UserName      string        `json:"userName" bson:"userName"`
	UserEmail     string        `json:"userEmail" bson:"userEmail" gorm:"not null"`
	RequestType   RequestType   `json:"requestType" bson:"requestType" gorm:"not null"`
	RequestStatus RequestStatus `json:"requestStatus" bson:"requestStatus" gorm:"not null;default:'pending'"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt" gorm:"index"`
	ResolvedAt    *time.Time    `json:"resolvedAt,omitempty" bson:"resolvedAt,omitempty"`
}
