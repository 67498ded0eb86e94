package model

import (
	"time"
)

// UserStatus represents the lifecycle status of a user.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusDeleted   UserStatus = "deleted"
)

// IsValid checks if the status is a valid user status.
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusSuspended, UserStatusDeleted:
		return true
	default:
		return false
	}
}

// User is the subset of the account record this service reads.
// Accounts are owned by the authentication layer; only IsAdmin matters here.
type User struct {
	ID      string     `json:"id" gorm:"primaryKey;size:128"`
	Email   string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Name    string     `json:"name" gorm:"size:255"`
	Status  UserStatus `json:"status" gorm:"size:32;default:active"`
	IsAdmin bool       `json:"is_admin" gorm:"column:is_admin;default:false;index"`

	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt *time.Time `json:"-" gorm:"column:deleted_at;index"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}
