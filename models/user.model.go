package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Login
	Username string `gorm:"unique;not null;size:50" json:"username"`
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile
	FirstName string `gorm:"size:50" json:"first_name"`
	LastName  string `gorm:"size:50" json:"last_name"`

	// Admins may view and manage other users' records
	IsAdmin bool `gorm:"default:false" json:"is_admin"`

	// System Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Users are never hard-deleted; transactions keep referencing them
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}
