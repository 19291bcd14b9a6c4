package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;default:'admin';not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleAdmin = "admin"
)
