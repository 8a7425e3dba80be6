package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Tutor   UserRole = "tutor"
)

// swagger:model User
type User struct {
	UUIDBase
	FullName  string     `gorm:"size:255;not null" json:"fullName"`
	Email     string     `gorm:"size:255;unique;not null" json:"email"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Role      UserRole   `gorm:"size:40;not null;default:'student'" json:"role"`
	Gender    string     `gorm:"size:20" json:"gender"`
	Birthdate *time.Time `gorm:"type:date" json:"birthdate"`
	Avatar    string     `gorm:"size:255" json:"avatar"`
	LastLogin time.Time  `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
