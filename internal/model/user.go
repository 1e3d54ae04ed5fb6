package model

import (
	"time"
)

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Username  string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	FirstName string    `gorm:"size:100" json:"firstName"`
	LastName  string    `gorm:"size:100" json:"lastName"`
	Role      UserRole  `gorm:"size:20;default:'student'" json:"role"`
	LastLogin time.Time `json:"lastLogin"`
	LastSeen  time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// Profile 每个用户至多一份，首次访问时惰性创建
type Profile struct {
	BaseModel
	UserID       uint   `gorm:"uniqueIndex;not null" json:"userId"`
	User         User   `gorm:"foreignKey:UserID" json:"user"`
	Bio          string `gorm:"type:text" json:"bio"`
	AvatarURL    string `gorm:"size:255" json:"avatarUrl"`
	IsInstructor bool   `gorm:"default:false" json:"isInstructor"`
}

func (Profile) TableName() string {
	return "profiles"
}
