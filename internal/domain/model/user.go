package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Email        string     `gorm:"type:varchar(255)" json:"email"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	Name         string     `gorm:"type:varchar(255)" json:"name"`
	Address      string     `gorm:"type:varchar(255)" json:"address"`
	PhoneNumber  string     `gorm:"type:varchar(30)" json:"phone_number"`
	Dob          *time.Time `gorm:"type:date" json:"dob"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
