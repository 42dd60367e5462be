package model

import "time"

const (
	MinRate = 1
	MaxRate = 5
)

type Rating struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Rate      int       `gorm:"not null" json:"rate"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	User      User             `gorm:"foreignKey:UserID" json:"-"`
	Responses []RatingResponse `gorm:"foreignKey:RatingID" json:"-"`
}

// 評価への返信
type RatingResponse struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RatingID  int64     `gorm:"not null;index" json:"rating_id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
