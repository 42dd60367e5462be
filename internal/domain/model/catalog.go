package model

import "time"

type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Thumbnail string    `gorm:"type:varchar(500)" json:"thumbnail"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	Brands []Brand `gorm:"many2many:category_brands" json:"-"`
}

type Brand struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Logo        string    `gorm:"type:varchar(500)" json:"logo"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	Categories []Category `gorm:"many2many:category_brands" json:"-"`
}

// 支払い方法
type Payment struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Code string `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	Logo string `gorm:"type:varchar(500)" json:"logo"`
}
