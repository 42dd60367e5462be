package model

import "time"

// 1ユーザー×1商品で1行
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:ux_carts_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:ux_carts_user_product" json:"product_id"`
	Count     int64     `gorm:"not null" json:"count"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}
