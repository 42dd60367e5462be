package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string          `gorm:"type:varchar(255);not null" json:"name"`
	NameLatin        string          `gorm:"type:varchar(255)" json:"name_latin"`
	Thumbnail        string          `gorm:"type:varchar(500)" json:"thumbnail"`
	ShortDescription string          `gorm:"type:text" json:"short_description"`
	Description      string          `gorm:"type:text" json:"description"`
	Specifications   string          `gorm:"type:text" json:"specifications"`
	Price            decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	SalePrice        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"sale_price"`
	CategoryID       int64           `gorm:"not null;index" json:"category_id"`
	BrandID          int64           `gorm:"not null;index" json:"brand_id"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
	Brand    Brand    `gorm:"foreignKey:BrandID" json:"-"`
	Images   []Image  `gorm:"foreignKey:ProductID" json:"-"`
	Ratings  []Rating `gorm:"foreignKey:ProductID" json:"-"`
}

// 割引率（%）。小数点以下は切り捨て
func (p Product) Discount() int64 {
	if !p.Price.IsPositive() {
		return 0
	}
	return p.Price.Sub(p.SalePrice).Div(p.Price).Mul(decimal.NewFromInt(100)).IntPart()
}

type Image struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64  `gorm:"not null;index" json:"-"`
	Label     string `gorm:"type:varchar(255)" json:"label"`
	URL       string `gorm:"type:varchar(500);not null" json:"url"`
}
