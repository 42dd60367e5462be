package model

import "github.com/shopspring/decimal"

// 注文明細
// order_priceは注文時点のsale_priceを保存（以後変わらない）
type OrderItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64           `gorm:"not null;index" json:"order_id"`
	ProductID  int64           `gorm:"not null;index" json:"product_id"`
	Count      int64           `gorm:"not null" json:"count"`
	OrderPrice decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"order_price"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// 明細の小計
func (it OrderItem) Subtotal() decimal.Decimal {
	return it.OrderPrice.Mul(decimal.NewFromInt(it.Count))
}
