package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusWaitingConfirm OrderStatus = "WAITING_CONFIRM"
	OrderStatusSuccess        OrderStatus = "SUCCESS"
	OrderStatusCancel         OrderStatus = "CANCEL"
)

// WAITING_CONFIRM以外は終端
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusSuccess || s == OrderStatusCancel
}

// 遷移できるか
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s != OrderStatusWaitingConfirm {
		return false
	}
	return next == OrderStatusSuccess || next == OrderStatusCancel
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusWaitingConfirm, OrderStatusSuccess, OrderStatusCancel:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	PaymentID   int64           `gorm:"not null" json:"payment_id"`
	SumPrice    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"sum_price"`
	ShippingFee decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"shipping_fee"`
	TotalCost   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_cost"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Note        string          `gorm:"type:text" json:"note"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Payment Payment     `gorm:"foreignKey:PaymentID" json:"-"`
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"-"`
}
