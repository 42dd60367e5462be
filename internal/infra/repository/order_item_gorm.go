package repository

import (
	"context"

	"ecshop/internal/domain/model"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

const orderItemBatchSize = 100

// 明細をまとめてINSERT。存在しない商品はFK違反 → ErrNotFound
func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].OrderID = orderID
	}
	if err := r.db.WithContext(ctx).Omit("Product").CreateInBatches(&items, orderItemBatchSize).Error; err != nil {
		return errors.Wrap(translate(err), "create order items")
	}
	return nil
}
