package repository

import (
	"context"

	"ecshop/internal/domain/model"
)

type CartRepository interface {
	// Productをpreload
	ListByUserID(ctx context.Context, userID int64) ([]model.Cart, error)
	FindByID(ctx context.Context, cartID int64) (model.Cart, error)
	// 同一商品は数量加算
	Upsert(ctx context.Context, userID int64, productID int64, addCount int64) (model.Cart, error)
	UpdateCount(ctx context.Context, cartID int64, count int64) error
	Delete(ctx context.Context, cartID int64) error
}
