package repository

import (
	"context"

	"ecshop/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	// Brandsをpreload
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category, brandIDs []int64) (model.Category, error)
}

type BrandRepository interface {
	List(ctx context.Context) ([]model.Brand, error)
	// Categoriesをpreload
	FindByID(ctx context.Context, id int64) (model.Brand, error)
	ProductIDs(ctx context.Context, brandID int64) ([]int64, error)
	Create(ctx context.Context, b model.Brand, categoryIDs []int64) (model.Brand, error)
}

type PaymentRepository interface {
	List(ctx context.Context) ([]model.Payment, error)
	FindByID(ctx context.Context, id int64) (model.Payment, error)
}
