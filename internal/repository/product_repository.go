package repository

import (
	"context"

	"ecshop/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 一覧検索
type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	BrandID    *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       string
}

// 商品の永続化（保存・取得）だけを約束。
// 取得系はBrand/Category/Ratingsをpreload済みで返す
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// images, ratings(+responses, user) まで読む
	FindDetail(ctx context.Context, id int64) (model.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	SearchLite(ctx context.Context, q string, limit int) ([]model.Product, error)
	ListSameCategory(ctx context.Context, productID int64, limit int) ([]model.Product, error)
	// 同じ商品を買った(SUCCESS)ユーザーが買った他の商品。多い順
	ListBoughtBySameUsers(ctx context.Context, productID int64, limit int) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
