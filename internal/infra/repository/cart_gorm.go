package repository

import (
	"context"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカート一覧
func (r *CartGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Cart, error) {
	var items []model.Cart
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Brand").
		Preload("Product.Category").
		Preload("Product.Ratings").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Cart{}, errors.Wrap(err, "list carts")
	}
	return items, nil
}

// 明細を取得
func (r *CartGormRepository) FindByID(ctx context.Context, cartID int64) (model.Cart, error) {
	var item model.Cart
	err := r.db.WithContext(ctx).
		Where("id = ?", cartID).
		First(&item).Error
	if err != nil {
		return model.Cart{}, translate(err)
	}
	return item, nil
}

// 同一商品は数量加算
// (user_id, product_id)のunique indexに対するON CONFLICTで1文にする
func (r *CartGormRepository) Upsert(ctx context.Context, userID int64, productID int64, addCount int64) (model.Cart, error) {
	if addCount <= 0 {
		return model.Cart{}, errors.New("invalid count")
	}

	item := model.Cart{
		UserID:    userID,
		ProductID: productID,
		Count:     addCount,
	}
	err := r.db.WithContext(ctx).
		Omit("Product").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":      gorm.Expr("carts.count + ?", addCount),
				"updated_at": gorm.Expr("NOW()"),
			}),
		}, clause.Returning{}).
		Create(&item).Error
	if err != nil {
		return model.Cart{}, errors.Wrap(err, "upsert cart")
	}
	return item, nil
}

// 明細の数量を更新
func (r *CartGormRepository) UpdateCount(ctx context.Context, cartID int64, count int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("count", count)

	if res.Error != nil {
		return errors.Wrap(res.Error, "update cart")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartGormRepository) Delete(ctx context.Context, cartID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Cart{}, cartID)

	if res.Error != nil {
		return errors.Wrap(res.Error, "delete cart")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
