package repository

import (
	"context"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var items []model.Category
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Category{}, errors.Wrap(err, "list categories")
	}
	return items, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Preload("Brands", func(db *gorm.DB) *gorm.DB { return db.Order("brands.id asc") }).
		First(&c, id).Error
	if err != nil {
		return model.Category{}, translate(err)
	}
	return c, nil
}

// カテゴリ作成。brandIDsがあれば紐付けも同じtxで
func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category, brandIDs []int64) (model.Category, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Brands").Create(&c).Error; err != nil {
			return translate(err)
		}
		if len(brandIDs) == 0 {
			return nil
		}
		var brands []model.Brand
		if err := tx.Where("id IN ?", brandIDs).Find(&brands).Error; err != nil {
			return err
		}
		if len(brands) != len(uniqueIDs(brandIDs)) {
			return repo.ErrNotFound
		}
		if err := tx.Model(&c).Association("Brands").Append(&brands); err != nil {
			return err
		}
		c.Brands = brands
		return nil
	})
	if err != nil {
		return model.Category{}, errors.Wrap(err, "create category")
	}
	return c, nil
}

type BrandGormRepository struct {
	db *gorm.DB
}

func NewBrandGormRepository(db *gorm.DB) *BrandGormRepository {
	return &BrandGormRepository{db: db}
}

func (r *BrandGormRepository) List(ctx context.Context) ([]model.Brand, error) {
	var items []model.Brand
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Brand{}, errors.Wrap(err, "list brands")
	}
	return items, nil
}

func (r *BrandGormRepository) FindByID(ctx context.Context, id int64) (model.Brand, error) {
	var b model.Brand
	err := r.db.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("categories.id asc") }).
		First(&b, id).Error
	if err != nil {
		return model.Brand{}, translate(err)
	}
	return b, nil
}

func (r *BrandGormRepository) ProductIDs(ctx context.Context, brandID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("brand_id = ?", brandID).
		Order("id asc").
		Pluck("id", &ids).Error
	if err != nil {
		return []int64{}, errors.Wrap(err, "brand product ids")
	}
	return ids, nil
}

func (r *BrandGormRepository) Create(ctx context.Context, b model.Brand, categoryIDs []int64) (model.Brand, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Create(&b).Error; err != nil {
			return translate(err)
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		var cats []model.Category
		if err := tx.Where("id IN ?", categoryIDs).Find(&cats).Error; err != nil {
			return err
		}
		if len(cats) != len(uniqueIDs(categoryIDs)) {
			return repo.ErrNotFound
		}
		if err := tx.Model(&b).Association("Categories").Append(&cats); err != nil {
			return err
		}
		b.Categories = cats
		return nil
	})
	if err != nil {
		return model.Brand{}, errors.Wrap(err, "create brand")
	}
	return b, nil
}

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) List(ctx context.Context) ([]model.Payment, error) {
	var items []model.Payment
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Payment{}, errors.Wrap(err, "list payments")
	}
	return items, nil
}

func (r *PaymentGormRepository) FindByID(ctx context.Context, id int64) (model.Payment, error) {
	var p model.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return model.Payment{}, translate(err)
	}
	return p, nil
}

func uniqueIDs(ids []int64) map[int64]struct{} {
	m := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}
