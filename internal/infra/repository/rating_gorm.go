package repository

import (
	"context"

	"ecshop/internal/domain/model"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

func (r *RatingGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.Rating, error) {
	var items []model.Rating
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Responses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Preload("Responses.User").
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Rating{}, errors.Wrap(err, "list ratings")
	}
	return items, nil
}

func (r *RatingGormRepository) FindByID(ctx context.Context, ratingID int64) (model.Rating, error) {
	var rt model.Rating
	if err := r.db.WithContext(ctx).First(&rt, ratingID).Error; err != nil {
		return model.Rating{}, translate(err)
	}
	return rt, nil
}

func (r *RatingGormRepository) Create(ctx context.Context, rt model.Rating) (model.Rating, error) {
	if err := r.db.WithContext(ctx).Omit("User", "Responses").Create(&rt).Error; err != nil {
		return model.Rating{}, errors.Wrap(err, "create rating")
	}
	return rt, nil
}

func (r *RatingGormRepository) CreateResponse(ctx context.Context, res model.RatingResponse) (model.RatingResponse, error) {
	if err := r.db.WithContext(ctx).Omit("User").Create(&res).Error; err != nil {
		return model.RatingResponse{}, errors.Wrap(err, "create rating response")
	}
	return res, nil
}
