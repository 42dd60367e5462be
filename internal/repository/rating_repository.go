package repository

import (
	"context"

	"ecshop/internal/domain/model"
)

type RatingRepository interface {
	// User, Responses.Userをpreload。新しい順
	ListByProductID(ctx context.Context, productID int64) ([]model.Rating, error)
	FindByID(ctx context.Context, ratingID int64) (model.Rating, error)
	Create(ctx context.Context, r model.Rating) (model.Rating, error)
	CreateResponse(ctx context.Context, res model.RatingResponse) (model.RatingResponse, error)
}
