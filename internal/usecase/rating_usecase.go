package usecase

import (
	"context"
	"strings"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"github.com/go-faster/errors"
)

type RatingUsecase struct {
	ratings   repo.RatingRepository
	products  repo.ProductRepository
	users     repo.UserRepository
	purchases PurchaseChecker
}

func NewRatingUsecase(
	ratings repo.RatingRepository,
	products repo.ProductRepository,
	users repo.UserRepository,
	purchases PurchaseChecker,
) *RatingUsecase {
	return &RatingUsecase{ratings: ratings, products: products, users: users, purchases: purchases}
}

type CreateRatingInput struct {
	ProductID int64  `json:"product"`
	Rate      int    `json:"rate"`
	Comment   string `json:"comment"`
}

type CreateRatingResponseInput struct {
	Content string `json:"content"`
}

// 商品の評価一覧（返信付き）
func (u *RatingUsecase) ListByProduct(ctx context.Context, productID int64) ([]RatingView, error) {
	if productID <= 0 {
		return nil, validationError("invalid product id")
	}
	items, err := u.ratings.ListByProductID(ctx, productID)
	if err != nil {
		return nil, internal(err)
	}
	out := make([]RatingView, 0, len(items))
	for _, r := range items {
		out = append(out, toRatingView(r))
	}
	return out, nil
}

// 購入済み（SUCCESS）の商品だけ評価できる
func (u *RatingUsecase) Create(ctx context.Context, userID int64, in CreateRatingInput) (RatingView, error) {
	if userID <= 0 {
		return RatingView{}, authFailed("unauthorized")
	}
	if in.ProductID <= 0 {
		return RatingView{}, validationError("invalid product")
	}
	if in.Rate < model.MinRate || in.Rate > model.MaxRate {
		return RatingView{}, validationError("rate must be between 1 and 5")
	}

	if _, err := u.products.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return RatingView{}, notFound("product not found")
		}
		return RatingView{}, internal(err)
	}

	bought, err := u.purchases.HasUserBought(ctx, userID, in.ProductID)
	if err != nil {
		return RatingView{}, err
	}
	if !bought {
		return RatingView{}, clientError("You can only rate products you have bought")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return RatingView{}, internal(err)
	}

	r, err := u.ratings.Create(ctx, model.Rating{
		UserID:    userID,
		ProductID: in.ProductID,
		Rate:      in.Rate,
		Comment:   strings.TrimSpace(in.Comment),
	})
	if err != nil {
		return RatingView{}, internal(err)
	}
	r.User = *user
	return toRatingView(r), nil
}

// 評価への返信
func (u *RatingUsecase) Respond(ctx context.Context, userID int64, ratingID int64, in CreateRatingResponseInput) (RatingResponseView, error) {
	if userID <= 0 {
		return RatingResponseView{}, authFailed("unauthorized")
	}
	if ratingID <= 0 {
		return RatingResponseView{}, validationError("invalid rating id")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return RatingResponseView{}, validationError("content required")
	}

	if _, err := u.ratings.FindByID(ctx, ratingID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return RatingResponseView{}, notFound("rating not found")
		}
		return RatingResponseView{}, internal(err)
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return RatingResponseView{}, internal(err)
	}

	res, err := u.ratings.CreateResponse(ctx, model.RatingResponse{
		RatingID: ratingID,
		UserID:   userID,
		Content:  content,
	})
	if err != nil {
		return RatingResponseView{}, internal(err)
	}
	res.User = *user
	return toRatingResponseView(res), nil
}
