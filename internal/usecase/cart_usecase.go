package usecase

import (
	"context"

	repo "ecshop/internal/repository"

	"github.com/go-faster/errors"
)

// CartUsecase は /user/cart の業務ロジックです。
// 1ユーザー×1商品で1行
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{cartRepo: cartRepo, productRepo: productRepo}
}

type AddCartInput struct {
	ProductID int64 `json:"product"`
	Count     int64 `json:"count"`
}

type UpdateCartInput struct {
	Count int64 `json:"count"`
}

// カート取得
func (u *CartUsecase) List(ctx context.Context, userID int64) ([]CartView, error) {
	if userID <= 0 {
		return nil, authFailed("unauthorized")
	}
	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, internal(err)
	}
	out := make([]CartView, 0, len(items))
	for _, c := range items {
		out = append(out, toCartView(c))
	}
	return out, nil
}

// 追加（同じ商品なら数量加算）
func (u *CartUsecase) Add(ctx context.Context, userID int64, in AddCartInput) (CartView, error) {
	if userID <= 0 {
		return CartView{}, authFailed("unauthorized")
	}
	if in.ProductID <= 0 {
		return CartView{}, validationError("invalid product")
	}
	if in.Count <= 0 {
		return CartView{}, validationError("count must be greater than 0")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, notFound("product not found")
	}
	if err != nil {
		return CartView{}, internal(err)
	}

	c, err := u.cartRepo.Upsert(ctx, userID, in.ProductID, in.Count)
	if err != nil {
		return CartView{}, internal(err)
	}
	c.Product = p
	return toCartView(c), nil
}

// 数量変更
func (u *CartUsecase) Update(ctx context.Context, userID int64, cartID int64, in UpdateCartInput) error {
	if userID <= 0 {
		return authFailed("unauthorized")
	}
	if cartID <= 0 {
		return validationError("invalid id")
	}
	if in.Count <= 0 {
		return validationError("count must be greater than 0")
	}
	if err := u.ensureOwned(ctx, userID, cartID); err != nil {
		return err
	}
	if err := u.cartRepo.UpdateCount(ctx, cartID, in.Count); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("cart not found")
		}
		return internal(err)
	}
	return nil
}

// 削除
func (u *CartUsecase) Remove(ctx context.Context, userID int64, cartID int64) error {
	if userID <= 0 {
		return authFailed("unauthorized")
	}
	if cartID <= 0 {
		return validationError("invalid id")
	}
	if err := u.ensureOwned(ctx, userID, cartID); err != nil {
		return err
	}
	if err := u.cartRepo.Delete(ctx, cartID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("cart not found")
		}
		return internal(err)
	}
	return nil
}

// 他人の行は見えない扱い
func (u *CartUsecase) ensureOwned(ctx context.Context, userID int64, cartID int64) error {
	c, err := u.cartRepo.FindByID(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("cart not found")
	}
	if err != nil {
		return internal(err)
	}
	if c.UserID != userID {
		return notFound("cart not found")
	}
	return nil
}
