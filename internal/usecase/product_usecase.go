package usecase

import (
	"context"
	"strings"

	repo "ecshop/internal/repository"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

const (
	liteLimit       = 10
	suggestionLimit = 10
)

// 詳細画面のis_buy判定
type PurchaseChecker interface {
	HasUserBought(ctx context.Context, userID int64, productID int64) (bool, error)
}

// 公開カタログ（商品・カテゴリ・ブランド・支払い方法）
type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	brandRepo    repo.BrandRepository
	paymentRepo  repo.PaymentRepository
	purchases    PurchaseChecker
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	brandRepo repo.BrandRepository,
	paymentRepo repo.PaymentRepository,
	purchases PurchaseChecker,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		paymentRepo:  paymentRepo,
		purchases:    purchases,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	BrandID    *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       string
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (Page[ProductView], error) {
	page, limit, err := normalizePage(in.Page, in.Limit)
	if err != nil {
		return Page[ProductView]{}, err
	}
	if len(in.Q) > 100 {
		return Page[ProductView]{}, validationError("q too long")
	}
	if in.MinPrice != nil && in.MinPrice.IsNegative() {
		return Page[ProductView]{}, validationError("min_price must be >= 0")
	}
	if in.MaxPrice != nil && in.MaxPrice.IsNegative() {
		return Page[ProductView]{}, validationError("max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return Page[ProductView]{}, validationError("min_price must be <= max_price")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return Page[ProductView]{}, validationError("invalid sort")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:       page,
		Limit:      limit,
		Q:          strings.TrimSpace(in.Q),
		CategoryID: in.CategoryID,
		BrandID:    in.BrandID,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		Sort:       in.Sort,
	})
	if err != nil {
		return Page[ProductView]{}, internal(err)
	}

	return Page[ProductView]{
		Items: toProductViews(items),
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// 検索候補
func (u *ProductUsecase) ListLite(ctx context.Context, q string) ([]ProductLiteView, error) {
	if len(q) > 100 {
		return nil, validationError("q too long")
	}
	items, err := u.productRepo.SearchLite(ctx, q, liteLimit)
	if err != nil {
		return nil, internal(err)
	}
	out := make([]ProductLiteView, 0, len(items))
	for _, p := range items {
		out = append(out, toProductLiteView(p))
	}
	return out, nil
}

// 同じカテゴリのおすすめ
func (u *ProductUsecase) ListSuggestion(ctx context.Context, productID int64) ([]ProductView, error) {
	if productID <= 0 {
		return nil, validationError("invalid product id")
	}
	items, err := u.productRepo.ListSameCategory(ctx, productID, suggestionLimit)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, notFound("product not found")
	}
	if err != nil {
		return nil, internal(err)
	}
	return toProductViews(items), nil
}

// この商品を買った人はこんな商品も買っています
func (u *ProductUsecase) ListBoughtBySameUsers(ctx context.Context, productID int64) ([]ProductView, error) {
	if productID <= 0 {
		return nil, validationError("invalid product id")
	}
	items, err := u.productRepo.ListBoughtBySameUsers(ctx, productID, suggestionLimit)
	if err != nil {
		return nil, internal(err)
	}
	return toProductViews(items), nil
}

// 商品詳細。userIDが0なら未ログイン（is_buy=false）
func (u *ProductUsecase) GetProductDetail(ctx context.Context, userID int64, productID int64, imgStyle *string) (ProductDetailView, error) {
	if productID <= 0 {
		return ProductDetailView{}, validationError("invalid product id")
	}

	p, err := u.productRepo.FindDetail(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductDetailView{}, notFound("product not found")
	}
	if err != nil {
		return ProductDetailView{}, internal(err)
	}

	isBuy := false
	if userID > 0 {
		isBuy, err = u.purchases.HasUserBought(ctx, userID, productID)
		if err != nil {
			return ProductDetailView{}, err
		}
	}

	return toProductDetailView(p, isBuy, imgStyle), nil
}

func (u *ProductUsecase) ListCategories(ctx context.Context) ([]CategoryView, error) {
	items, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	out := make([]CategoryView, 0, len(items))
	for _, c := range items {
		out = append(out, toCategoryView(c))
	}
	return out, nil
}

func (u *ProductUsecase) GetCategory(ctx context.Context, categoryID int64) (CategoryDetailView, error) {
	c, err := u.categoryRepo.FindByID(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return CategoryDetailView{}, notFound("category not found")
	}
	if err != nil {
		return CategoryDetailView{}, internal(err)
	}
	return toCategoryDetailView(c), nil
}

func (u *ProductUsecase) ListBrands(ctx context.Context) ([]BrandLiteView, error) {
	items, err := u.brandRepo.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	out := make([]BrandLiteView, 0, len(items))
	for _, b := range items {
		out = append(out, toBrandLiteView(b))
	}
	return out, nil
}

func (u *ProductUsecase) GetBrand(ctx context.Context, brandID int64) (BrandDetailView, error) {
	b, err := u.brandRepo.FindByID(ctx, brandID)
	if errors.Is(err, repo.ErrNotFound) {
		return BrandDetailView{}, notFound("brand not found")
	}
	if err != nil {
		return BrandDetailView{}, internal(err)
	}
	ids, err := u.brandRepo.ProductIDs(ctx, brandID)
	if err != nil {
		return BrandDetailView{}, internal(err)
	}
	return toBrandDetailView(b, ids), nil
}

func (u *ProductUsecase) ListPayments(ctx context.Context) ([]PaymentView, error) {
	items, err := u.paymentRepo.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	out := make([]PaymentView, 0, len(items))
	for _, p := range items {
		out = append(out, toPaymentView(p))
	}
	return out, nil
}

var _ PurchaseChecker = (*OrderUsecase)(nil)
