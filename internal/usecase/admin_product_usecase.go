package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// 管理者の商品・カテゴリ・ブランド操作
type AdminProductUsecase struct {
	tx         repo.TransactionManager
	categories repo.CategoryRepository
	brands     repo.BrandRepository
	now        func() time.Time
}

func NewAdminProductUsecase(tx repo.TransactionManager, categories repo.CategoryRepository, brands repo.BrandRepository) *AdminProductUsecase {
	return &AdminProductUsecase{tx: tx, categories: categories, brands: brands, now: time.Now}
}

type AdminProductInput struct {
	Name             string          `json:"name"`
	NameLatin        string          `json:"name_latin"`
	Thumbnail        string          `json:"thumbnail"`
	ShortDescription string          `json:"short_description"`
	Description      string          `json:"description"`
	Specifications   string          `json:"specifications"`
	Price            decimal.Decimal `json:"price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	CategoryID       int64           `json:"category"`
	BrandID          int64           `json:"brand"`
}

type AdminCategoryInput struct {
	Name      string  `json:"name"`
	Thumbnail string  `json:"thumbnail"`
	BrandIDs  []int64 `json:"brands"`
}

type AdminBrandInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Logo        string  `json:"logo"`
	CategoryIDs []int64 `json:"categories"`
}

func (in AdminProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("name required")
	}
	if in.Price.IsNegative() || in.SalePrice.IsNegative() {
		return validationError("price must be >= 0")
	}
	if in.SalePrice.GreaterThan(in.Price) {
		return validationError("sale_price must be <= price")
	}
	if in.CategoryID <= 0 || in.BrandID <= 0 {
		return validationError("category and brand required")
	}
	return nil
}

func (in AdminProductInput) toModel() model.Product {
	return model.Product{
		Name:             strings.TrimSpace(in.Name),
		NameLatin:        strings.TrimSpace(in.NameLatin),
		Thumbnail:        in.Thumbnail,
		ShortDescription: in.ShortDescription,
		Description:      in.Description,
		Specifications:   in.Specifications,
		Price:            in.Price,
		SalePrice:        in.SalePrice,
		CategoryID:       in.CategoryID,
		BrandID:          in.BrandID,
	}
}

func (u *AdminProductUsecase) CreateProduct(ctx context.Context, adminUserID int64, in AdminProductInput) (ProductView, error) {
	if adminUserID <= 0 {
		return ProductView{}, authFailed("unauthorized")
	}
	if err := in.validate(); err != nil {
		return ProductView{}, err
	}

	var out model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err := r.Products().Create(ctx, in.toModel())
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("category or brand not found")
		}
		if err != nil {
			return internal(err)
		}
		saved, err := r.Products().FindByID(ctx, created.ID)
		if err != nil {
			return internal(err)
		}
		if err := u.audit(ctx, r, adminUserID, model.AuditActionCreateProduct, created.ID, nil, productSnapshot(saved)); err != nil {
			return err
		}
		out = saved
		return nil
	})
	if err != nil {
		return ProductView{}, err
	}
	return toProductView(out), nil
}

func (u *AdminProductUsecase) UpdateProduct(ctx context.Context, adminUserID int64, productID int64, in AdminProductInput) (ProductView, error) {
	if adminUserID <= 0 {
		return ProductView{}, authFailed("unauthorized")
	}
	if productID <= 0 {
		return ProductView{}, validationError("invalid product id")
	}
	if err := in.validate(); err != nil {
		return ProductView{}, err
	}

	var out model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("product not found")
		}
		if err != nil {
			return internal(err)
		}

		p := in.toModel()
		p.ID = productID
		if err := r.Products().Update(ctx, p); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("product, category or brand not found")
			}
			return internal(err)
		}

		after, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			return internal(err)
		}
		if err := u.audit(ctx, r, adminUserID, model.AuditActionUpdateProduct, productID, productSnapshot(before), productSnapshot(after)); err != nil {
			return err
		}
		out = after
		return nil
	})
	if err != nil {
		return ProductView{}, err
	}
	return toProductView(out), nil
}

// 論理削除（過去の注文明細は残る）
func (u *AdminProductUsecase) DeleteProduct(ctx context.Context, adminUserID int64, productID int64) error {
	if adminUserID <= 0 {
		return authFailed("unauthorized")
	}
	if productID <= 0 {
		return validationError("invalid product id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("product not found")
		}
		if err != nil {
			return internal(err)
		}
		if err := r.Products().SoftDelete(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("product not found")
			}
			return internal(err)
		}
		return u.audit(ctx, r, adminUserID, model.AuditActionDeleteProduct, productID, productSnapshot(before), nil)
	})
}

func (u *AdminProductUsecase) CreateCategory(ctx context.Context, in AdminCategoryInput) (CategoryDetailView, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return CategoryDetailView{}, validationError("name required")
	}
	c, err := u.categories.Create(ctx, model.Category{Name: name, Thumbnail: in.Thumbnail}, in.BrandIDs)
	if err != nil {
		return CategoryDetailView{}, catalogWriteError(err, "brand")
	}
	return toCategoryDetailView(c), nil
}

func (u *AdminProductUsecase) CreateBrand(ctx context.Context, in AdminBrandInput) (BrandDetailView, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return BrandDetailView{}, validationError("name required")
	}
	b, err := u.brands.Create(ctx, model.Brand{Name: name, Description: in.Description, Logo: in.Logo}, in.CategoryIDs)
	if err != nil {
		return BrandDetailView{}, catalogWriteError(err, "category")
	}
	return toBrandDetailView(b, []int64{}), nil
}

func catalogWriteError(err error, related string) error {
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		return conflict("name already exists")
	case errors.Is(err, repo.ErrNotFound):
		return notFound(related + " not found")
	default:
		return internal(err)
	}
}

type productAudit struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	CategoryID int64           `json:"category_id"`
	BrandID    int64           `json:"brand_id"`
}

func productSnapshot(p model.Product) *productAudit {
	return &productAudit{
		Name:       p.Name,
		Price:      p.Price,
		SalePrice:  p.SalePrice,
		CategoryID: p.CategoryID,
		BrandID:    p.BrandID,
	}
}

func (u *AdminProductUsecase) audit(ctx context.Context, r repo.TxRepos, actor int64, action model.AuditAction, id int64, before, after *productAudit) error {
	log := model.AuditLog{
		ActorUserID:  actor,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   id,
		CreatedAt:    u.now(),
	}
	if before != nil {
		b, _ := json.Marshal(before)
		log.BeforeJSON = string(b)
	}
	if after != nil {
		a, _ := json.Marshal(after)
		log.AfterJSON = string(a)
	}
	if err := r.AuditLogs().Create(ctx, log); err != nil {
		return internal(err)
	}
	return nil
}
