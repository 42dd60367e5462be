package repository

import (
	"context"
	"strings"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 一覧表示に必要な関連
func withListRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Brand").Preload("Category").Preload("Ratings")
}

// 検索/カテゴリ/ブランド/価格帯/ソート/ページング付きで返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// q name/name_latinを対象
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("name ILIKE ? OR name_latin ILIKE ?", like, like)
	}
	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}
	if q.BrandID != nil {
		tx = tx.Where("brand_id = ?", *q.BrandID)
	}

	//価格帯（実売価格）
	if q.MinPrice != nil {
		tx = tx.Where("sale_price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("sale_price <= ?", *q.MaxPrice)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, errors.Wrap(err, "count products")
	}

	//sort
	switch q.Sort {
	case "price_asc":
		tx = tx.Order("sale_price asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("sale_price desc").Order("id desc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := withListRelations(tx).Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, errors.Wrap(err, "list products")
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := withListRelations(r.db.WithContext(ctx)).First(&p, id).Error
	if err != nil {
		return model.Product{}, translate(err)
	}
	return p, nil
}

// 詳細画面用
func (r *ProductGormRepository) FindDetail(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := withListRelations(r.db.WithContext(ctx)).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Ratings", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		Preload("Ratings.User").
		Preload("Ratings.Responses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Preload("Ratings.Responses.User").
		First(&p, id).Error
	if err != nil {
		return model.Product{}, translate(err)
	}
	return p, nil
}

// 複数IDで取得（存在しないIDは含まれない）
func (r *ProductGormRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	var products []model.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return []model.Product{}, errors.Wrap(err, "find products")
	}
	return products, nil
}

// 検索ボックス用の軽い一覧
func (r *ProductGormRepository) SearchLite(ctx context.Context, q string, limit int) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).Select("id", "name", "name_latin", "thumbnail")
	if s := strings.TrimSpace(q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("name ILIKE ? OR name_latin ILIKE ?", like, like)
	}
	var products []model.Product
	if err := tx.Order("id desc").Limit(limit).Find(&products).Error; err != nil {
		return []model.Product{}, errors.Wrap(err, "search products")
	}
	return products, nil
}

// 同じカテゴリの他の商品
func (r *ProductGormRepository) ListSameCategory(ctx context.Context, productID int64, limit int) ([]model.Product, error) {
	base, err := r.FindByID(ctx, productID)
	if err != nil {
		return []model.Product{}, err
	}
	var products []model.Product
	err = withListRelations(r.db.WithContext(ctx)).
		Where("category_id = ? AND id <> ?", base.CategoryID, productID).
		Order("created_at desc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, errors.Wrap(err, "list same category")
	}
	return products, nil
}

// 同じ商品を買ったユーザーが他に買った商品。購入回数の多い順
func (r *ProductGormRepository) ListBoughtBySameUsers(ctx context.Context, productID int64, limit int) ([]model.Product, error) {
	type row struct {
		ProductID int64
		Cnt       int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("order_items AS oi2").
		Select("oi2.product_id AS product_id, COUNT(*) AS cnt").
		Joins("JOIN orders o2 ON o2.id = oi2.order_id AND o2.status = ?", model.OrderStatusSuccess).
		Where(`o2.user_id IN (
			SELECT o1.user_id FROM order_items oi1
			JOIN orders o1 ON o1.id = oi1.order_id
			WHERE oi1.product_id = ? AND o1.status = ?
		)`, productID, model.OrderStatusSuccess).
		Where("oi2.product_id <> ?", productID).
		Group("oi2.product_id").
		Order("cnt desc").
		Order("oi2.product_id asc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return []model.Product{}, errors.Wrap(err, "bought by same users")
	}
	if len(rows) == 0 {
		return []model.Product{}, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, rw := range rows {
		ids = append(ids, rw.ProductID)
	}
	var found []model.Product
	if err := withListRelations(r.db.WithContext(ctx)).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return []model.Product{}, errors.Wrap(err, "load products")
	}

	// 集計順に並べ直す（削除済みは落ちる）
	byID := make(map[int64]model.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]model.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Omit("Category", "Brand", "Images", "Ratings").Create(&p).Error; err != nil {
		return model.Product{}, errors.Wrap(translate(err), "create product")
	}
	return p, nil
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":              p.Name,
		"name_latin":        p.NameLatin,
		"thumbnail":         p.Thumbnail,
		"short_description": p.ShortDescription,
		"description":       p.Description,
		"specifications":    p.Specifications,
		"price":             p.Price,
		"sale_price":        p.SalePrice,
		"category_id":       p.CategoryID,
		"brand_id":          p.BrandID,
	})
	if res.Error != nil {
		return errors.Wrap(translate(res.Error), "update product")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除（論理削除。注文明細からは引き続き参照できる）
func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
