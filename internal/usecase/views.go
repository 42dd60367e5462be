package usecase

import (
	"strings"
	"time"

	"ecshop/internal/domain/model"

	"github.com/shopspring/decimal"
)

// レスポンス用の形。modelからの変換はここに集める

type BrandLiteView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CategoryView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`
}

type CategoryDetailView struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Thumbnail string          `json:"thumbnail"`
	CreatedAt time.Time       `json:"created_at"`
	Brands    []BrandLiteView `json:"brands"`
}

type BrandDetailView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
	CreatedAt   time.Time `json:"created_at"`
	Products    []int64   `json:"products"`
	Categories  []int64   `json:"categories"`
}

type ProductView struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Thumbnail        string          `json:"thumbnail"`
	Brand            BrandLiteView   `json:"brand"`
	Price            decimal.Decimal `json:"price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	Discount         int64           `json:"discount"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Category         CategoryView    `json:"category"`
	ShortDescription string          `json:"short_description"`
	AvgRating        float64         `json:"avg_rating"`
}

type ProductLiteView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	NameLatin string `json:"name_latin"`
	Thumbnail string `json:"thumbnail"`
}

type SpecificationView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ImageView struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type UserLiteView struct {
	ID   int64      `json:"id"`
	Name string     `json:"name"`
	Role model.Role `json:"role"`
}

type RatingResponseView struct {
	ID        int64        `json:"id"`
	RatingID  int64        `json:"rating_id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	User      UserLiteView `json:"user"`
}

type RatingView struct {
	ID        int64                `json:"id"`
	ProductID int64                `json:"product"`
	Rate      int                  `json:"rate"`
	Comment   string               `json:"comment"`
	CreatedAt time.Time            `json:"created_at"`
	User      UserLiteView         `json:"user"`
	Responses []RatingResponseView `json:"responses"`
}

type ProductDetailView struct {
	ID               int64               `json:"id"`
	Name             string              `json:"name"`
	NameLatin        string              `json:"name_latin"`
	Thumbnail        string              `json:"thumbnail"`
	ShortDescription string              `json:"short_description"`
	Description      string              `json:"description"`
	Specifications   []SpecificationView `json:"specifications"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Category         CategoryView        `json:"category"`
	IsBuy            bool                `json:"is_buy"`
	Price            decimal.Decimal     `json:"price"`
	SalePrice        decimal.Decimal     `json:"sale_price"`
	Discount         int64               `json:"discount"`
	AvgRating        float64             `json:"avg_rating"`
	Brand            BrandLiteView       `json:"brand"`
	Ratings          []RatingView        `json:"ratings"`
	Images           []ImageView         `json:"images"`
}

type PaymentView struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type OrderItemView struct {
	Count      int64           `json:"count"`
	OrderPrice decimal.Decimal `json:"order_price"`
	Product    ProductView     `json:"product"`
}

type OrderView struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user"`
	Payment     PaymentView       `json:"payment"`
	SumPrice    decimal.Decimal   `json:"sum_price"`
	ShippingFee decimal.Decimal   `json:"shipping_fee"`
	TotalCost   decimal.Decimal   `json:"total_cost"`
	Status      model.OrderStatus `json:"status"`
	Note        string            `json:"note"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Items       []OrderItemView   `json:"items"`
}

type CartView struct {
	ID        int64       `json:"id"`
	Product   ProductView `json:"product"`
	Count     int64       `json:"count"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type UserView struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        model.Role `json:"role"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	PhoneNumber string     `json:"phone_number"`
	Dob         *string    `json:"dob"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// 一覧などのページ情報
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

const dateLayout = "2006-01-02"

// 平均評価。小数1桁、評価なしは0
func AvgRating(ratings []model.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r.Rate)))
	}
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1).Float64()
	return avg
}

// "name:value"の行を分解する。最初の':'で区切る
func ParseSpecifications(raw string) []SpecificationView {
	out := []SpecificationView{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, value, _ := strings.Cut(line, ":")
		out = append(out, SpecificationView{Name: name, Value: value})
	}
	return out
}

// img_style指定があれば<imgにstyleを差し込む
func StyleDescription(description string, imgStyle *string) string {
	if imgStyle == nil {
		return description
	}
	return strings.ReplaceAll(description, "<img", `<img style="`+*imgStyle+`"`)
}

func toBrandLiteView(b model.Brand) BrandLiteView {
	return BrandLiteView{ID: b.ID, Name: b.Name}
}

func toCategoryView(c model.Category) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name, Thumbnail: c.Thumbnail}
}

func toCategoryDetailView(c model.Category) CategoryDetailView {
	brands := make([]BrandLiteView, 0, len(c.Brands))
	for _, b := range c.Brands {
		brands = append(brands, toBrandLiteView(b))
	}
	return CategoryDetailView{
		ID:        c.ID,
		Name:      c.Name,
		Thumbnail: c.Thumbnail,
		CreatedAt: c.CreatedAt,
		Brands:    brands,
	}
}

func toBrandDetailView(b model.Brand, productIDs []int64) BrandDetailView {
	cats := make([]int64, 0, len(b.Categories))
	for _, c := range b.Categories {
		cats = append(cats, c.ID)
	}
	if productIDs == nil {
		productIDs = []int64{}
	}
	return BrandDetailView{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Logo:        b.Logo,
		CreatedAt:   b.CreatedAt,
		Products:    productIDs,
		Categories:  cats,
	}
}

func toProductView(p model.Product) ProductView {
	return ProductView{
		ID:               p.ID,
		Name:             p.Name,
		Thumbnail:        p.Thumbnail,
		Brand:            toBrandLiteView(p.Brand),
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		Discount:         p.Discount(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Category:         toCategoryView(p.Category),
		ShortDescription: p.ShortDescription,
		AvgRating:        AvgRating(p.Ratings),
	}
}

func toProductViews(ps []model.Product) []ProductView {
	out := make([]ProductView, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductView(p))
	}
	return out
}

func toProductLiteView(p model.Product) ProductLiteView {
	return ProductLiteView{ID: p.ID, Name: p.Name, NameLatin: p.NameLatin, Thumbnail: p.Thumbnail}
}

func toUserLiteView(u model.User) UserLiteView {
	return UserLiteView{ID: u.ID, Name: u.Name, Role: u.Role}
}

func toRatingResponseView(r model.RatingResponse) RatingResponseView {
	return RatingResponseView{
		ID:        r.ID,
		RatingID:  r.RatingID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		User:      toUserLiteView(r.User),
	}
}

func toRatingView(r model.Rating) RatingView {
	responses := make([]RatingResponseView, 0, len(r.Responses))
	for _, res := range r.Responses {
		responses = append(responses, toRatingResponseView(res))
	}
	return RatingView{
		ID:        r.ID,
		ProductID: r.ProductID,
		Rate:      r.Rate,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		User:      toUserLiteView(r.User),
		Responses: responses,
	}
}

func toProductDetailView(p model.Product, isBuy bool, imgStyle *string) ProductDetailView {
	ratings := make([]RatingView, 0, len(p.Ratings))
	for _, r := range p.Ratings {
		ratings = append(ratings, toRatingView(r))
	}
	images := make([]ImageView, 0, len(p.Images))
	for _, im := range p.Images {
		images = append(images, ImageView{ID: im.ID, Label: im.Label, URL: im.URL})
	}
	return ProductDetailView{
		ID:               p.ID,
		Name:             p.Name,
		NameLatin:        p.NameLatin,
		Thumbnail:        p.Thumbnail,
		ShortDescription: p.ShortDescription,
		Description:      StyleDescription(p.Description, imgStyle),
		Specifications:   ParseSpecifications(p.Specifications),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Category:         toCategoryView(p.Category),
		IsBuy:            isBuy,
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		Discount:         p.Discount(),
		AvgRating:        AvgRating(p.Ratings),
		Brand:            toBrandLiteView(p.Brand),
		Ratings:          ratings,
		Images:           images,
	}
}

func toPaymentView(p model.Payment) PaymentView {
	return PaymentView{ID: p.ID, Code: p.Code, Name: p.Name, Logo: p.Logo}
}

func toOrderView(o model.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemView{
			Count:      it.Count,
			OrderPrice: it.OrderPrice,
			Product:    toProductView(it.Product),
		})
	}
	return OrderView{
		ID:          o.ID,
		UserID:      o.UserID,
		Payment:     toPaymentView(o.Payment),
		SumPrice:    o.SumPrice,
		ShippingFee: o.ShippingFee,
		TotalCost:   o.TotalCost,
		Status:      o.Status,
		Note:        o.Note,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       items,
	}
}

func toOrderViews(os []model.Order) []OrderView {
	out := make([]OrderView, 0, len(os))
	for _, o := range os {
		out = append(out, toOrderView(o))
	}
	return out
}

func toCartView(c model.Cart) CartView {
	return CartView{
		ID:        c.ID,
		Product:   toProductView(c.Product),
		Count:     c.Count,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toUserView(u *model.User) UserView {
	v := UserView{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		Name:        u.Name,
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.Dob != nil {
		s := u.Dob.Format(dateLayout)
		v.Dob = &s
	}
	return v
}
