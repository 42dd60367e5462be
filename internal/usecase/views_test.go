package usecase

import (
	"testing"

	"ecshop/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAvgRating(t *testing.T) {
	assert.Equal(t, 0.0, AvgRating(nil))
	assert.Equal(t, 4.0, AvgRating([]model.Rating{{Rate: 4}}))
	assert.Equal(t, 3.7, AvgRating([]model.Rating{{Rate: 5}, {Rate: 3}, {Rate: 3}}))
	assert.Equal(t, 4.5, AvgRating([]model.Rating{{Rate: 5}, {Rate: 4}}))
}

func TestParseSpecifications(t *testing.T) {
	got := ParseSpecifications("CPU:Intel i7\nRAM: 16GB\r\n\nTime:10:30\nNoValue")
	assert.Equal(t, []SpecificationView{
		{Name: "CPU", Value: "Intel i7"},
		{Name: "RAM", Value: " 16GB"},
		{Name: "Time", Value: "10:30"},
		{Name: "NoValue", Value: ""},
	}, got)

	assert.Empty(t, ParseSpecifications(""))
}

func TestStyleDescription(t *testing.T) {
	desc := `<p>a</p><img src="x.png"><img src="y.png">`

	assert.Equal(t, desc, StyleDescription(desc, nil))

	style := "width:100%"
	assert.Equal(t,
		`<p>a</p><img style="width:100%" src="x.png"><img style="width:100%" src="y.png">`,
		StyleDescription(desc, &style),
	)
}

func TestToProductView(t *testing.T) {
	p := model.Product{
		ID:        1,
		Name:      "Laptop",
		Price:     decimal.NewFromInt(100),
		SalePrice: decimal.NewFromInt(75),
		Brand:     model.Brand{ID: 2, Name: "Acme"},
		Category:  model.Category{ID: 3, Name: "PC", Thumbnail: "pc.png"},
		Ratings:   []model.Rating{{Rate: 5}, {Rate: 4}},
	}

	v := toProductView(p)
	assert.Equal(t, int64(25), v.Discount)
	assert.Equal(t, 4.5, v.AvgRating)
	assert.Equal(t, BrandLiteView{ID: 2, Name: "Acme"}, v.Brand)
	assert.Equal(t, CategoryView{ID: 3, Name: "PC", Thumbnail: "pc.png"}, v.Category)
}
