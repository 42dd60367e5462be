package handler_test

import (
	"context"

	"ecshop/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type OrderServiceMock struct{ mock.Mock }

func (m *OrderServiceMock) Create(ctx context.Context, userID int64, in usecase.CreateOrderInput) (usecase.OrderView, error) {
	args := m.Called(ctx, userID, in)
	v, _ := args.Get(0).(usecase.OrderView)
	return v, args.Error(1)
}

func (m *OrderServiceMock) Cancel(ctx context.Context, userID int64, orderID int64) (usecase.OrderView, error) {
	args := m.Called(ctx, userID, orderID)
	v, _ := args.Get(0).(usecase.OrderView)
	return v, args.Error(1)
}

func (m *OrderServiceMock) ListMine(ctx context.Context, userID int64, page int, limit int) (usecase.Page[usecase.OrderView], error) {
	args := m.Called(ctx, userID, page, limit)
	v, _ := args.Get(0).(usecase.Page[usecase.OrderView])
	return v, args.Error(1)
}

func (m *OrderServiceMock) GetMine(ctx context.Context, userID int64, orderID int64) (usecase.OrderView, error) {
	args := m.Called(ctx, userID, orderID)
	v, _ := args.Get(0).(usecase.OrderView)
	return v, args.Error(1)
}

type AuthServiceMock struct{ mock.Mock }

func (m *AuthServiceMock) Register(ctx context.Context, req usecase.AuthRegisterRequest) (usecase.UserView, error) {
	args := m.Called(ctx, req)
	v, _ := args.Get(0).(usecase.UserView)
	return v, args.Error(1)
}

func (m *AuthServiceMock) Login(ctx context.Context, req usecase.AuthLoginRequest) (usecase.AuthLoginResponse, error) {
	args := m.Called(ctx, req)
	v, _ := args.Get(0).(usecase.AuthLoginResponse)
	return v, args.Error(1)
}

func (m *AuthServiceMock) Refresh(ctx context.Context, req usecase.AuthRefreshRequest) (usecase.AuthRefreshResponse, error) {
	args := m.Called(ctx, req)
	v, _ := args.Get(0).(usecase.AuthRefreshResponse)
	return v, args.Error(1)
}

type ProductServiceMock struct{ mock.Mock }

func (m *ProductServiceMock) ListProducts(ctx context.Context, in usecase.ListProductsInput) (usecase.Page[usecase.ProductView], error) {
	args := m.Called(ctx, in)
	v, _ := args.Get(0).(usecase.Page[usecase.ProductView])
	return v, args.Error(1)
}

func (m *ProductServiceMock) ListLite(ctx context.Context, q string) ([]usecase.ProductLiteView, error) {
	args := m.Called(ctx, q)
	v, _ := args.Get(0).([]usecase.ProductLiteView)
	return v, args.Error(1)
}

func (m *ProductServiceMock) ListSuggestion(ctx context.Context, productID int64) ([]usecase.ProductView, error) {
	args := m.Called(ctx, productID)
	v, _ := args.Get(0).([]usecase.ProductView)
	return v, args.Error(1)
}

func (m *ProductServiceMock) ListBoughtBySameUsers(ctx context.Context, productID int64) ([]usecase.ProductView, error) {
	args := m.Called(ctx, productID)
	v, _ := args.Get(0).([]usecase.ProductView)
	return v, args.Error(1)
}

func (m *ProductServiceMock) GetProductDetail(ctx context.Context, userID int64, productID int64, imgStyle *string) (usecase.ProductDetailView, error) {
	args := m.Called(ctx, userID, productID, imgStyle)
	v, _ := args.Get(0).(usecase.ProductDetailView)
	return v, args.Error(1)
}
