package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecshop/internal/config"
	"ecshop/internal/domain/model"
	"ecshop/internal/handler"
	"ecshop/internal/infra/token"
	"ecshop/internal/middleware"
	"ecshop/internal/usecase"

	"github.com/go-faster/errors"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTokens() *token.Manager {
	return token.NewManager(config.JWTConfig{
		Secret:     "handler-secret",
		Issuer:     "ecshop",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
}

func bearer(t *testing.T, tokens *token.Manager, userID int64, role model.Role) string {
	t.Helper()
	raw, _, err := tokens.Issue(userID, role, model.TokenKindAccess)
	require.NoError(t, err)
	return "Bearer " + raw
}

func do(e *echo.Echo, method, path, authz string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var r handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&r))
	return r.Error
}

func newOrderServer(orders *OrderServiceMock, tokens *token.Manager, lg *zap.Logger) *echo.Echo {
	e := echo.New()
	e.Use(middleware.InjectLogger(lg))
	auth := middleware.AuthJWT(tokens)
	user := e.Group("/user", auth)
	handler.NewOrderHandler(orders).RegisterRoutes(e, auth, user)
	return e
}

func TestOrderHandler_Create(t *testing.T) {
	tokens := newTokens()
	orders := new(OrderServiceMock)
	e := newOrderServer(orders, tokens, zap.NewNop())

	want := usecase.CreateOrderInput{
		PaymentID: 1,
		Note:      "leave at door",
		Items:     []usecase.CreateOrderItemInput{{ProductID: 10, Count: 2}},
	}
	orders.On("Create", mock.Anything, int64(5), want).Return(usecase.OrderView{
		ID:        100,
		UserID:    5,
		SumPrice:  decimal.NewFromInt(150),
		TotalCost: decimal.NewFromInt(170),
		Status:    model.OrderStatusWaitingConfirm,
	}, nil)

	body := `{"payment":1,"note":"leave at door","items":[{"product":10,"count":2}]}`
	rec := do(e, http.MethodPost, "/user/orders", bearer(t, tokens, 5, model.RoleUser), strings.NewReader(body))
	require.Equal(t, http.StatusCreated, rec.Code)

	var out usecase.OrderView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, int64(100), out.ID)
	assert.True(t, out.TotalCost.Equal(decimal.NewFromInt(170)))
	orders.AssertExpectations(t)
}

func TestOrderHandler_RequiresAuth(t *testing.T) {
	orders := new(OrderServiceMock)
	e := newOrderServer(orders, newTokens(), zap.NewNop())

	for _, path := range []string{"/orders", "/user/orders"} {
		rec := do(e, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	orders.AssertNotCalled(t, "ListMine", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderHandler_Cancel(t *testing.T) {
	tokens := newTokens()
	orders := new(OrderServiceMock)
	e := newOrderServer(orders, tokens, zap.NewNop())
	authz := bearer(t, tokens, 5, model.RoleUser)

	orders.On("Cancel", mock.Anything, int64(5), int64(1)).
		Return(usecase.OrderView{ID: 1, Status: model.OrderStatusCancel}, nil)
	orders.On("Cancel", mock.Anything, int64(5), int64(2)).
		Return(nil, usecase.NewHTTPError(http.StatusBadRequest, "Order has been processed and cannot be cancelled. Please contact admin."))
	orders.On("Cancel", mock.Anything, int64(5), int64(3)).
		Return(nil, usecase.NewHTTPError(http.StatusNotFound, "order not found"))

	rec := do(e, http.MethodPut, "/user/orders/1/cancel", authz, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPut, "/user/orders/2/cancel", authz, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Order has been processed and cannot be cancelled. Please contact admin.", errorBody(t, rec))

	rec = do(e, http.MethodPut, "/user/orders/3/cancel", authz, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodPut, "/user/orders/abc/cancel", authz, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid id", errorBody(t, rec))
}

func TestOrderHandler_InternalErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	tokens := newTokens()
	orders := new(OrderServiceMock)
	e := newOrderServer(orders, tokens, zap.New(core))

	orders.On("ListMine", mock.Anything, int64(5), 1, 20).
		Return(nil, errors.New("connection reset"))

	rec := do(e, http.MethodGet, "/orders", bearer(t, tokens, 5, model.RoleUser), nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", errorBody(t, rec))
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap()["error"], "connection reset")
}

func TestAuthHandler(t *testing.T) {
	auth := new(AuthServiceMock)
	e := echo.New()
	handler.NewAuthHandler(auth).RegisterRoutes(e)

	auth.On("Login", mock.Anything, usecase.AuthLoginRequest{Username: "alice", Password: "wrong"}).
		Return(nil, usecase.NewHTTPError(http.StatusUnauthorized, "Invalid username or password"))
	auth.On("Refresh", mock.Anything, usecase.AuthRefreshRequest{RefreshToken: "x"}).
		Return(usecase.AuthRefreshResponse{AccessToken: "new", TokenType: "Bearer", ExpiresIn: 900}, nil)
	auth.On("Register", mock.Anything, mock.MatchedBy(func(r usecase.AuthRegisterRequest) bool {
		return r.Username == "bob"
	})).Return(usecase.UserView{ID: 2, Username: "bob", Role: model.RoleUser}, nil)

	rec := do(e, http.MethodPost, "/login", "", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid username or password", errorBody(t, rec))

	rec = do(e, http.MethodPost, "/refresh", "", strings.NewReader(`{"refresh_token":"x"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"access_token":"new","token_type":"Bearer","expires_in":900}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/register", "", strings.NewReader(`{"username":"bob","password":"password1"}`))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = do(e, http.MethodPost, "/login", "", strings.NewReader(`{"username":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_Detail(t *testing.T) {
	tokens := newTokens()
	products := new(ProductServiceMock)
	e := echo.New()
	handler.NewProductHandler(products).RegisterRoutes(e, tokens)

	style := "width:100%"
	products.On("GetProductDetail", mock.Anything, int64(0), int64(10), (*string)(nil)).
		Return(usecase.ProductDetailView{ID: 10, IsBuy: false}, nil)
	products.On("GetProductDetail", mock.Anything, int64(5), int64(10), &style).
		Return(usecase.ProductDetailView{ID: 10, IsBuy: true}, nil)

	rec := do(e, http.MethodGet, "/products/10", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_buy":false`)

	rec = do(e, http.MethodGet, "/products/10?img_style=width:100%25", bearer(t, tokens, 5, model.RoleUser), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_buy":true`)
}

func TestProductHandler_List(t *testing.T) {
	products := new(ProductServiceMock)
	e := echo.New()
	handler.NewProductHandler(products).RegisterRoutes(e, newTokens())

	products.On("ListProducts", mock.Anything, mock.MatchedBy(func(in usecase.ListProductsInput) bool {
		return in.Page == 2 && in.Limit == 20 && in.Sort == "price_desc" &&
			in.BrandID != nil && *in.BrandID == 3 &&
			in.MinPrice != nil && in.MinPrice.Equal(decimal.RequireFromString("9.5")) &&
			in.MaxPrice == nil
	})).Return(usecase.Page[usecase.ProductView]{Items: []usecase.ProductView{}, Page: 2, Limit: 20}, nil)

	rec := do(e, http.MethodGet, "/products?page=2&brand=3&min_price=9.5&sort=price_desc", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, q := range []string{"page=x", "min_price=abc", "category=1.5"} {
		rec := do(e, http.MethodGet, "/products?"+q, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	rec = do(e, http.MethodGet, "/products/suggestion", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	products.On("ListSuggestion", mock.Anything, int64(4)).Return([]usecase.ProductView{{ID: 8}}, nil)
	rec = do(e, http.MethodGet, "/products/suggestion?product_id=4", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	products.AssertExpectations(t)
}

