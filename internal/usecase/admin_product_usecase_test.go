package usecase_test

import (
	"context"
	"testing"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"
	"ecshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminProductUsecase_CreateProduct(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	audits := new(AuditRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{products: products, auditLogs: audits}}
	uc := usecase.NewAdminProductUsecase(tx, nil, nil)

	in := usecase.AdminProductInput{Name: "Phone", Price: dec(100), SalePrice: dec(90), CategoryID: 1, BrandID: 2}

	tx.On("WithinTx", ctx).Return(nil)
	products.On("Create", ctx, mock.MatchedBy(func(p model.Product) bool { return p.Name == "Phone" })).
		Return(model.Product{ID: 10}, nil)
	products.On("FindByID", ctx, int64(10)).Return(model.Product{ID: 10, Name: "Phone", Price: dec(100), SalePrice: dec(90)}, nil)
	audits.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionCreateProduct && l.ResourceID == 10 && l.BeforeJSON == "" && l.AfterJSON != ""
	})).Return(nil)

	out, err := uc.CreateProduct(ctx, 1, in)
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.Discount)
	audits.AssertExpectations(t)
}

func TestAdminProductUsecase_Validation(t *testing.T) {
	ctx := context.Background()
	tx := &TxManagerMock{Repos: &TxReposMock{}}
	uc := usecase.NewAdminProductUsecase(tx, nil, nil)

	invalid := []usecase.AdminProductInput{
		{Price: dec(100), SalePrice: dec(90), CategoryID: 1, BrandID: 1},
		{Name: "x", Price: dec(100), SalePrice: dec(120), CategoryID: 1, BrandID: 1},
		{Name: "x", Price: dec(-1), SalePrice: dec(-1), CategoryID: 1, BrandID: 1},
		{Name: "x", Price: dec(100), SalePrice: dec(90)},
	}
	for _, in := range invalid {
		_, err := uc.CreateProduct(ctx, 1, in)
		assert.ErrorIs(t, err, usecase.ErrValidation)
	}
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestAdminProductUsecase_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	audits := new(AuditRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{products: products, auditLogs: audits}}
	uc := usecase.NewAdminProductUsecase(tx, nil, nil)

	tx.On("WithinTx", ctx).Return(nil)
	products.On("FindByID", ctx, int64(10)).Return(model.Product{ID: 10, Name: "Phone"}, nil)
	products.On("FindByID", ctx, int64(11)).Return(nil, repo.ErrNotFound)
	products.On("SoftDelete", ctx, int64(10)).Return(nil)
	audits.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeleteProduct && l.AfterJSON == ""
	})).Return(nil)

	require.NoError(t, uc.DeleteProduct(ctx, 1, 10))
	assert.ErrorIs(t, uc.DeleteProduct(ctx, 1, 11), usecase.ErrNotFound)
}
