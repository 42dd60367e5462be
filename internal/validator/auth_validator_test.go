package validator

import (
	"context"
	"testing"

	"ecshop/internal/domain/model"
	"ecshop/internal/repository"
	"ecshop/internal/usecase"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *userRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) UpdateProfile(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func TestValidateRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		users := new(userRepoMock)
		users.On("FindByUsername", ctx, "alice").Return(nil, repository.ErrNotFound)

		err := NewAuthValidator(users).ValidateRegister(ctx, usecase.AuthRegisterRequest{
			Username: "alice", Password: "password123", Email: "alice@example.com",
		})
		assert.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := new(userRepoMock)
		users.On("FindByUsername", ctx, "alice").Return(&model.User{ID: 1}, nil)

		err := NewAuthValidator(users).ValidateRegister(ctx, usecase.AuthRegisterRequest{
			Username: "alice", Password: "password123",
		})
		assert.ErrorIs(t, err, usecase.ErrConflict)
	})

	t.Run("db error", func(t *testing.T) {
		users := new(userRepoMock)
		users.On("FindByUsername", ctx, "alice").Return(nil, errors.New("db down"))

		err := NewAuthValidator(users).ValidateRegister(ctx, usecase.AuthRegisterRequest{
			Username: "alice", Password: "password123",
		})
		assert.Error(t, err)
		_, ok := usecase.AsHTTPError(err)
		assert.False(t, ok)
	})

	invalid := []struct {
		name string
		in   usecase.AuthRegisterRequest
	}{
		{name: "empty username", in: usecase.AuthRegisterRequest{Password: "password123"}},
		{name: "short password", in: usecase.AuthRegisterRequest{Username: "alice", Password: "short"}},
		{name: "bad email", in: usecase.AuthRegisterRequest{Username: "alice", Password: "password123", Email: "nope"}},
		{name: "bad username", in: usecase.AuthRegisterRequest{Username: "al ice", Password: "password123"}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			users := new(userRepoMock)
			err := NewAuthValidator(users).ValidateRegister(ctx, tt.in)
			assert.ErrorIs(t, err, usecase.ErrValidation)
			users.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
		})
	}
}

func TestValidateLoginAndRefresh(t *testing.T) {
	ctx := context.Background()
	v := NewAuthValidator(new(userRepoMock))

	assert.NoError(t, v.ValidateLogin(ctx, "alice", "x"))
	assert.ErrorIs(t, v.ValidateLogin(ctx, "", "x"), usecase.ErrValidation)
	assert.ErrorIs(t, v.ValidateLogin(ctx, "alice", ""), usecase.ErrValidation)

	assert.NoError(t, v.ValidateRefresh(ctx, "token"))
	assert.ErrorIs(t, v.ValidateRefresh(ctx, "  "), usecase.ErrValidation)
}
