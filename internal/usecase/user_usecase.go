package usecase

import (
	"context"
	"strings"

	repo "ecshop/internal/repository"

	"github.com/go-faster/errors"
)

type UserUsecase struct {
	users repo.UserRepository
}

func NewUserUsecase(users repo.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// username/roleは変更できない
type UpdateProfileInput struct {
	Email       *string `json:"email"`
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	Dob         *string `json:"dob"`
}

func (u *UserUsecase) Profile(ctx context.Context, userID int64) (UserView, error) {
	if userID <= 0 {
		return UserView{}, authFailed("unauthorized")
	}
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserView{}, notFound("user not found")
	}
	if err != nil {
		return UserView{}, internal(err)
	}
	return toUserView(user), nil
}

// 指定された項目だけ変える
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (UserView, error) {
	if userID <= 0 {
		return UserView{}, authFailed("unauthorized")
	}
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserView{}, notFound("user not found")
	}
	if err != nil {
		return UserView{}, internal(err)
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" && !strings.Contains(email, "@") {
			return UserView{}, validationError("invalid email")
		}
		user.Email = email
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		user.Address = strings.TrimSpace(*in.Address)
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Dob != nil {
		dob, err := parseDob(in.Dob)
		if err != nil {
			return UserView{}, err
		}
		user.Dob = dob
	}

	if err := u.users.UpdateProfile(ctx, user); err != nil {
		return UserView{}, internal(err)
	}
	return toUserView(user), nil
}
