package validator

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"ecshop/internal/repository"
	"ecshop/internal/usecase"

	"github.com/go-faster/errors"
)

const (
	minPasswordLen = 8
	maxUsernameLen = 150
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, in usecase.AuthRegisterRequest) error {
	username := strings.TrimSpace(in.Username)

	// 必須チェック
	if username == "" {
		return usecase.NewValidationError("username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen || !usernameRe.MatchString(username) {
		return usecase.NewValidationError("invalid username")
	}

	// パスワード最低文字数
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return usecase.NewValidationError("password must be at least 8 characters")
	}

	// email形式（任意）
	if email := strings.TrimSpace(in.Email); email != "" && !emailRe.MatchString(email) {
		return usecase.NewValidationError("invalid email")
	}

	// username重複チェック（DBが必要）
	_, err := v.users.FindByUsername(ctx, username)
	if err == nil {
		return usecase.NewConflictError("username already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return errors.Wrap(err, "find user")
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	// 必須チェック
	if strings.TrimSpace(username) == "" || password == "" {
		return usecase.NewValidationError("username and password are required")
	}
	return nil
}

// refresh 入力を検証
func (v *authValidator) ValidateRefresh(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return usecase.NewValidationError("refresh_token is required")
	}
	return nil
}
