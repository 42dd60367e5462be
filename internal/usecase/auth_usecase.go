package usecase

import (
	"context"
	"strings"
	"time"

	"ecshop/internal/domain/model"
	"ecshop/internal/repository"

	"github.com/go-faster/errors"
)

const (
	msgInvalidCredentials = "Invalid username or password"
	msgTokenExpired       = "Token has expired"
	msgTokenDecoding      = "Error decoding token"
	msgTokenInvalid       = "Invalid token"
	msgTokenWrongType     = "Wrong token type, refresh token required"
	msgUserNotFound       = "User not found"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, in AuthRegisterRequest) error
	ValidateLogin(ctx context.Context, username string, password string) error
	ValidateRefresh(ctx context.Context, refreshToken string) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash string, plain string) error
}

// 署名トークンの発行・検証
type TokenManager interface {
	Issue(userID int64, role model.Role, kind model.TokenKind) (string, model.TokenSubject, error)
	Parse(raw string) (model.TokenSubject, error)
}

type AuthRegisterRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	PhoneNumber string  `json:"phone_number"`
	Dob         *string `json:"dob"`
}

type AuthLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthRefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthLoginResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	User         UserView `json:"user"`
}

type AuthRefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	hasher    PasswordHasher
	tokens    TokenManager
	validator AuthValidator
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenManager,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (UserView, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, req); err != nil {
		return UserView{}, err
	}

	dob, err := parseDob(req.Dob)
	if err != nil {
		return UserView{}, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return UserView{}, internal(err)
	}

	//ユーザー作成（roleは常にUSER）
	user := &model.User{
		Username:     req.Username,
		PasswordHash: pwHash,
		Email:        req.Email,
		Role:         model.RoleUser,
		Name:         req.Name,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
		Dob:          dob,
		IsActive:     true,
	}

	// validatorの後に同時登録された場合もここで弾く
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return UserView{}, conflict("username already exists")
		}
		return UserView{}, internal(err)
	}

	return toUserView(user), nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (AuthLoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)

	//入力検証
	if err := u.validator.ValidateLogin(ctx, req.Username, req.Password); err != nil {
		return AuthLoginResponse{}, err
	}

	//ユーザー取得（存在しない場合もパスワード違いと同じ応答）
	user, err := u.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return AuthLoginResponse{}, authFailed(msgInvalidCredentials)
	}
	if err != nil {
		return AuthLoginResponse{}, internal(err)
	}

	//パスワード照合（bcrypt）
	if err := u.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return AuthLoginResponse{}, authFailed(msgInvalidCredentials)
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return AuthLoginResponse{}, forbidden("user is inactive")
	}

	access, accessSub, err := u.tokens.Issue(user.ID, user.Role, model.TokenKindAccess)
	if err != nil {
		return AuthLoginResponse{}, internal(err)
	}
	refresh, _, err := u.tokens.Issue(user.ID, user.Role, model.TokenKindRefresh)
	if err != nil {
		return AuthLoginResponse{}, internal(err)
	}

	return AuthLoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn(accessSub),
		User:         toUserView(user),
	}, nil
}

// refresh tokenでaccess tokenを再発行する（refreshは回さない）
func (u *AuthUsecase) Refresh(ctx context.Context, req AuthRefreshRequest) (AuthRefreshResponse, error) {
	raw := strings.TrimSpace(req.RefreshToken)

	//入力検証
	if err := u.validator.ValidateRefresh(ctx, raw); err != nil {
		return AuthRefreshResponse{}, err
	}

	sub, err := u.tokens.Parse(raw)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTokenExpired):
			return AuthRefreshResponse{}, authFailed(msgTokenExpired)
		case errors.Is(err, model.ErrTokenMalformed):
			return AuthRefreshResponse{}, authFailed(msgTokenDecoding)
		default:
			return AuthRefreshResponse{}, authFailed(msgTokenInvalid)
		}
	}

	//種別チェック
	if sub.Kind != model.TokenKindRefresh {
		return AuthRefreshResponse{}, authFailed(msgTokenWrongType)
	}

	//user取得
	user, err := u.users.FindByID(ctx, sub.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return AuthRefreshResponse{}, authFailed(msgUserNotFound)
	}
	if err != nil {
		return AuthRefreshResponse{}, internal(err)
	}
	if !user.IsActive {
		return AuthRefreshResponse{}, authFailed("user is inactive")
	}

	//roleは最新のものを載せる
	access, accessSub, err := u.tokens.Issue(user.ID, user.Role, model.TokenKindAccess)
	if err != nil {
		return AuthRefreshResponse{}, internal(err)
	}

	return AuthRefreshResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn(accessSub),
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserView, error) {
	if userID <= 0 {
		return UserView{}, authFailed("unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return UserView{}, authFailed("unauthorized")
	}
	if err != nil {
		return UserView{}, internal(err)
	}

	if !user.IsActive {
		return UserView{}, forbidden("user is inactive")
	}

	return toUserView(user), nil
}

func expiresIn(sub model.TokenSubject) int {
	return int(sub.ExpiresAt.Sub(sub.IssuedAt) / time.Second)
}

// YYYY-MM-DD
func parseDob(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, validationError("dob must be YYYY-MM-DD")
	}
	return &t, nil
}
