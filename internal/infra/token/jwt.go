package token

import (
	"time"

	"ecshop/internal/config"
	"ecshop/internal/domain/model"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	// 期限切れ
	ErrExpired = model.ErrTokenExpired
	// 形式不正・署名不一致
	ErrMalformed = model.ErrTokenMalformed
	// それ以外の検証失敗
	ErrInvalid = model.ErrTokenInvalid
)

// JWTのpayload
type Claims struct {
	UserID int64           `json:"id"`
	Role   model.Role      `json:"role"`
	Kind   model.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// HS256でトークンを発行・検証する
type Manager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(cfg config.JWTConfig) *Manager {
	return &Manager{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

// テスト用に時計を差し替える
func (m *Manager) WithClock(now func() time.Time) *Manager {
	cp := *m
	cp.now = now
	return &cp
}

func (m *Manager) TTL(kind model.TokenKind) time.Duration {
	if kind == model.TokenKindRefresh {
		return m.refreshTTL
	}
	return m.accessTTL
}

// 署名済みトークンを返す
func (m *Manager) Issue(userID int64, role model.Role, kind model.TokenKind) (string, model.TokenSubject, error) {
	if kind != model.TokenKindAccess && kind != model.TokenKindRefresh {
		return "", model.TokenSubject{}, errors.Errorf("issue: %s", kind)
	}
	now := m.now()
	exp := now.Add(m.TTL(kind))

	claims := Claims{
		UserID: userID,
		Role:   role,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", model.TokenSubject{}, errors.Wrap(err, "sign token")
	}

	return signed, model.TokenSubject{
		UserID:    userID,
		Role:      role,
		Kind:      kind,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// 署名と期限を検証して中身を返す。種別のチェックは呼び出し側
func (m *Manager) Parse(raw string) (model.TokenSubject, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	_, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return model.TokenSubject{}, ErrMalformed
		default:
			return model.TokenSubject{}, ErrInvalid
		}
	}

	//期限は自前の時計で見る
	if !claims.VerifyExpiresAt(m.now(), true) {
		return model.TokenSubject{}, ErrExpired
	}
	if claims.UserID <= 0 {
		return model.TokenSubject{}, ErrInvalid
	}

	sub := model.TokenSubject{
		UserID: claims.UserID,
		Role:   claims.Role,
		Kind:   claims.Kind,
	}
	if claims.IssuedAt != nil {
		sub.IssuedAt = claims.IssuedAt.Time
	}
	sub.ExpiresAt = claims.ExpiresAt.Time
	return sub, nil
}
