package model

import (
	"fmt"
	"time"

	"github.com/go-faster/errors"
)

// トークン種別（ACCESS / REFRESH のみ）
type TokenKind uint8

const (
	TokenKindAccess TokenKind = iota + 1
	TokenKindRefresh
)

func (k TokenKind) String() string {
	switch k {
	case TokenKindAccess:
		return "access"
	case TokenKindRefresh:
		return "refresh"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

func (k TokenKind) MarshalText() ([]byte, error) {
	switch k {
	case TokenKindAccess, TokenKindRefresh:
		return []byte(k.String()), nil
	default:
		return nil, errors.Errorf("unknown token kind %d", uint8(k))
	}
}

func (k *TokenKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "access":
		*k = TokenKindAccess
	case "refresh":
		*k = TokenKindRefresh
	default:
		return errors.Errorf("unknown token kind %q", string(b))
	}
	return nil
}

// 署名済みトークンの中身
type TokenSubject struct {
	UserID    int64
	Role      Role
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// トークン検証の失敗種別
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenInvalid   = errors.New("token invalid")
)
