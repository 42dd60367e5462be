package usecase

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

var (
	//404 対象なし
	ErrNotFound = errors.New("not found")
	//400 入力不正
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrAuthenticationFailed = errors.New("authentication failed")
	//400 業務ルール違反
	ErrClient = errors.New("client error")
	//403 権限
	ErrForbidden = errors.New("forbidden")
	//409 競合
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")
)

// handlerがそのまま返せる形のエラー
// Kindでerrors.Isできる
type HTTPError struct {
	Status  int
	Message string
	Kind    error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.Kind }

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Kind:    kindForStatus(status),
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrAuthenticationFailed
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrInternal
	}
}

func notFound(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

func validationError(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

func authFailed(message string) error {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// 業務ルール違反（400だがValidationとは区別する）
func clientError(message string) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: message, Kind: ErrClient}
}

func forbidden(message string) error {
	return NewHTTPError(http.StatusForbidden, message)
}

func conflict(message string) error {
	return NewHTTPError(http.StatusConflict, message)
}

// 原因は握りつぶさずに持っておく（ログ用）
func internal(cause error) error {
	return &internalError{cause: cause}
}

type internalError struct {
	cause error
}

func (e *internalError) Error() string { return "internal error: " + e.cause.Error() }

func (e *internalError) Unwrap() error { return e.cause }

func (e *internalError) Is(target error) bool { return target == ErrInternal }

// validatorなど外からも使う
func NewValidationError(message string) error { return validationError(message) }

func NewConflictError(message string) error { return conflict(message) }
