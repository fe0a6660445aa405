package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 入力不備（空カート、非公開の本、住所不足、不正な支払い方法など）
func NewValidationError(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// 在庫不足
func NewConflictError(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

func NewNotFoundError(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// ゲートウェイの応答異常・疎通失敗。本文は利用者向けの一般的な文言にして、
// 詳細はログ側に出す。
func NewGatewayError(message string) error {
	return NewHTTPError(http.StatusBadGateway, message)
}

// サーバー側の設定不備（シークレット未設定など）
func NewConfigError(message string) error {
	return NewHTTPError(http.StatusInternalServerError, message)
}
