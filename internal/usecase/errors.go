package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// handlerでHTTPステータスに変換するエラー
// Errは500のときの原因。レスポンスには出さずログにだけ残す
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
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

// DBなどインフラの失敗
func internalError(err error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "internal error",
		Err:     err,
	}
}

// Tx内で作ったHTTPErrorはそのまま返し、それ以外は500にする
func passOrInternal(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	return internalError(err)
}

// 注文まわりは存在しないときも400
var errOrderNotFound = NewHTTPError(http.StatusBadRequest, "order not found")

// コメント資格なし
var ErrNotEligible = NewHTTPError(http.StatusBadRequest, "You can only comment after receiving this product.")

var ErrAlreadyCommented = NewHTTPError(http.StatusBadRequest, "You have already commented on this product for this order.")
