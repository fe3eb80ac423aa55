// 指示: miu200521358
// Package merrors はリグ編集コマンドの失敗分類を提供する。
package merrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput は利用不能な参照オブジェクト指定による失敗を表す。
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidContext は必要なホスト関係の欠落による失敗を表す。
	ErrInvalidContext = errors.New("invalid context")
)

// NewInvalidInputError は入力不正エラーを生成する。
func NewInvalidInputError(format string, params ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, params...))
}

// NewInvalidContextError は文脈不正エラーを生成する。
func NewInvalidContextError(format string, params ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidContext, fmt.Sprintf(format, params...))
}

// IsInvalidInput は入力不正エラー判定を返す。
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvalidContext は文脈不正エラー判定を返す。
func IsInvalidContext(err error) bool {
	return errors.Is(err, ErrInvalidContext)
}
