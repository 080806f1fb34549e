package model

import (
	"errors"
	"fmt"
)

// APIError はクライアントに返却するエラーを表す。
// Messageはそのままレスポンスの error フィールドに入る。
type APIError struct {
	Code    string // エラーコード
	Message string // エラーメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

var (
	// ErrInvalidCredentials はユーザー名またはパスワードが一致しないことを表す。
	// 未登録ユーザーとパスワード誤りを区別しない。
	ErrInvalidCredentials = &APIError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid credentials.",
	}

	// ErrUnauthenticated はセッションが存在しない、または期限切れであることを表す。
	ErrUnauthenticated = &APIError{
		Code:    ErrCodeUnauthorized,
		Message: "Unauthorized",
	}
)

// NewValidationError は必須項目の欠落などの入力エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// NewInternalError は内部エラーを生成する。詳細はログにのみ記録する。
func NewInternalError() *APIError {
	return &APIError{
		Code:    ErrCodeInternal,
		Message: "Internal server error.",
	}
}

// IsValidationError はerrがバリデーションエラーかどうかを判定する。
func IsValidationError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == ErrCodeValidation
}
