// Package model はドメインモデルを定義する。
package model

import "time"

// Owner はダッシュボードにログインできる管理者アカウントを表す。
// PasswordHashはbcryptハッシュで、APIレスポンスには含めない。
type Owner struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Session はオーナーのログインセッションを表す。
// IDはCookieで受け渡す不透明なトークン。
type Session struct {
	ID        string
	OwnerID   int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired はセッションが指定時刻の時点で期限切れかどうかを返す。
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
