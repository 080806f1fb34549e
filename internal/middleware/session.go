// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/bizpage/internal/model"
)

// SessionCookieName はセッショントークンを運ぶCookie名。
const SessionCookieName = "dashboard.sid"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// ownerIDContextKey はリクエストコンテキストにオーナーIDを格納するためのキー。
var ownerIDContextKey = contextKey("owner_id")

// SessionValidator はセッショントークンの検証に必要なインターフェース。
// auth.Serviceが満たす。
type SessionValidator interface {
	Validate(ctx context.Context, token string) (int64, error)
}

// NewSessionMiddleware はHTTP Only Cookieからセッショントークンを読み取り、
// 有効性を検証するミドルウェアを返す。
// 認証済みオーナーIDをリクエストコンテキストに注入する。
// 未認証リクエストには401、ストア障害には500を返し、後続のハンドラーは呼ばない。
func NewSessionMiddleware(validator SessionValidator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Cookieからトークンを取得
			var token string
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				token = cookie.Value
			}

			// 2. セッションの有効性を検証
			ownerID, err := validator.Validate(r.Context(), token)
			if err != nil {
				if errors.Is(err, model.ErrUnauthenticated) {
					WriteErrorResponse(w, http.StatusUnauthorized, model.ErrUnauthenticated)
					return
				}
				slog.Error("failed to validate session",
					slog.String("error", err.Error()),
					slog.String("request_id", RequestIDFromContext(r.Context())),
				)
				WriteInternalServerError(w)
				return
			}

			// 3. 認証済みオーナーIDをコンテキストに注入
			if info := requestInfoFromContext(r.Context()); info != nil {
				info.ownerID = ownerID
			}
			next.ServeHTTP(w, r.WithContext(ContextWithOwnerID(r.Context(), ownerID)))
		})
	}
}

// OwnerIDFromContext はリクエストコンテキストからオーナーIDを取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func OwnerIDFromContext(ctx context.Context) (int64, error) {
	ownerID, ok := ctx.Value(ownerIDContextKey).(int64)
	if !ok || ownerID == 0 {
		return 0, fmt.Errorf("owner ID not found in context")
	}
	return ownerID, nil
}

// ContextWithOwnerID はコンテキストにオーナーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithOwnerID(ctx context.Context, ownerID int64) context.Context {
	return context.WithValue(ctx, ownerIDContextKey, ownerID)
}
