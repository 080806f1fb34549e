// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/bizpage/internal/auth"
	"github.com/hitoshi/bizpage/internal/metrics"
	"github.com/hitoshi/bizpage/internal/middleware"
	"github.com/hitoshi/bizpage/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Status(ctx context.Context, token string) bool
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AuthHandler はオーナーのログイン・ログアウトを扱うHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	config  AuthHandlerConfig
	metrics metrics.MetricsCollector
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig, collector metrics.MetricsCollector) *AuthHandler {
	if collector == nil {
		collector = metrics.Nop{}
	}
	return &AuthHandler{
		service: service,
		config:  config,
		metrics: collector,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
}

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

// Login はユーザー名とパスワードを検証し、セッションCookieを発行する。
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidCredentials):
			h.metrics.RecordLogin(metrics.LoginFailure)
		case model.IsValidationError(err):
		default:
			h.metrics.RecordLogin(metrics.LoginError)
		}
		handleServiceError(w, r, err)
		return
	}
	h.metrics.RecordLogin(metrics.LoginSuccess)

	// セッションCookieを設定（HTTP Only）
	http.SetCookie(w, h.sessionCookie(r, result.Session.ID, h.config.SessionMaxAge))

	writeJSON(w, http.StatusOK, loginResponse{
		Authenticated: true,
		Username:      result.Owner.Username,
	})
}

// Logout はセッションを破棄する。ストア障害時もCookieはクリアする。
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.service.Logout(r.Context(), sessionToken(r))

	// セッションCookieをクリア
	http.SetCookie(w, h.sessionCookie(r, "", -1))

	if err != nil {
		slog.Error("failed to logout",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		middleware.WriteErrorMessage(w, http.StatusInternalServerError, "Failed to log out.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session は現在のリクエストが認証済みかどうかを返す。
// GET /api/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{
		Authenticated: h.service.Status(r.Context(), sessionToken(r)),
	})
}

func (h *AuthHandler) sessionCookie(r *http.Request, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionToken はセッションCookieの値を返す。Cookieがなければ空文字。
func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
