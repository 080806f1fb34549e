package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/bizpage/internal/metrics"
	"github.com/hitoshi/bizpage/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionValidator  middleware.SessionValidator
	CORSAllowedOrigin string
	SecureHeaders     bool
	Logger            *slog.Logger

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// コンテンツ
	ContentService ContentServiceInterface

	// 運用
	HealthChecker  Pinger
	Metrics        metrics.MetricsCollector
	MetricsHandler http.Handler // nilの場合は/metricsを公開しない
	StaticDir      string       // 空の場合は静的ファイルを配信しない
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Logging → Metrics → Recovery → SecurityHeaders → CORS → (Session)
//
// Sessionミドルウェアはオーナー専用ルートのグループにのみ適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	collector := deps.Metrics
	if collector == nil {
		collector = metrics.Nop{}
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(collector))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware(deps.SecureHeaders))
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, collector)
	contentHandler := NewContentHandler(deps.ContentService, collector)
	requireOwner := middleware.NewSessionMiddleware(deps.SessionValidator)

	// --- 運用エンドポイント ---
	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		// 認証
		r.Route("/auth", func(r chi.Router) {
			r.Get("/session", authHandler.Session)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
		})

		// 公開読み取り
		r.Get("/content", contentHandler.GetContent)

		r.Route("/business", func(r chi.Router) {
			r.Get("/", contentHandler.GetBusiness)
			r.With(requireOwner).Put("/", contentHandler.UpdateBusiness)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", contentHandler.ListServices)

			r.Group(func(r chi.Router) {
				r.Use(requireOwner)
				r.Post("/", contentHandler.CreateService)
				r.Put("/{id}", contentHandler.UpdateService)
				r.Delete("/{id}", contentHandler.DeleteService)
			})
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", contentHandler.ListTestimonials)

			r.Group(func(r chi.Router) {
				r.Use(requireOwner)
				r.Post("/", contentHandler.CreateTestimonial)
				r.Put("/{id}", contentHandler.UpdateTestimonial)
				r.Delete("/{id}", contentHandler.DeleteTestimonial)
			})
		})

		r.Route("/leads", func(r chi.Router) {
			// 問い合わせの作成は公開、一覧はオーナー専用
			r.Post("/", contentHandler.CreateLead)
			r.With(requireOwner).Get("/", contentHandler.ListLeads)
		})
	})

	// ランディングページとダッシュボードの静的ファイル
	if deps.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(deps.StaticDir)))
	}

	return r
}
