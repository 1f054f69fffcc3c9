package server

import (
	"net/http"

	"ap-content-web/internal/builder"
	"ap-content-web/internal/server/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shouni/gcp-kit/auth"
)

// NewRouter は、ミドルウェアとルーティングを統合した http.Handler を構築します。
func NewRouter(h *builder.AppHandlers) http.Handler {
	r := chi.NewRouter()

	setupCommonMiddleware(r)
	setupRoutes(r, h.Auth, h.API)

	return r
}

func setupCommonMiddleware(r *chi.Mux) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
}

func setupRoutes(r chi.Router, authHandler *auth.Handler, apiHandler *handlers.Handler) {
	// --- 公開ルート ---
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// --- OAuth2 認証フロー ---
	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", authHandler.Login)
		r.Get("/callback", authHandler.Callback)
	})

	// --- 認証が必要なルート (ダッシュボード SPA 用 API) ---
	r.Group(func(r chi.Router) {
		r.Use(authHandler.Middleware)

		r.Route("/api", func(r chi.Router) {
			r.Post("/content/generate", apiHandler.HandleGenerate)
			r.Post("/content/optimize", apiHandler.HandleOptimize)
			r.Post("/review", apiHandler.HandleReview)
		})
	})
}
