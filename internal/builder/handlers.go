package builder

import (
	"fmt"
	"net/url"

	"ap-content-web/internal/server/handlers"

	"github.com/shouni/gcp-kit/auth"
)

const defaultSessionName = "ap-content-session"

// AppHandlers は生成されたすべての HTTP ハンドラーを保持する構造体です。
// server パッケージはこの構造体を受け取ってルーティングを行います。
type AppHandlers struct {
	Auth *auth.Handler
	API  *handlers.Handler
}

// BuildHandlers は各ハンドラーの依存関係をすべて組み立て、AppHandlers 構造体を返します。
func BuildHandlers(appCtx *AppContext, executor handlers.PipelineExecutor) (*AppHandlers, error) {
	if appCtx.Config.ServiceURL == "" {
		return nil, fmt.Errorf("認証リダイレクトのために ServiceURL の設定が必要です")
	}

	// 1. 認証Handlerの初期化
	authHandler, err := createAuthHandler(appCtx)
	if err != nil {
		return nil, fmt.Errorf("認証Handlerの初期化に失敗しました: %w", err)
	}

	// 2. API 用Handlerの初期化
	apiHandler := handlers.NewHandler(appCtx.Config, executor)

	return &AppHandlers{
		Auth: authHandler,
		API:  apiHandler,
	}, nil
}

// createAuthHandler は AppContext から認証ライブラリ用の設定を構築し、ハンドラーを生成します。
func createAuthHandler(appCtx *AppContext) (*auth.Handler, error) {
	cfg := appCtx.Config
	redirectURL, err := url.JoinPath(cfg.ServiceURL, "/auth/callback")
	if err != nil {
		return nil, fmt.Errorf("リダイレクトURLの構築に失敗しました: %w", err)
	}

	// HttpClient の判定メソッドを使用して Secure 属性を決定
	isSecure := appCtx.HTTPClient.IsSecureServiceURL(cfg.ServiceURL)

	return auth.NewHandler(auth.Config{
		ClientID:          cfg.GoogleClientID,
		ClientSecret:      cfg.GoogleClientSecret,
		RedirectURL:       redirectURL,
		SessionAuthKey:    cfg.SessionSecret,
		SessionEncryptKey: cfg.SessionEncryptKey,
		SessionName:       defaultSessionName,
		IsSecureCookie:    isSecure,
		AllowedEmails:     cfg.AllowedEmails,
		AllowedDomains:    cfg.AllowedDomains,
		TaskAudienceURL:   cfg.ServiceURL,
	})
}
