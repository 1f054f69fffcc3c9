package builder

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"ap-content-web/internal/adapters"
	"ap-content-web/internal/config"
	"ap-content-web/internal/retry"
	"ap-content-web/internal/runner"
	"ap-content-web/internal/store"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// Runners はパイプラインが使用する実行単位の集合です。
type Runners struct {
	Content       *runner.ContentRunner
	CarouselImage *runner.CarouselImageRunner
	Review        *runner.ReviewRunner
}

// AppContext はアプリケーションの依存関係を保持します。
// 各フィールドをインターフェースで定義することで、将来的なモック利用を容易にします。
type AppContext struct {
	Config        config.Config
	HTTPClient    httpkit.ClientInterface
	Archiver      *adapters.ImageArchiver
	Store         *store.Store
	SlackNotifier adapters.SlackNotifier
	Runners       Runners

	ioFactory remoteio.IOFactory
}

// BuildAppContext は外部サービスとの接続を確立し、依存関係を組み立てます。
func BuildAppContext(ctx context.Context, cfg config.Config) (*AppContext, error) {
	// 1. 基盤クライアントの初期化
	httpClient := httpkit.New(cfg.HTTPTimeout)
	// 生成 API 用にはタイムアウト付きの素の http.Client を使用します。
	apiClient := &http.Client{Timeout: cfg.HTTPTimeout}

	// 2. I/O インフラ (GCS) の初期化。バケット未設定なら画像退避をスキップします。
	var ioFactory remoteio.IOFactory
	var writer remoteio.OutputWriter
	if cfg.GCSBucket != "" {
		factory, err := gcsfactory.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCS factory: %w", err)
		}
		w, err := factory.OutputWriter()
		if err != nil {
			return nil, fmt.Errorf("failed to create output writer: %w", err)
		}
		ioFactory = factory
		writer = w
	}

	// 3. 永続化ストアの初期化。接続文字列未設定なら保存をスキップします。
	var contentStore *store.Store
	if cfg.DatabaseURL != "" {
		s, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize content store: %w", err)
		}
		contentStore = s
	}

	// 4. アダプターの初期化
	chat := adapters.NewChatClient(apiClient, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.Model)
	images := adapters.NewImageClient(apiClient, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.ImageModel)
	archiver := adapters.NewImageArchiver(apiClient, writer)

	slack, err := adapters.NewSlackAdapter(httpClient, cfg.SlackWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Slack adapter: %w", err)
	}

	// 5. Runner の構築。リトライ実行器は全 Runner で共有します。
	exec := retry.New(cfg.MaxRetries, cfg.BaseRetryDelay)
	runners := Runners{
		Content:       runner.NewContentRunner(chat, exec, cfg.MaxTokens, cfg.CarouselMaxTokens, cfg.Temperature),
		CarouselImage: runner.NewCarouselImageRunner(images, exec, cfg.ImageBatchSize, cfg.ImageBatchPause),
		Review:        runner.NewReviewRunner(chat, exec, cfg.ReviewMaxTokens, cfg.ReviewTemperature),
	}

	return &AppContext{
		Config:        cfg,
		HTTPClient:    httpClient,
		Archiver:      archiver,
		Store:         contentStore,
		SlackNotifier: slack,
		Runners:       runners,
		ioFactory:     ioFactory,
	}, nil
}

// Close は AppContext が保持するすべての外部接続リソースを安全に解放します。
func (a *AppContext) Close() {
	if a.ioFactory != nil {
		if err := a.ioFactory.Close(); err != nil {
			slog.Error("failed to close IOFactory", "error", err)
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			slog.Error("failed to close content store", "error", err)
		}
	}
}
