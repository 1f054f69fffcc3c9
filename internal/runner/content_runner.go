package runner

import (
	"context"
	"log/slog"

	"ap-content-web/internal/domain"
	"ap-content-web/internal/parser"
	"ap-content-web/internal/prompt"
	"ap-content-web/internal/retry"
)

// ChatCompleter は、チャット補完 API への1回の要求を抽象化します。
// adapters.ChatClient がこのインターフェースを満たします。
type ChatCompleter interface {
	Complete(ctx context.Context, req domain.ChatRequest) (domain.ChatCompletion, error)
}

// ContentRunner はコンテンツ生成1回分のフローを実行します。
// プロンプト構築 → リトライ付き API 呼び出し → 応答の構造化デコード、の順です。
type ContentRunner struct {
	chat              ChatCompleter
	exec              *retry.Executor
	maxTokens         int
	carouselMaxTokens int
	temperature       float64
}

// NewContentRunner は依存関係を注入して ContentRunner を初期化します。
func NewContentRunner(chat ChatCompleter, exec *retry.Executor, maxTokens, carouselMaxTokens int, temperature float64) *ContentRunner {
	return &ContentRunner{
		chat:              chat,
		exec:              exec,
		maxTokens:         maxTokens,
		carouselMaxTokens: carouselMaxTokens,
		temperature:       temperature,
	}
}

// Run は GenerationRequest からコンテンツを生成します。
// ローカル検証エラーはネットワークに到達する前に返します。
func (r *ContentRunner) Run(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pair, err := prompt.BuildGeneration(req)
	if err != nil {
		return nil, err
	}

	// カルーセルはスライドごとの視覚説明を含むため、トークン上限を広げます。
	maxTokens := r.maxTokens
	if req.Format == domain.FormatCarousel {
		maxTokens = r.carouselMaxTokens
	}

	slog.InfoContext(ctx, "Generating content",
		"platform", req.Platform,
		"format", req.Format,
	)

	completion, err := retry.Do(ctx, r.exec, func(ctx context.Context) (domain.ChatCompletion, error) {
		return r.chat.Complete(ctx, domain.ChatRequest{
			SystemPrompt: pair.System,
			UserPrompt:   pair.User,
			MaxTokens:    maxTokens,
			Temperature:  r.temperature,
			JSONMode:     true,
		})
	})
	if err != nil {
		return nil, err
	}

	result, err := parser.Generation(completion)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Content generated",
		"title", result.Title,
		"sections", len(result.Content.Sections),
		"quality_score", result.QualityScore,
	)
	return result, nil
}

// Optimize は既存の本文を指定の目的（engagement / reach / conversion）で書き直します。
// 最適化の失敗は致命的ではないため、エラーにはせず元の本文をそのまま返します。
func (r *ContentRunner) Optimize(ctx context.Context, body string, platform domain.Platform, goal domain.OptimizationGoal) (string, error) {
	pair := prompt.BuildOptimization(body, platform, goal)

	completion, err := retry.Do(ctx, r.exec, func(ctx context.Context) (domain.ChatCompletion, error) {
		return r.chat.Complete(ctx, domain.ChatRequest{
			SystemPrompt: pair.System,
			UserPrompt:   pair.User,
			MaxTokens:    r.maxTokens,
			Temperature:  r.temperature,
		})
	})
	if err != nil {
		slog.WarnContext(ctx, "Content optimization failed, keeping the original body", "error", err)
		return body, nil
	}

	return completion.Content, nil
}
