package runner

import (
	"context"
	"log/slog"
	"strings"

	"ap-content-web/internal/domain"
	"ap-content-web/internal/parser"
	"ap-content-web/internal/prompt"
	"ap-content-web/internal/retry"
)

// ReviewRunner は複数コンテンツの一貫性レビューと比較分析を実行します。
// 判定の温度は低め（決定性重視）に固定して呼び出します。
type ReviewRunner struct {
	chat        ChatCompleter
	exec        *retry.Executor
	maxTokens   int
	temperature float64
}

// NewReviewRunner は ReviewRunner を初期化します。
func NewReviewRunner(chat ChatCompleter, exec *retry.Executor, maxTokens int, temperature float64) *ReviewRunner {
	return &ReviewRunner{
		chat:        chat,
		exec:        exec,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Run はレビューを1回実行し、正規化済みの ReviewResponse を返します。
// 検証エラー（対象0件、比較モードで2件未満）はネットワークに到達する前に返します。
func (r *ReviewRunner) Run(ctx context.Context, req domain.ReviewRequest) (*domain.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pair := prompt.BuildReview(req)

	slog.InfoContext(ctx, "Reviewing contents",
		"mode", req.Mode,
		"items", len(req.Contents),
	)

	completion, err := retry.Do(ctx, r.exec, func(ctx context.Context) (domain.ChatCompletion, error) {
		return r.chat.Complete(ctx, domain.ChatRequest{
			SystemPrompt: pair.System,
			UserPrompt:   pair.User,
			MaxTokens:    r.maxTokens,
			Temperature:  r.temperature,
			JSONMode:     true,
		})
	})
	if err != nil {
		return nil, err
	}

	res, err := parser.Review(completion)
	if err != nil {
		return nil, err
	}

	r.normalize(res, len(req.Contents))

	slog.InfoContext(ctx, "Review completed",
		"overall_coherence", res.OverallCoherence,
		"needs_adjustment", res.NeedsAdjustment,
	)
	return res, nil
}

// normalize は生成 API の応答ゆれを正規化します。
// 空白のみの調整案は「調整なし」と同義に扱い、比較結果はペア数の上限で切り詰めます。
func (r *ReviewRunner) normalize(res *domain.ReviewResponse, itemCount int) {
	for i := range res.Results {
		res.Results[i].AdjustedContent = strings.TrimSpace(res.Results[i].AdjustedContent)
	}

	maxPairs := itemCount * (itemCount - 1) / 2
	if len(res.ComparisonResults) > maxPairs {
		slog.Warn("Comparison results exceeded the pair bound, truncating",
			"got", len(res.ComparisonResults),
			"max", maxPairs,
		)
		res.ComparisonResults = res.ComparisonResults[:maxPairs]
	}
}

// ApplyAdjustments はレビュー結果の調整案を各コンテンツへ反映した複製を返します。
// 元の本文はメタデータに退避し、調整案のないコンテンツはそのまま返します。
func ApplyAdjustments(contents []domain.Content, results []domain.ReviewResult) []domain.Content {
	byID := make(map[string]domain.ReviewResult, len(results))
	for _, result := range results {
		byID[result.ContentID] = result
	}

	adjusted := make([]domain.Content, len(contents))
	for i, content := range contents {
		adjusted[i] = content

		result, ok := byID[content.ID]
		if !ok || result.AdjustedContent == "" {
			continue
		}

		adjusted[i].Metadata.OriginalContent = content.Body
		adjusted[i].Metadata.AdjustmentsApplied = true
		adjusted[i].Metadata.CoherenceScore = result.CoherenceScore
		adjusted[i].Body = result.AdjustedContent
	}
	return adjusted
}
