// Package pipeline は生成・最適化・レビューの各フローを組み立てて実行します。
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"ap-content-web/internal/builder"
	"ap-content-web/internal/domain"
)

// ContentPipeline はアプリケーションの依存関係一式を束ね、
// HTTP ハンドラーから呼び出される実行フローを提供します。
type ContentPipeline struct {
	appCtx *builder.AppContext
}

func NewContentPipeline(appCtx *builder.AppContext) *ContentPipeline {
	return &ContentPipeline{
		appCtx: appCtx,
	}
}

// ExecuteGenerate はコンテンツ生成パイプラインを1回実行します。
// カルーセル形式の場合はスライド画像の生成と退避まで行います。
func (p *ContentPipeline) ExecuteGenerate(ctx context.Context, req domain.GenerationRequest, style domain.ImageStyle) (*domain.GenerationReport, error) {
	exec := newContentExecution(p, req, style)
	return exec.run(ctx)
}

// ExecuteOptimize は既存本文を指定の目的で書き直して返します。永続化は行いません。
func (p *ContentPipeline) ExecuteOptimize(ctx context.Context, body string, platform domain.Platform, goal domain.OptimizationGoal) (string, error) {
	if body == "" {
		return "", &domain.ValidationError{Field: "content", Message: "content is required"}
	}
	return p.appCtx.Runners.Content.Optimize(ctx, body, platform, goal)
}

// ExecuteReview はレビューパイプラインを1回実行します。
// 対象は指示に直接含まれるコンテンツ、またはストアから日付範囲で選択したコンテンツです。
func (p *ContentPipeline) ExecuteReview(ctx context.Context, directive domain.ReviewDirective) (*domain.ReviewReport, error) {
	exec := newReviewExecution(p, directive)
	return exec.run(ctx)
}

// notifyError は失敗時の Slack 通知を送信します。通知自体の失敗はログに留めます。
func (p *ContentPipeline) notifyError(ctx context.Context, err error, req domain.NotificationRequest) {
	if notifyErr := p.appCtx.SlackNotifier.NotifyError(ctx, err, req); notifyErr != nil {
		slog.ErrorContext(ctx, "Error notification failed", "error", notifyErr)
	}
}

// notify は成功時の Slack 通知を送信します。通知処理自体の失敗は、パイプライン全体の成否には影響させません。
func (p *ContentPipeline) notify(ctx context.Context, detail string, req domain.NotificationRequest) {
	if notifyErr := p.appCtx.SlackNotifier.Notify(ctx, detail, req); notifyErr != nil {
		slog.ErrorContext(ctx, "Notification failed", "error", notifyErr)
	}
}

// storageURI は保存先の表示用 URI を組み立てます。バケット未設定時は N/A を返します。
func (p *ContentPipeline) storageURI(contentID string) string {
	cfg := p.appCtx.Config
	if cfg.GCSBucket == "" {
		return domain.CategoryNotAvailable
	}
	return fmt.Sprintf("gs://%s/%s", cfg.GCSBucket, cfg.GetWorkDir(contentID))
}
