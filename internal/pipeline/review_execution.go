package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ap-content-web/internal/domain"
	"ap-content-web/internal/runner"
)

// reviewExecution は一回のレビュー実行に関する状態を保持します。
type reviewExecution struct {
	pipeline  *ContentPipeline
	directive domain.ReviewDirective
	startTime time.Time
	contents  []domain.Content
}

func newReviewExecution(p *ContentPipeline, directive domain.ReviewDirective) *reviewExecution {
	if directive.Mode == "" {
		directive.Mode = domain.ReviewCoherence
	}
	return &reviewExecution{
		pipeline:  p,
		directive: directive,
		startTime: time.Now(),
	}
}

// run はレビュー対象の解決、レビュー実行、調整反映、保存、通知を順に行います。
func (e *reviewExecution) run(ctx context.Context) (report *domain.ReviewReport, err error) {
	defer func() {
		if err != nil {
			e.pipeline.notifyError(ctx, err, e.buildNotification())
		}
	}()

	if err = e.resolveContents(ctx); err != nil {
		return nil, err
	}

	slog.Info("Review execution started",
		"mode", e.directive.Mode,
		"contents", len(e.contents),
	)

	res, err := e.pipeline.appCtx.Runners.Review.Run(ctx, domain.ReviewRequest{
		Contents:        e.contents,
		Mode:            e.directive.Mode,
		BrandGuidelines: e.directive.BrandGuidelines,
		TargetAudience:  e.directive.TargetAudience,
	})
	if err != nil {
		return nil, fmt.Errorf("review step failed: %w", err)
	}

	report = &domain.ReviewReport{
		Response: *res,
		Markdown: renderReviewReport(res),
	}

	// --- Adjustment Phase ---
	if e.directive.ApplyAdjustments {
		report.AdjustedContents = e.applyAdjustments(ctx, res.Results)
	}

	// --- Persist Phase ---
	if e.pipeline.appCtx.Store != nil {
		reviewID, err := e.pipeline.appCtx.Store.CreateReview(ctx, e.directive.Mode, *res)
		if err != nil {
			return nil, fmt.Errorf("レビュー結果の保存に失敗しました: %w", err)
		}
		report.ReviewID = reviewID
	}

	e.pipeline.notify(ctx, e.buildSuccessDetail(res, report.AdjustedContents), e.buildNotification())

	slog.Info("Review execution finished",
		"overall_coherence", res.OverallCoherence,
		"adjusted", len(report.AdjustedContents),
		"elapsed", time.Since(e.startTime).Round(time.Millisecond),
	)
	return report, nil
}

// resolveContents はレビュー対象のコンテンツ一覧を確定します。
// 指示に直接含まれていればそれを使用し、なければストアから日付範囲で選択します。
func (e *reviewExecution) resolveContents(ctx context.Context) error {
	if len(e.directive.Contents) > 0 {
		e.contents = e.directive.Contents
		return nil
	}

	if e.pipeline.appCtx.Store == nil {
		return &domain.ValidationError{Field: "contents", Message: "contents are required when the store is not configured"}
	}
	if err := domain.ValidateDateRange(e.directive.StartDate, e.directive.EndDate); err != nil {
		return err
	}

	// 範囲検証は日付単位で行い、検索時のみ終了日をその日の終端まで広げます。
	queryEnd := e.directive.EndDate.Add(24*time.Hour - time.Nanosecond)
	contents, err := e.pipeline.appCtx.Store.ListContentsByDateRange(ctx, e.directive.StartDate, queryEnd)
	if err != nil {
		return fmt.Errorf("レビュー対象の検索に失敗しました: %w", err)
	}
	if len(contents) == 0 {
		return &domain.ValidationError{Field: "date_range", Message: "no contents found in the given date range"}
	}

	e.contents = contents
	return nil
}

// applyAdjustments は調整案を反映し、変更のあったコンテンツをストアへ保存して返します。
func (e *reviewExecution) applyAdjustments(ctx context.Context, results []domain.ReviewResult) []domain.Content {
	adjusted := runner.ApplyAdjustments(e.contents, results)

	var changed []domain.Content
	for _, content := range adjusted {
		if !content.Metadata.AdjustmentsApplied {
			continue
		}
		changed = append(changed, content)

		if e.pipeline.appCtx.Store == nil {
			continue
		}
		if err := e.pipeline.appCtx.Store.UpdateContentBody(ctx, content); err != nil {
			slog.WarnContext(ctx, "Adjusted content saving failed",
				"content_id", content.ID,
				"error", err,
			)
		}
	}
	return changed
}

func (e *reviewExecution) buildNotification() domain.NotificationRequest {
	return domain.NotificationRequest{
		ContentTitle:   fmt.Sprintf("%d 件のコンテンツ", len(e.contents)),
		OutputCategory: "review-report",
		Platform:       domain.CategoryNotAvailable,
		ExecutionMode:  "review / " + string(e.directive.Mode),
	}
}

func (e *reviewExecution) buildSuccessDetail(res *domain.ReviewResponse, adjusted []domain.Content) string {
	detail := fmt.Sprintf("📊 *総合一貫性スコア:* %d\n📝 *サマリー:* %s", res.OverallCoherence, res.Summary)
	if len(adjusted) > 0 {
		detail += fmt.Sprintf("\n🔧 *自動調整:* %d 件 適用", len(adjusted))
	}
	return detail
}
