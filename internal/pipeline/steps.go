package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"ap-content-web/internal/domain"
)

// runContentStep はコンテンツ生成フェーズを実行します。
func (p *ContentPipeline) runContentStep(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	slog.Info("Step: Content generation", "platform", req.Platform, "format", req.Format)

	return p.appCtx.Runners.Content.Run(ctx, req)
}

// runCarouselImageStep はスライド画像をバッチ生成し、完了分をストレージへ退避します。
// 個々のスライドの失敗はタスクの状態に記録されるのみで、フェーズ全体は失敗しません。
func (p *ContentPipeline) runCarouselImageStep(ctx context.Context, contentID string, sections []domain.Section, style domain.ImageStyle) []domain.SlideImageTask {
	slides := make([]domain.Slide, len(sections))
	for i, section := range sections {
		slides[i] = domain.Slide{Text: section.Text, Description: section.Description}
	}

	slog.Info("Step: Carousel image generation", "slides", len(slides))

	tasks := p.appCtx.Runners.CarouselImage.Run(ctx, slides, style, func(completed, total int) {
		slog.Info("Carousel image progress", "completed", completed, "total", total)
	})

	// 生成 API の画像 URL は失効するため、完了分はこの場で退避します。
	for i := range tasks {
		if tasks[i].Status != domain.SlideCompleted {
			continue
		}

		destination := p.appCtx.Config.GetGCSObjectURL(p.appCtx.Config.GetSlideImagePath(contentID, tasks[i].SlideNumber))
		archived, err := p.appCtx.Archiver.Archive(ctx, tasks[i].ImageURL, destination)
		if err != nil {
			slog.WarnContext(ctx, "Image archiving failed, keeping the original URL",
				"slide", tasks[i].SlideNumber,
				"error", err,
			)
			continue
		}
		tasks[i].ImageURL = archived
	}

	return tasks
}

// runPersistStep はコンテンツとスライド画像タスクをストアへ保存します。
// ストア未設定の場合は何もしません（ローカル実行を想定）。
func (p *ContentPipeline) runPersistStep(ctx context.Context, content domain.Content, tasks []domain.SlideImageTask) error {
	if p.appCtx.Store == nil {
		slog.Info("Content store is not configured, skipping persistence", "content_id", content.ID)
		return nil
	}

	slog.Info("Step: Persisting content", "content_id", content.ID)

	if _, err := p.appCtx.Store.CreateContent(ctx, content); err != nil {
		return fmt.Errorf("コンテンツの保存に失敗しました: %w", err)
	}

	for _, task := range tasks {
		if err := p.appCtx.Store.CreateCarouselImage(ctx, content.ID, task); err != nil {
			// 画像レコード1件の失敗でコンテンツ本体の保存を巻き戻さないようにします。
			slog.WarnContext(ctx, "Carousel image record saving failed",
				"content_id", content.ID,
				"slide", task.SlideNumber,
				"error", err,
			)
		}
	}
	return nil
}
