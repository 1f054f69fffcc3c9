package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"ap-content-web/internal/domain"

	"github.com/google/uuid"
)

// contentExecution は一回の生成リクエスト実行に関する状態（開始時刻や確定したタイトルなど）を保持します。
type contentExecution struct {
	pipeline      *ContentPipeline
	req           domain.GenerationRequest
	style         domain.ImageStyle
	startTime     time.Time
	contentID     string
	resolvedTitle string
}

func newContentExecution(p *ContentPipeline, req domain.GenerationRequest, style domain.ImageStyle) *contentExecution {
	return &contentExecution{
		pipeline:  p,
		req:       req,
		style:     style,
		startTime: time.Now(),
		// ストア未設定でも画像の保存先パスが安定するよう、ID はここで採番します。
		contentID: uuid.NewString(),
	}
}

// run は各生成フェーズを順番に実行し、結果を通知します。
func (e *contentExecution) run(ctx context.Context) (report *domain.GenerationReport, err error) {
	// 失敗時の通知を defer 文で一括管理します。
	defer func() {
		if err != nil {
			e.pipeline.notifyError(ctx, err, e.buildNotification())
		}
	}()

	slog.Info("Pipeline execution started",
		"content_id", e.contentID,
		"platform", e.req.Platform,
		"format", e.req.Format,
	)

	// --- Phase 1: Content Phase ---
	result, err := e.pipeline.runContentStep(ctx, e.req)
	if err != nil {
		return nil, fmt.Errorf("content step failed: %w", err)
	}
	e.resolvedTitle = result.Title

	content := e.buildContentRecord(result)

	// --- Phase 2: Carousel Image Phase ---
	var tasks []domain.SlideImageTask
	if e.req.Format == domain.FormatCarousel {
		tasks = e.pipeline.runCarouselImageStep(ctx, e.contentID, result.Content.Sections, e.style)
	}

	// --- Phase 3: Persist Phase ---
	if err = e.pipeline.runPersistStep(ctx, content, tasks); err != nil {
		return nil, fmt.Errorf("persist step failed: %w", err)
	}

	e.pipeline.notify(ctx, e.buildSuccessDetail(tasks), e.buildNotification())

	slog.Info("Pipeline execution finished",
		"content_id", e.contentID,
		"title", e.resolvedTitle,
		"elapsed", time.Since(e.startTime).Round(time.Millisecond),
	)
	return &domain.GenerationReport{Content: content, ImageTasks: tasks}, nil
}

// buildContentRecord は生成結果を永続化用のコンテンツレコードへ変換します。
func (e *contentExecution) buildContentRecord(result *domain.GenerationResult) domain.Content {
	return domain.Content{
		ID:       e.contentID,
		Title:    result.Title,
		Body:     renderBody(result.Content),
		Platform: e.req.Platform,
		Format:   e.req.Format,
		Status:   domain.StatusGenerated,
		Prompt:   e.req.Prompt,
		Metadata: domain.ContentMetadata{
			Hashtags:            result.Hashtags,
			CallToAction:        result.CallToAction,
			EstimatedReach:      result.EstimatedReach,
			EstimatedEngagement: result.EstimatedEngagement,
			QualityScore:        result.QualityScore,
		},
		CreatedAt: e.startTime,
	}
}

// buildNotification は実行メタデータから通知リクエストを組み立てます。
func (e *contentExecution) buildNotification() domain.NotificationRequest {
	title := e.resolvedTitle
	if title == "" {
		title = "(untitled)"
	}

	category := "content-draft"
	if e.req.Format == domain.FormatCarousel {
		category = "carousel-images"
	}

	return domain.NotificationRequest{
		ContentTitle:   title,
		OutputCategory: category,
		Platform:       string(e.req.Platform),
		ExecutionMode:  "generate / " + string(e.req.Format),
	}
}

func (e *contentExecution) buildSuccessDetail(tasks []domain.SlideImageTask) string {
	detail := fmt.Sprintf("📦 *保存先:* %s", e.pipeline.storageURI(e.contentID))
	if len(tasks) == 0 {
		return detail
	}

	completed := 0
	for _, task := range tasks {
		if task.Status == domain.SlideCompleted {
			completed++
		}
	}
	return fmt.Sprintf("🖼️ *スライド画像:* %d / %d 枚 完了\n%s", completed, len(tasks), detail)
}

// renderBody は生成 API が返した本文を保存用の文字列へ変換します。
// セクション列はそのまま JSON として保持します。
func renderBody(body domain.ContentBody) string {
	if body.Sections == nil {
		return body.Text
	}
	data, err := json.Marshal(body.Sections)
	if err != nil {
		return body.Text
	}
	return string(data)
}
