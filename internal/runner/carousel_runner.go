package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ap-content-web/internal/domain"
	"ap-content-web/internal/prompt"
	"ap-content-web/internal/retry"
)

// ImageGenerator は画像生成 API への1回の要求を抽象化します。
// adapters.ImageClient がこのインターフェースを満たします。
type ImageGenerator interface {
	Generate(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageGenerationResponse, error)
}

// ProgressFunc はバッチ完了ごとに進捗（完了数 / 総数）を受け取ります。
type ProgressFunc func(completed, total int)

// CarouselImageRunner はカルーセルの全スライド画像を固定サイズのバッチで生成します。
// バッチ内は並行、バッチ間は逐次で、レートリミット回避のための待機を挟みます。
type CarouselImageRunner struct {
	images     ImageGenerator
	exec       *retry.Executor
	batchSize  int
	batchPause time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewCarouselImageRunner は CarouselImageRunner を初期化します。
func NewCarouselImageRunner(images ImageGenerator, exec *retry.Executor, batchSize int, batchPause time.Duration) *CarouselImageRunner {
	if batchSize < 1 {
		batchSize = 1
	}
	return &CarouselImageRunner{
		images:     images,
		exec:       exec,
		batchSize:  batchSize,
		batchPause: batchPause,
		sleep:      sleepContext,
	}
}

// WithSleep は待機処理を差し替えた複製を返します。テスト専用です。
func (r *CarouselImageRunner) WithSleep(sleep func(ctx context.Context, d time.Duration) error) *CarouselImageRunner {
	clone := *r
	clone.sleep = sleep
	return &clone
}

// Run は各スライドに対応するタスクを生成し、全件の最終状態を入力順で返します。
// 個々のスライドの失敗は failed として記録し、残りのスライドの生成は継続します。
func (r *CarouselImageRunner) Run(ctx context.Context, slides []domain.Slide, style domain.ImageStyle, onProgress ProgressFunc) []domain.SlideImageTask {
	if style == "" {
		style = domain.StyleVibrant
	}

	tasks := make([]domain.SlideImageTask, len(slides))
	for i, slide := range slides {
		tasks[i] = domain.SlideImageTask{
			SlideNumber: i + 1,
			Text:        slide.Text,
			Description: slide.Description,
			ImagePrompt: prompt.BuildCarouselImagePrompt(slide.Text, slide.Description, i+1),
			Status:      domain.SlidePending,
		}
	}

	total := len(tasks)
	completed := 0

	for start := 0; start < total; start += r.batchSize {
		end := min(start+r.batchSize, total)

		slog.InfoContext(ctx, "Generating carousel image batch",
			"from_slide", start+1,
			"to_slide", end,
			"total", total,
		)

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				r.generateSlide(ctx, &tasks[i], style)
			}(i)
		}
		wg.Wait()

		completed = end
		if onProgress != nil {
			onProgress(completed, total)
		}

		// 次のバッチが残っている場合のみ待機します。
		if end < total && r.batchPause > 0 {
			if err := r.sleep(ctx, r.batchPause); err != nil {
				r.markRemainingFailed(tasks[end:], err)
				break
			}
		}
	}

	return tasks
}

// generateSlide は1スライド分の画像生成を実行し、タスクの状態を更新します。
// タスクはスライスの互いに素な要素を指すため、ロックは不要です。
func (r *CarouselImageRunner) generateSlide(ctx context.Context, task *domain.SlideImageTask, style domain.ImageStyle) {
	task.Status = domain.SlideGenerating

	res, err := retry.Do(ctx, r.exec, func(ctx context.Context) (*domain.ImageGenerationResponse, error) {
		return r.images.Generate(ctx, domain.ImageGenerationRequest{
			Prompt:      task.ImagePrompt,
			Style:       style,
			AspectRatio: domain.AspectSquare,
			Quality:     domain.QualityStandard,
		})
	})
	if err != nil {
		slog.WarnContext(ctx, "Slide image generation failed",
			"slide", task.SlideNumber,
			"error", err,
		)
		task.Status = domain.SlideFailed
		return
	}

	task.Status = domain.SlideCompleted
	task.ImageURL = res.URL
}

// markRemainingFailed はコンテキスト中断時に未着手タスクを failed に落とします。
func (r *CarouselImageRunner) markRemainingFailed(tasks []domain.SlideImageTask, err error) {
	for i := range tasks {
		if tasks[i].Status == domain.SlidePending {
			tasks[i].Status = domain.SlideFailed
		}
	}
	slog.Warn("Carousel image generation interrupted", "error", err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
