// Package handlers はダッシュボード SPA 向けの JSON API ハンドラーを提供します。
package handlers

import (
	"context"

	"ap-content-web/internal/config"
	"ap-content-web/internal/domain"
)

// PipelineExecutor は、HTTP リクエストから組み立てた指示を受け取り、
// 対応するビジネスロジックを実行する責務を抽象化します。
type PipelineExecutor interface {
	ExecuteGenerate(ctx context.Context, req domain.GenerationRequest, style domain.ImageStyle) (*domain.GenerationReport, error)
	ExecuteOptimize(ctx context.Context, body string, platform domain.Platform, goal domain.OptimizationGoal) (string, error)
	ExecuteReview(ctx context.Context, directive domain.ReviewDirective) (*domain.ReviewReport, error)
}

type Handler struct {
	cfg      config.Config
	executor PipelineExecutor
}

// NewHandler は指定された構成に基づいて新しいハンドラーを初期化します。
func NewHandler(cfg config.Config, executor PipelineExecutor) *Handler {
	return &Handler{
		cfg:      cfg,
		executor: executor,
	}
}
