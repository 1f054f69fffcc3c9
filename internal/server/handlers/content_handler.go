package handlers

import (
	"net/http"

	"ap-content-web/internal/domain"
)

type generateRequest struct {
	Prompt         string `json:"prompt"`
	Platform       string `json:"platform"`
	Format         string `json:"format"`
	Tone           string `json:"tone,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
	CarouselSlides int    `json:"carousel_slides,omitempty"`
	VideoDuration  int    `json:"video_duration,omitempty"`
	ImageStyle     string `json:"image_style,omitempty"`
}

// HandleGenerate はコンテンツ生成リクエストを処理します。
// 生成はリクエストのスコープ内で同期的に実行し、完了後のレポートを返します。
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, &domain.ValidationError{Field: "body", Message: "リクエストボディの解析に失敗しました"})
		return
	}

	report, err := h.executor.ExecuteGenerate(r.Context(), domain.GenerationRequest{
		Prompt:         req.Prompt,
		Platform:       domain.Platform(req.Platform),
		Format:         domain.ContentFormat(req.Format),
		Tone:           req.Tone,
		TargetAudience: req.TargetAudience,
		CarouselSlides: req.CarouselSlides,
		VideoDuration:  req.VideoDuration,
	}, domain.ImageStyle(req.ImageStyle))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

type optimizeRequest struct {
	Content  string `json:"content"`
	Platform string `json:"platform"`
	Goal     string `json:"goal,omitempty"`
}

type optimizeResponse struct {
	Content string `json:"content"`
}

// HandleOptimize は既存本文の最適化リクエストを処理します。
func (h *Handler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, &domain.ValidationError{Field: "body", Message: "リクエストボディの解析に失敗しました"})
		return
	}

	optimized, err := h.executor.ExecuteOptimize(r.Context(), req.Content, domain.Platform(req.Platform), domain.OptimizationGoal(req.Goal))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, optimizeResponse{Content: optimized})
}
