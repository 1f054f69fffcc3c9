package handlers

import (
	"net/http"
	"time"

	"ap-content-web/internal/domain"
)

type reviewRequest struct {
	Mode             string           `json:"mode,omitempty"`
	Contents         []domain.Content `json:"contents,omitempty"`
	StartDate        string           `json:"start_date,omitempty"`
	EndDate          string           `json:"end_date,omitempty"`
	BrandGuidelines  string           `json:"brand_guidelines,omitempty"`
	TargetAudience   string           `json:"target_audience,omitempty"`
	ApplyAdjustments bool             `json:"apply_adjustments,omitempty"`
}

// HandleReview は一貫性レビュー・比較分析のリクエストを処理します。
// 対象はボディに直接含めるか、日付範囲（最大30日）で指定します。
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, &domain.ValidationError{Field: "body", Message: "リクエストボディの解析に失敗しました"})
		return
	}

	directive := domain.ReviewDirective{
		Mode:             domain.ReviewMode(req.Mode),
		Contents:         req.Contents,
		BrandGuidelines:  req.BrandGuidelines,
		TargetAudience:   req.TargetAudience,
		ApplyAdjustments: req.ApplyAdjustments,
	}

	if req.StartDate != "" || req.EndDate != "" {
		start, err := parseDate(req.StartDate, "start_date")
		if err != nil {
			respondError(w, r, err)
			return
		}
		end, err := parseDate(req.EndDate, "end_date")
		if err != nil {
			respondError(w, r, err)
			return
		}
		directive.StartDate = start
		directive.EndDate = end
	}

	report, err := h.executor.ExecuteReview(r.Context(), directive)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: field, Message: "日付は YYYY-MM-DD 形式で指定してください"}
	}
	return t, nil
}
