package pipeline

import (
	"testing"

	"ap-content-web/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRenderReviewReport(t *testing.T) {
	res := &domain.ReviewResponse{
		OverallCoherence: 72,
		Results: []domain.ReviewResult{
			{
				ContentID:      "c1",
				CoherenceScore: 65,
				Issues:         []string{"トーンが他と異なる"},
				Suggestions:    []string{"敬体に統一する"},
				Status:         domain.ReviewStatusNeedsAdjustment,
			},
		},
		Summary:         "一部に表記ゆれがあります",
		Recommendations: []string{"用語集を整備する"},
		NeedsAdjustment: true,
	}

	report := renderReviewReport(res)

	assert.Contains(t, report, "総合一貫性スコア: 72%")
	assert.Contains(t, report, "要調整")
	assert.Contains(t, report, "一部に表記ゆれがあります")
	assert.Contains(t, report, "スコア: 65%")
	assert.Contains(t, report, "- トーンが他と異なる")
	assert.Contains(t, report, "- 敬体に統一する")
	assert.Contains(t, report, "1. 用語集を整備する")
}

func TestRenderReviewReport_ApprovedAboveThreshold(t *testing.T) {
	report := renderReviewReport(&domain.ReviewResponse{
		OverallCoherence: 90,
		Summary:          "良好です",
	})

	assert.Contains(t, report, "承認")
	assert.NotContains(t, report, "要調整")
	// 個別結果・比較結果が無い場合、各セクションは省略されます。
	assert.NotContains(t, report, "個別分析")
	assert.NotContains(t, report, "比較分析")
}

func TestRenderReviewReport_ComparisonSection(t *testing.T) {
	report := renderReviewReport(&domain.ReviewResponse{
		OverallCoherence: 80,
		Summary:          "s",
		ComparisonResults: []domain.ComparisonResult{
			{
				ContentID1:          "a",
				ContentID2:          "b",
				CoherenceSimilarity: 85,
				Differences:         []string{"CTA の強さ"},
				Similarities:        []string{"ハッシュタグ構成"},
			},
		},
	})

	assert.Contains(t, report, "比較分析")
	assert.Contains(t, report, "a ↔ b (類似度: 85%)")
	assert.Contains(t, report, "- 相違: CTA の強さ")
	assert.Contains(t, report, "- 共通: ハッシュタグ構成")
}
