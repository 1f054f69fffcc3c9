package pipeline

import (
	"fmt"
	"strings"

	"ap-content-web/internal/domain"
)

// approvalThreshold 以上の総合スコアはレポート上で「承認」として扱います。
const approvalThreshold = 85

// renderReviewReport は ReviewResponse からダッシュボード表示用の
// Markdown レポートを組み立てます。純粋な整形処理で、I/O は行いません。
func renderReviewReport(res *domain.ReviewResponse) string {
	var sb strings.Builder

	sb.WriteString("# 📊 コンテンツレビューレポート\n\n")
	fmt.Fprintf(&sb, "## 🎯 総合一貫性スコア: %d%%\n\n", res.OverallCoherence)

	if res.OverallCoherence >= approvalThreshold {
		sb.WriteString("✅ **ステータス: 承認**\n")
		sb.WriteString("コンテンツ全体の一貫性は良好です。以下は最適化のための補足です。\n\n")
	} else {
		sb.WriteString("⚠️ **ステータス: 要調整**\n")
		sb.WriteString("一貫性を高めるために改善できる点が見つかりました。\n\n")
	}

	fmt.Fprintf(&sb, "## 📝 分析サマリー\n%s\n\n", res.Summary)

	if len(res.Results) > 0 {
		sb.WriteString("## 📋 個別分析\n")
		for i, result := range res.Results {
			fmt.Fprintf(&sb, "### コンテンツ %d (スコア: %d%%)\n", i+1, result.CoherenceScore)

			if len(result.Issues) > 0 {
				sb.WriteString("**検出された問題:**\n")
				for _, issue := range result.Issues {
					fmt.Fprintf(&sb, "- %s\n", issue)
				}
			}
			if len(result.Suggestions) > 0 {
				sb.WriteString("**改善提案:**\n")
				for _, suggestion := range result.Suggestions {
					fmt.Fprintf(&sb, "- %s\n", suggestion)
				}
			}
			sb.WriteString("\n")
		}
	}

	if len(res.ComparisonResults) > 0 {
		sb.WriteString("## 🔍 比較分析\n")
		for _, pair := range res.ComparisonResults {
			fmt.Fprintf(&sb, "### %s ↔ %s (類似度: %d%%)\n", pair.ContentID1, pair.ContentID2, pair.CoherenceSimilarity)
			for _, diff := range pair.Differences {
				fmt.Fprintf(&sb, "- 相違: %s\n", diff)
			}
			for _, sim := range pair.Similarities {
				fmt.Fprintf(&sb, "- 共通: %s\n", sim)
			}
			sb.WriteString("\n")
		}
	}

	if len(res.Recommendations) > 0 {
		sb.WriteString("## 💡 全体への推奨事項\n")
		for i, rec := range res.Recommendations {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, rec)
		}
	}

	return sb.String()
}
