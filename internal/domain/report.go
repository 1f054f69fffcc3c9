package domain

import "time"

// GenerationReport はコンテンツ生成パイプライン1回分の実行結果です。
type GenerationReport struct {
	Content Content `json:"content"`
	// ImageTasks はカルーセル形式のときのみ設定され、スライド番号順に並びます。
	ImageTasks []SlideImageTask `json:"image_tasks,omitempty"`
}

// ReviewDirective はレビューパイプラインへの指示です。
// Contents を直接指定するか、日付範囲でストアから対象を選択するかのいずれかです。
type ReviewDirective struct {
	Mode            ReviewMode `json:"mode"`
	Contents        []Content  `json:"contents,omitempty"`
	StartDate       time.Time  `json:"start_date,omitzero"`
	EndDate         time.Time  `json:"end_date,omitzero"`
	BrandGuidelines string     `json:"brand_guidelines,omitempty"`
	TargetAudience  string     `json:"target_audience,omitempty"`
	// ApplyAdjustments が真のとき、調整案を各コンテンツへ反映して保存します。
	ApplyAdjustments bool `json:"apply_adjustments,omitempty"`
}

// ReviewReport はレビューパイプライン1回分の実行結果です。
type ReviewReport struct {
	// ReviewID はストアに保存された場合のみ設定されます。
	ReviewID         string         `json:"review_id,omitempty"`
	Response         ReviewResponse `json:"response"`
	AdjustedContents []Content      `json:"adjusted_contents,omitempty"`
	// Markdown はダッシュボード表示用に整形済みのレポート本文です。
	Markdown string `json:"markdown"`
}
