package domain

import (
	"time"
)

// ReviewMode はレビューの種類です。
type ReviewMode string

const (
	// ReviewCoherence は一連のコンテンツの一貫性を個別に採点するモードです。
	ReviewCoherence ReviewMode = "coherence"
	// ReviewComparison は2件以上のコンテンツをペアごとに比較するモードです。
	ReviewComparison ReviewMode = "comparison"
)

// MaxReviewRangeDays はレビュー対象を選択する日付範囲の上限です。ちょうど30日は有効です。
const MaxReviewRangeDays = 30

// ReviewRequest はレビュー指示1件分です。
type ReviewRequest struct {
	Contents        []Content  `json:"contents"`
	Mode            ReviewMode `json:"mode"`
	BrandGuidelines string     `json:"brand_guidelines,omitempty"`
	TargetAudience  string     `json:"target_audience,omitempty"`
}

// Validate はレビュー API を呼び出す前のローカル検証を行います。
func (r ReviewRequest) Validate() error {
	if len(r.Contents) == 0 {
		return &ValidationError{Field: "contents", Message: "at least one content item is required"}
	}
	if r.Mode == ReviewComparison && len(r.Contents) < 2 {
		return &ValidationError{Field: "contents", Message: "comparison mode requires at least two content items"}
	}
	return nil
}

// ValidateDateRange はレビュー対象選択に使う日付範囲を検証します。
// 開始が終了より後、または範囲が30日を超える場合は無効です。
func ValidateDateRange(start, end time.Time) error {
	if start.After(end) {
		return &ValidationError{Field: "date_range", Message: "start date must not be after end date"}
	}
	if end.Sub(start) > MaxReviewRangeDays*24*time.Hour {
		return &ValidationError{Field: "date_range", Message: "date range must not exceed 30 days"}
	}
	return nil
}

// ReviewResult はコンテンツ1件分のレビュー結果です。
type ReviewResult struct {
	ID             string   `json:"id"`
	ContentID      string   `json:"contentId"`
	CoherenceScore int      `json:"coherenceScore"`
	Issues         []string `json:"issues"`
	Suggestions    []string `json:"suggestions"`
	// Status は approved | needs_adjustment | critical_issues のいずれかです。
	Status string `json:"status"`
	// AdjustedContent は API が提案した修正後の本文です。空のときは提案なしとして扱います。
	AdjustedContent string `json:"adjustedContent,omitempty"`
}

const (
	ReviewStatusApproved        = "approved"
	ReviewStatusNeedsAdjustment = "needs_adjustment"
	ReviewStatusCriticalIssues  = "critical_issues"
)

// ComparisonResult は比較モードにおけるコンテンツペア1組分の結果です。
type ComparisonResult struct {
	ContentID1          string   `json:"contentId1"`
	ContentID2          string   `json:"contentId2"`
	CoherenceSimilarity int      `json:"coherenceSimilarity"`
	Differences         []string `json:"differences"`
	Similarities        []string `json:"similarities"`
	Recommendations     []string `json:"recommendations"`
}

// ReviewResponse はレビュー API の応答全体です。
type ReviewResponse struct {
	OverallCoherence int            `json:"overallCoherence"`
	Results          []ReviewResult `json:"results"`
	Summary          string         `json:"summary"`
	Recommendations  []string       `json:"recommendations"`
	// NeedsAdjustment は API が報告するフラグであり、ローカルでは計算しません。
	NeedsAdjustment   bool               `json:"needsAdjustment"`
	ComparisonResults []ComparisonResult `json:"comparisonResults,omitempty"`
}
