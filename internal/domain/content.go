package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Platform は配信先プラットフォームを表します。
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformEmail     Platform = "email"
)

// ContentFormat はコンテンツの形式を表します。
type ContentFormat string

const (
	FormatVideoScript     ContentFormat = "video_script"
	FormatCarousel        ContentFormat = "carousel"
	FormatEmailNewsletter ContentFormat = "email_newsletter"
)

// ContentStatus はコンテンツレコードのライフサイクル状態です。
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusGenerated ContentStatus = "generated"
	StatusApproved  ContentStatus = "approved"
	StatusScheduled ContentStatus = "scheduled"
	StatusPublished ContentStatus = "published"
	StatusRejected  ContentStatus = "rejected"
)

// GenerationRequest は1回のコンテンツ生成指示を表します。発行後は不変です。
type GenerationRequest struct {
	Prompt         string        `json:"prompt"`
	Platform       Platform      `json:"platform"`
	Format         ContentFormat `json:"format"`
	Tone           string        `json:"tone,omitempty"`
	TargetAudience string        `json:"target_audience,omitempty"`
	// CarouselSlides はカルーセル形式のときのみ有効なスライド枚数です。
	CarouselSlides int `json:"carousel_slides,omitempty"`
	// VideoDuration は動画形式のときのみ有効な尺（秒）です。
	VideoDuration int `json:"video_duration,omitempty"`
}

// Validate は生成 API を呼び出す前のローカル検証を行います。
func (r GenerationRequest) Validate() error {
	if r.Prompt == "" {
		return &ValidationError{Field: "prompt", Message: "prompt is required"}
	}
	switch r.Platform {
	case PlatformInstagram, PlatformEmail:
	default:
		return &ValidationError{Field: "platform", Message: fmt.Sprintf("unsupported platform: %s", r.Platform)}
	}
	switch r.Format {
	case FormatVideoScript, FormatCarousel, FormatEmailNewsletter:
	default:
		return &ValidationError{Field: "format", Message: fmt.Sprintf("unsupported format: %s", r.Format)}
	}
	if r.Platform == PlatformEmail && r.Format != FormatEmailNewsletter {
		return &ValidationError{Field: "format", Message: "email platform only supports email_newsletter"}
	}
	if r.Platform == PlatformInstagram && r.Format == FormatEmailNewsletter {
		return &ValidationError{Field: "format", Message: "email_newsletter is not available on instagram"}
	}
	return nil
}

// Section は動画台本のシーン、またはカルーセルのスライド1枚分です。
// 形式ごとに使用されるフィールドが異なります（動画: Time/Scene/Dialogue、カルーセル: Text/Description）。
type Section struct {
	Time        string `json:"time,omitempty"`
	Scene       string `json:"scene,omitempty"`
	Dialogue    string `json:"dialogue,omitempty"`
	Text        string `json:"text,omitempty"`
	Description string `json:"description,omitempty"`
}

// ContentBody は生成 API が返す content フィールドです。
// メール形式ではフラットな文字列、動画・カルーセル形式ではセクション列として返ってくるため、
// 両方の JSON 表現を受け付けます。
type ContentBody struct {
	Text     string
	Sections []Section
}

// IsEmpty は本文が空かどうかを判定します。
func (b ContentBody) IsEmpty() bool {
	return b.Text == "" && len(b.Sections) == 0
}

// UnmarshalJSON は文字列・配列どちらの表現もデコードします。
func (b *ContentBody) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		b.Text = text
		b.Sections = nil
		return nil
	}

	var sections []Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("content is neither a string nor a section list: %w", err)
	}
	b.Text = ""
	b.Sections = sections
	return nil
}

// MarshalJSON は元の表現（文字列またはセクション列）をそのまま復元します。
func (b ContentBody) MarshalJSON() ([]byte, error) {
	if b.Sections != nil {
		return json.Marshal(b.Sections)
	}
	return json.Marshal(b.Text)
}

// GenerationResult は生成 API の応答1件分です。生成後は変更せず、編集はコピーに対して行います。
type GenerationResult struct {
	Title               string      `json:"title"`
	Content             ContentBody `json:"content"`
	Hashtags            []string    `json:"hashtags"`
	CallToAction        string      `json:"callToAction,omitempty"`
	EstimatedReach      string      `json:"estimatedReach"`
	EstimatedEngagement string      `json:"estimatedEngagement"`
	QualityScore        int         `json:"qualityScore"`
}

// ContentMetadata はコンテンツレコードに付随する生成メタデータです。
type ContentMetadata struct {
	Hashtags            []string `json:"hashtags,omitempty"`
	CallToAction        string   `json:"callToAction,omitempty"`
	EstimatedReach      string   `json:"estimatedReach,omitempty"`
	EstimatedEngagement string   `json:"estimatedEngagement,omitempty"`
	QualityScore        int      `json:"qualityScore,omitempty"`
	CoherenceScore      int      `json:"coherenceScore,omitempty"`
	// AdjustmentsApplied はレビューによる自動調整が適用されたことを示します。
	AdjustmentsApplied bool `json:"adjustmentsApplied,omitempty"`
	// OriginalContent は調整適用前の本文です。監査用に保持します。
	OriginalContent string `json:"originalContent,omitempty"`
}

// Content は永続化されるコンテンツレコードです。所有者は呼び出し側（UI レイヤー）です。
type Content struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Body         string          `json:"content"`
	Platform     Platform        `json:"platform"`
	Format       ContentFormat   `json:"format"`
	Status       ContentStatus   `json:"status"`
	Prompt       string          `json:"prompt,omitempty"`
	Metadata     ContentMetadata `json:"metadata"`
	CreatedAt    time.Time       `json:"created_at"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	ScheduledFor *time.Time      `json:"scheduled_for,omitempty"`
}

// OptimizationGoal は既存コンテンツの最適化方針です。
type OptimizationGoal string

const (
	OptimizeEngagement OptimizationGoal = "engagement"
	OptimizeReach      OptimizationGoal = "reach"
	OptimizeConversion OptimizationGoal = "conversion"
)
