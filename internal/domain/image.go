package domain

// ImageStyle は画像生成のスタイル指定です。
type ImageStyle string

const (
	StyleRealistic    ImageStyle = "realistic"
	StyleIllustration ImageStyle = "illustration"
	StyleMinimalist   ImageStyle = "minimalist"
	StyleVibrant      ImageStyle = "vibrant"
)

// AspectRatio は生成画像の縦横比です。
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectLandscape AspectRatio = "16:9"
	AspectPortrait  AspectRatio = "9:16"
)

// ImageQuality は生成画像の品質指定です。
type ImageQuality string

const (
	QualityStandard ImageQuality = "standard"
	QualityHD       ImageQuality = "hd"
)

// ImageGenerationRequest は単一の画像生成要求です。
type ImageGenerationRequest struct {
	Prompt      string       `json:"prompt"`
	Style       ImageStyle   `json:"style,omitempty"`
	AspectRatio AspectRatio  `json:"aspect_ratio,omitempty"`
	Quality     ImageQuality `json:"quality,omitempty"`
}

// ImageGenerationResponse は生成された画像1枚分のメタデータです。
type ImageGenerationResponse struct {
	ID     string     `json:"id"`
	URL    string     `json:"url"`
	Prompt string     `json:"prompt"`
	Style  ImageStyle `json:"style"`
}

// Slide はカルーセルのスライド1枚分の入力（本文と視覚的な説明）です。
type Slide struct {
	Text        string `json:"text"`
	Description string `json:"description"`
}

// SlideImageStatus はスライド画像タスクの状態遷移を表します。
// pending → generating → completed | failed の順にのみ遷移します。
type SlideImageStatus string

const (
	SlidePending    SlideImageStatus = "pending"
	SlideGenerating SlideImageStatus = "generating"
	SlideCompleted  SlideImageStatus = "completed"
	SlideFailed     SlideImageStatus = "failed"
)

// SlideImageTask はスライド1枚分の画像生成タスクです。
// バッチ全体の成否とは独立に、タスクごとに状態を持ちます。
type SlideImageTask struct {
	// SlideNumber は 1 始まりの安定したスライド番号です。返却順はこの番号順です。
	SlideNumber int              `json:"slide_number"`
	Text        string           `json:"text"`
	Description string           `json:"description"`
	ImagePrompt string           `json:"image_prompt"`
	Status      SlideImageStatus `json:"status"`
	// ImageURL は completed のときのみ設定されます。
	ImageURL string `json:"image_url,omitempty"`
}
