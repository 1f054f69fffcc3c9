package domain

const CategoryNotAvailable = "N/A"

// NotificationRequest は Slack 等の通知コンポーネントで共有されるデータ構造です。
// 生成・レビュー結果のメタデータを通知先に伝えるために使用します。
type NotificationRequest struct {
	// ContentTitle は、生成またはレビューされたコンテンツのタイトルです。
	ContentTitle string `json:"content_title"`

	// OutputCategory は、出力の種別です。(例: "content-draft", "carousel-images", "review-report")
	OutputCategory string `json:"output_category"`

	// Platform は配信先プラットフォームです。(例: "instagram")
	Platform string `json:"platform"`

	// ExecutionMode は、実行された操作です。(例: "generate / carousel", "review / comparison")
	ExecutionMode string `json:"execution_mode"`
}
