package config

import (
	"time"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultModel         = "gpt-4o-mini"
	DefaultImageModel    = "dall-e-3"

	// DefaultHTTPTimeout 生成 API の応答時間を考慮したタイムアウト
	DefaultHTTPTimeout = 30 * time.Second

	DefaultMaxTokens         = 2000
	DefaultCarouselMaxTokens = 3000
	DefaultReviewMaxTokens   = 3000
	DefaultTemperature       = 0.7
	// DefaultReviewTemperature レビューは判定の再現性を優先して低めに設定します
	DefaultReviewTemperature = 0.3

	DefaultMaxRetries     = 3
	DefaultBaseRetryDelay = 1 * time.Second

	DefaultImageBatchSize  = 3
	DefaultImageBatchPause = 1 * time.Second
)

// Config は環境変数から読み込まれたアプリケーションの全設定を保持します。
type Config struct {
	ServiceURL string
	Port       string

	// OpenAI API Settings
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Model         string // コンテンツ生成・レビュー用モデル
	ImageModel    string // カルーセル画像生成用モデル
	HTTPTimeout   time.Duration

	// Generation Settings
	MaxTokens         int
	CarouselMaxTokens int // スライドごとの視覚説明を含むため広めに確保
	ReviewMaxTokens   int
	Temperature       float64
	ReviewTemperature float64

	// Retry & Batch Settings
	MaxRetries      int
	BaseRetryDelay  time.Duration
	ImageBatchSize  int
	ImageBatchPause time.Duration

	// Storage Settings
	DatabaseURL   string
	GCSBucket     string // カルーセル画像の退避先バケット
	BaseOutputDir string // GCS内のベースルート (例: "output")

	SlackWebhookURL string
	ShutdownTimeout time.Duration

	// OAuth & Session Settings
	GoogleClientID     string
	GoogleClientSecret string
	// SessionSecret はセッションデータのHMAC署名用シークレットキーです。
	SessionSecret string
	// SessionEncryptKey はセッションデータのAES暗号化用シークレットキーです。 16, 24, 32 バイトのいずれかである必要があります。
	SessionEncryptKey string

	// Authz Settings
	AllowedEmails  []string
	AllowedDomains []string
}

// LoadConfig は環境変数から設定を読み込み、Config 構造体を生成します。
func LoadConfig() *Config {
	serviceURL := getEnv("SERVICE_URL", "http://localhost:8080")
	allowedEmails := getEnv("ALLOWED_EMAILS", "")
	allowedDomains := getEnv("ALLOWED_DOMAINS", "")

	return &Config{
		ServiceURL: serviceURL,
		Port:       getEnv("PORT", "8080"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
		Model:         getEnv("OPENAI_MODEL", DefaultModel),
		ImageModel:    getEnv("OPENAI_IMAGE_MODEL", DefaultImageModel),
		HTTPTimeout:   getEnvDuration("OPENAI_HTTP_TIMEOUT", DefaultHTTPTimeout),

		MaxTokens:         getEnvInt("OPENAI_MAX_TOKENS", DefaultMaxTokens),
		CarouselMaxTokens: getEnvInt("OPENAI_CAROUSEL_MAX_TOKENS", DefaultCarouselMaxTokens),
		ReviewMaxTokens:   getEnvInt("OPENAI_REVIEW_MAX_TOKENS", DefaultReviewMaxTokens),
		Temperature:       getEnvFloat("OPENAI_TEMPERATURE", DefaultTemperature),
		ReviewTemperature: getEnvFloat("OPENAI_REVIEW_TEMPERATURE", DefaultReviewTemperature),

		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", DefaultMaxRetries),
		BaseRetryDelay:  getEnvDuration("OPENAI_BASE_RETRY_DELAY", DefaultBaseRetryDelay),
		ImageBatchSize:  getEnvInt("IMAGE_BATCH_SIZE", DefaultImageBatchSize),
		ImageBatchPause: getEnvDuration("IMAGE_BATCH_PAUSE", DefaultImageBatchPause),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		GCSBucket:     getEnv("GCS_CONTENT_BUCKET", ""),
		BaseOutputDir: getEnv("BASE_OUTPUT_DIR", "output"),

		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		ShutdownTimeout: 15 * time.Second,

		// OAuth & Session
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		SessionSecret:      getEnv("SESSION_SECRET", ""),
		SessionEncryptKey:  getEnv("SESSION_ENCRYPT_KEY", ""),

		AllowedEmails:  parseCommaSeparatedList(allowedEmails),
		AllowedDomains: parseCommaSeparatedList(allowedDomains),
	}
}
