package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ServiceURL:         "https://content.example.com",
		OpenAIAPIKey:       "sk-test",
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		SessionSecret:      "session-secret",
		SessionEncryptKey:  "0123456789abcdef", // 16 bytes
		AllowedEmails:      []string{"team@example.com"},
		ImageBatchSize:     3,
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultOpenAIBaseURL, cfg.OpenAIBaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "dall-e-3", cfg.ImageModel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, 3000, cfg.CarouselMaxTokens)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
	assert.InDelta(t, 0.3, cfg.ReviewTemperature, 1e-9)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.BaseRetryDelay)
	assert.Equal(t, 3, cfg.ImageBatchSize)
	assert.Equal(t, time.Second, cfg.ImageBatchPause)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("OPENAI_MAX_TOKENS", "4000")
	t.Setenv("OPENAI_TEMPERATURE", "0.5")
	t.Setenv("OPENAI_HTTP_TIMEOUT", "45s")
	t.Setenv("IMAGE_BATCH_SIZE", "5")
	t.Setenv("ALLOWED_EMAILS", "a@example.com, b@example.com")

	cfg := LoadConfig()

	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 4000, cfg.MaxTokens)
	assert.InDelta(t, 0.5, cfg.Temperature, 1e-9)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5, cfg.ImageBatchSize)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.AllowedEmails)
}

func TestLoadConfig_InvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("OPENAI_MAX_TOKENS", "not-a-number")
	t.Setenv("OPENAI_HTTP_TIMEOUT", "soon")

	cfg := LoadConfig()

	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
}

func TestValidateEssentialConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateEssentialConfig(validConfig()))
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := validConfig()
		cfg.OpenAIAPIKey = ""
		require.Error(t, ValidateEssentialConfig(cfg))
	})

	t.Run("insecure service url", func(t *testing.T) {
		cfg := validConfig()
		cfg.ServiceURL = "http://content.example.com"
		require.Error(t, ValidateEssentialConfig(cfg))
	})

	t.Run("missing oauth settings", func(t *testing.T) {
		cfg := validConfig()
		cfg.GoogleClientID = ""
		require.Error(t, ValidateEssentialConfig(cfg))
	})

	t.Run("empty authorization lists", func(t *testing.T) {
		cfg := validConfig()
		cfg.AllowedEmails = nil
		cfg.AllowedDomains = nil
		require.Error(t, ValidateEssentialConfig(cfg))
	})

	t.Run("bad session encrypt key length", func(t *testing.T) {
		cfg := validConfig()
		cfg.SessionEncryptKey = "too-short"
		require.Error(t, ValidateEssentialConfig(cfg))
	})

	t.Run("invalid batch size", func(t *testing.T) {
		cfg := validConfig()
		cfg.ImageBatchSize = 0
		require.Error(t, ValidateEssentialConfig(cfg))
	})
}

func TestGetSlideImagePath(t *testing.T) {
	cfg := Config{BaseOutputDir: "output"}
	assert.Equal(t, "output/c1/images/slide-03.png", cfg.GetSlideImagePath("c1", 3))
}

func TestGetGCSObjectURL(t *testing.T) {
	cfg := Config{GCSBucket: "content-bucket"}
	assert.Equal(t, "gs://content-bucket/output/c1", cfg.GetGCSObjectURL("output/c1"))
	assert.Equal(t, "gs://other/x", cfg.GetGCSObjectURL("gs://other/x"))

	// バケット未設定時はパスをそのまま返します。
	local := Config{}
	assert.Equal(t, "output/c1", local.GetGCSObjectURL("output/c1"))
}
