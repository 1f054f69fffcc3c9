package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationRequestValidate(t *testing.T) {
	valid := GenerationRequest{
		Prompt:   "topic",
		Platform: PlatformInstagram,
		Format:   FormatCarousel,
	}
	assert.NoError(t, valid.Validate())

	cases := map[string]GenerationRequest{
		"missing prompt":          {Platform: PlatformInstagram, Format: FormatCarousel},
		"unknown platform":        {Prompt: "p", Platform: "tiktok", Format: FormatCarousel},
		"unknown format":          {Prompt: "p", Platform: PlatformInstagram, Format: "podcast"},
		"newsletter on instagram": {Prompt: "p", Platform: PlatformInstagram, Format: FormatEmailNewsletter},
		"carousel on email":       {Prompt: "p", Platform: PlatformEmail, Format: FormatCarousel},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			var validationErr *ValidationError
			require.ErrorAs(t, req.Validate(), &validationErr)
		})
	}
}

func TestContentBodyUnmarshal(t *testing.T) {
	t.Run("string body", func(t *testing.T) {
		var body ContentBody
		require.NoError(t, json.Unmarshal([]byte(`"plain text"`), &body))
		assert.Equal(t, "plain text", body.Text)
		assert.Nil(t, body.Sections)
		assert.False(t, body.IsEmpty())
	})

	t.Run("section list body", func(t *testing.T) {
		var body ContentBody
		require.NoError(t, json.Unmarshal([]byte(`[{"text": "a", "description": "b"}]`), &body))
		assert.Empty(t, body.Text)
		require.Len(t, body.Sections, 1)
		assert.Equal(t, "a", body.Sections[0].Text)
	})

	t.Run("object body is rejected", func(t *testing.T) {
		var body ContentBody
		assert.Error(t, json.Unmarshal([]byte(`{"text": "a"}`), &body))
	})
}

func TestContentBodyMarshalRoundTrip(t *testing.T) {
	for name, raw := range map[string]string{
		"string":   `"newsletter body"`,
		"sections": `[{"time":"0:00 - 0:03","scene":"opening","dialogue":"hi"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			var body ContentBody
			require.NoError(t, json.Unmarshal([]byte(raw), &body))

			out, err := json.Marshal(body)
			require.NoError(t, err)
			assert.JSONEq(t, raw, string(out))
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	rateLimit := &APIError{StatusCode: http.StatusTooManyRequests}
	assert.True(t, IsRateLimited(rateLimit))
	assert.True(t, IsRateLimited(fmt.Errorf("request failed: %w", rateLimit)))

	assert.False(t, IsRateLimited(&APIError{StatusCode: http.StatusInternalServerError}))
	assert.False(t, IsRateLimited(errors.New("plain error")))
	assert.False(t, IsRateLimited(nil))
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(&APIError{StatusCode: http.StatusUnauthorized}))
	assert.True(t, IsAuthError(&APIError{StatusCode: http.StatusForbidden}))
	assert.False(t, IsAuthError(&APIError{StatusCode: http.StatusTooManyRequests}))
}

func TestRetriesExhaustedErrorUnwrap(t *testing.T) {
	last := &APIError{StatusCode: http.StatusTooManyRequests}
	err := &RetriesExhaustedError{Attempts: 4, Last: last}

	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, error(last))
}

func TestChatCompletionTruncated(t *testing.T) {
	assert.True(t, ChatCompletion{FinishReason: FinishReasonLength}.Truncated())
	assert.False(t, ChatCompletion{FinishReason: "stop"}.Truncated())
}
