package runner

import (
	"context"
	"net/http"
	"testing"
	"time"

	"ap-content-web/internal/domain"
	"ap-content-web/internal/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChat は ChatCompleter の記録付きフェイクです。
type fakeChat struct {
	requests []domain.ChatRequest
	respond  func(req domain.ChatRequest) (domain.ChatCompletion, error)
}

func (f *fakeChat) Complete(_ context.Context, req domain.ChatRequest) (domain.ChatCompletion, error) {
	f.requests = append(f.requests, req)
	return f.respond(req)
}

func noWaitExecutor(maxRetries int) *retry.Executor {
	return retry.New(maxRetries, time.Second).WithSleep(func(context.Context, time.Duration) error {
		return nil
	})
}

func TestContentRunner_Run(t *testing.T) {
	chat := &fakeChat{
		respond: func(domain.ChatRequest) (domain.ChatCompletion, error) {
			return domain.ChatCompletion{Content: `{"title": "5つの節約術", "content": "本文です"}`}, nil
		},
	}
	r := NewContentRunner(chat, noWaitExecutor(3), 2000, 3000, 0.7)

	result, err := r.Run(context.Background(), domain.GenerationRequest{
		Prompt:   "節約術について",
		Platform: domain.PlatformInstagram,
		Format:   domain.FormatVideoScript,
	})
	require.NoError(t, err)

	assert.Equal(t, "5つの節約術", result.Title)
	require.Len(t, chat.requests, 1)
	assert.Equal(t, 2000, chat.requests[0].MaxTokens)
	assert.InDelta(t, 0.7, chat.requests[0].Temperature, 1e-9)
	assert.True(t, chat.requests[0].JSONMode)
}

func TestContentRunner_CarouselUsesWiderTokenBudget(t *testing.T) {
	chat := &fakeChat{
		respond: func(domain.ChatRequest) (domain.ChatCompletion, error) {
			return domain.ChatCompletion{Content: `{"title": "t", "content": [{"text": "a", "description": "b"}]}`}, nil
		},
	}
	r := NewContentRunner(chat, noWaitExecutor(3), 2000, 3000, 0.7)

	_, err := r.Run(context.Background(), domain.GenerationRequest{
		Prompt:   "topic",
		Platform: domain.PlatformInstagram,
		Format:   domain.FormatCarousel,
	})
	require.NoError(t, err)

	require.Len(t, chat.requests, 1)
	assert.Equal(t, 3000, chat.requests[0].MaxTokens)
}

func TestContentRunner_ValidationFailsBeforeNetwork(t *testing.T) {
	chat := &fakeChat{
		respond: func(domain.ChatRequest) (domain.ChatCompletion, error) {
			t.Fatal("API must not be called for an invalid request")
			return domain.ChatCompletion{}, nil
		},
	}
	r := NewContentRunner(chat, noWaitExecutor(3), 2000, 3000, 0.7)

	_, err := r.Run(context.Background(), domain.GenerationRequest{
		Platform: domain.PlatformInstagram,
		Format:   domain.FormatVideoScript,
	})

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, chat.requests)
}

func TestContentRunner_RetriesOnRateLimit(t *testing.T) {
	calls := 0
	chat := &fakeChat{
		respond: func(domain.ChatRequest) (domain.ChatCompletion, error) {
			calls++
			if calls == 1 {
				return domain.ChatCompletion{}, &domain.APIError{StatusCode: http.StatusTooManyRequests}
			}
			return domain.ChatCompletion{Content: `{"title": "t", "content": "body"}`}, nil
		},
	}
	r := NewContentRunner(chat, noWaitExecutor(3), 2000, 3000, 0.7)

	result, err := r.Run(context.Background(), domain.GenerationRequest{
		Prompt:   "topic",
		Platform: domain.PlatformInstagram,
		Format:   domain.FormatVideoScript,
	})
	require.NoError(t, err)
	assert.Equal(t, "t", result.Title)
	assert.Equal(t, 2, calls)
}

func TestContentRunner_OptimizeKeepsOriginalOnFailure(t *testing.T) {
	chat := &fakeChat{
		respond: func(domain.ChatRequest) (domain.ChatCompletion, error) {
			return domain.ChatCompletion{}, &domain.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}
		},
	}
	r := NewContentRunner(chat, noWaitExecutor(3), 2000, 3000, 0.7)

	// 最適化の失敗はエラーにせず、元の本文をそのまま返します。
	body, err := r.Optimize(context.Background(), "元の本文", domain.PlatformInstagram, domain.OptimizeEngagement)
	require.NoError(t, err)
	assert.Equal(t, "元の本文", body)
}

func TestContentRunner_Optimize(t *testing.T) {
	chat := &fakeChat{
		respond: func(domain.ChatRequest) (domain.ChatCompletion, error) {
			return domain.ChatCompletion{Content: "より魅力的な本文"}, nil
		},
	}
	r := NewContentRunner(chat, noWaitExecutor(3), 2000, 3000, 0.7)

	body, err := r.Optimize(context.Background(), "元の本文", domain.PlatformInstagram, domain.OptimizeConversion)
	require.NoError(t, err)
	assert.Equal(t, "より魅力的な本文", body)
	// 最適化はプレーンテキストで受け取るため JSON モードを使いません。
	require.Len(t, chat.requests, 1)
	assert.False(t, chat.requests[0].JSONMode)
}
