package parser

import (
	"testing"

	"ap-content-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneration_ValidEmailNewsletter(t *testing.T) {
	completion := domain.ChatCompletion{
		Content: `{
			"title": "週刊マーケティングレター",
			"content": "こんにちは。今週のトピックは...",
			"hashtags": [],
			"callToAction": "今すぐ登録",
			"estimatedReach": "500 - 1.2K",
			"estimatedEngagement": "15% - 25%",
			"qualityScore": 88
		}`,
		FinishReason: "stop",
	}

	result, err := Generation(completion)
	require.NoError(t, err)

	assert.Equal(t, "週刊マーケティングレター", result.Title)
	assert.Equal(t, "こんにちは。今週のトピックは...", result.Content.Text)
	assert.Nil(t, result.Content.Sections)
	assert.Equal(t, 88, result.QualityScore)
}

func TestGeneration_ValidCarouselSections(t *testing.T) {
	completion := domain.ChatCompletion{
		Content: `{
			"title": "節約術5選",
			"content": [
				{"text": "固定費を見直す", "description": "電卓とノートのある机"},
				{"text": "先取り貯金", "description": "貯金箱とコイン"}
			],
			"hashtags": ["#節約"],
			"estimatedReach": "2.0K",
			"estimatedEngagement": "5%",
			"qualityScore": 85
		}`,
	}

	result, err := Generation(completion)
	require.NoError(t, err)

	require.Len(t, result.Content.Sections, 2)
	assert.Equal(t, "固定費を見直す", result.Content.Sections[0].Text)
	assert.Equal(t, "貯金箱とコイン", result.Content.Sections[1].Description)
}

func TestGeneration_StripsMarkdownFences(t *testing.T) {
	for name, content := range map[string]string{
		"json fence": "```json\n{\"title\": \"t\", \"content\": \"body\"}\n```",
		"bare fence": "```\n{\"title\": \"t\", \"content\": \"body\"}\n```",
	} {
		t.Run(name, func(t *testing.T) {
			result, err := Generation(domain.ChatCompletion{Content: content})
			require.NoError(t, err)
			assert.Equal(t, "t", result.Title)
		})
	}
}

func TestGeneration_RepairsTruncatedJSON(t *testing.T) {
	cases := map[string]string{
		"missing one closer":    `{"title": "t", "content": "body"`,
		"missing array closers": `{"title": "t", "content": [{"text": "a", "description": "b"}`,
		"trailing comma":        `{"title": "t", "content": "body",`,
		"unterminated quote":    `{"title": "t", "content": "body`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			result, err := Generation(domain.ChatCompletion{Content: raw})
			require.NoError(t, err)
			assert.Equal(t, "t", result.Title)
			assert.False(t, result.Content.IsEmpty())
		})
	}
}

func TestGeneration_MissingRequiredFields(t *testing.T) {
	raw := `{"content": "body without title"}`

	_, err := Generation(domain.ChatCompletion{Content: raw})

	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	// 元の応答テキストを診断用にそのまま保持します。
	assert.Equal(t, raw, malformed.Raw)
}

func TestGeneration_UnrepairableResponse(t *testing.T) {
	_, err := Generation(domain.ChatCompletion{Content: "the model replied in prose, not JSON"})

	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestGeneration_TruncatedResponseFailsWithoutRepair(t *testing.T) {
	// 修復すれば通ってしまう形でも、finish_reason が length なら修復しません。
	_, err := Generation(domain.ChatCompletion{
		Content:      `{"title": "t", "content": "cut off mid-sent`,
		FinishReason: domain.FinishReasonLength,
	})

	var truncated *domain.TruncatedResponseError
	require.ErrorAs(t, err, &truncated)
}

func TestReview_ValidResponse(t *testing.T) {
	completion := domain.ChatCompletion{
		Content: `{
			"overallCoherence": 82,
			"results": [
				{"id": "review-1", "contentId": "c1", "coherenceScore": 82, "issues": [], "suggestions": [], "status": "approved"}
			],
			"summary": "全体として一貫しています",
			"recommendations": ["トーンを統一する"],
			"needsAdjustment": false
		}`,
	}

	res, err := Review(completion)
	require.NoError(t, err)

	assert.Equal(t, 82, res.OverallCoherence)
	require.Len(t, res.Results, 1)
	assert.Equal(t, domain.ReviewStatusApproved, res.Results[0].Status)
	assert.False(t, res.NeedsAdjustment)
}

func TestReview_TruncatedResponse(t *testing.T) {
	_, err := Review(domain.ChatCompletion{
		Content:      `{"overallCoherence": 82`,
		FinishReason: domain.FinishReasonLength,
	})

	var truncated *domain.TruncatedResponseError
	require.ErrorAs(t, err, &truncated)
}

func TestRepair(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"balanced input unchanged": {
			in:   `{"a": 1}`,
			want: `{"a": 1}`,
		},
		"trailing comma removed": {
			in:   `{"a": 1,`,
			want: `{"a": 1}`,
		},
		"quote closed before brackets": {
			in:   `{"a": "b`,
			want: `{"a": "b"}`,
		},
		"nested closers appended in order": {
			in:   `{"a": [{"b": 1}`,
			want: `{"a": [{"b": 1}]}`,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Repair(tc.in))
		})
	}
}
