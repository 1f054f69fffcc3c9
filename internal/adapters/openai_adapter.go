package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ap-content-web/internal/domain"
)

// httpDoer は HTTP 実行に必要な最小のインターフェースです。
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChatClient はチャット補完 API（JSON over HTTPS）への薄いクライアントです。
// レートリミット・認証・サーバエラーはステータスコード付きの APIError として返し、
// リトライ判断は呼び出し側（retry パッケージ）に委ねます。
type ChatClient struct {
	httpClient httpDoer
	baseURL    string
	apiKey     string
	model      string
}

// NewChatClient は ChatClient を生成します。
func NewChatClient(httpClient httpDoer, baseURL, apiKey, model string) *ChatClient {
	return &ChatClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete はチャット補完を1回実行し、応答本文と finish_reason を返します。
func (c *ChatClient) Complete(ctx context.Context, req domain.ChatRequest) (domain.ChatCompletion, error) {
	payload := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.JSONMode {
		payload.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := c.post(ctx, "/chat/completions", payload)
	if err != nil {
		return domain.ChatCompletion{}, err
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.ChatCompletion{}, &domain.MalformedResponseError{Raw: string(body), Reason: fmt.Errorf("completion envelope decode failed: %w", err)}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return domain.ChatCompletion{}, &domain.MalformedResponseError{Raw: string(body), Reason: fmt.Errorf("completion contained no choices")}
	}

	return domain.ChatCompletion{
		Content:      parsed.Choices[0].Message.Content,
		FinishReason: parsed.Choices[0].FinishReason,
	}, nil
}

// post は JSON ボディを送信し、成功時のレスポンスボディを返します。
// 非 2xx はステータスと API のエラーメッセージを持つ APIError に変換します。
func (c *ChatClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	return postJSON(ctx, c.httpClient, c.baseURL+path, c.apiKey, payload)
}

func postJSON(ctx context.Context, client httpDoer, url, apiKey string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("request encoding failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("request construction failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generative api request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("response read failed: %w", err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		var apiErr apiErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		return nil, &domain.APIError{StatusCode: res.StatusCode, Message: apiErr.Error.Message}
	}

	return body, nil
}
