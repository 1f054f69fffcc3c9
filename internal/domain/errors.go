package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError は生成 API が HTTP ステータスで通知してきた失敗です。
// ステータスに応じてリトライ可否が決まります（429 のみリトライ対象）。
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("generative api error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("generative api error (status %d): %s", e.StatusCode, e.Message)
}

// IsRateLimited は err がレートリミット（429 相当）かどうかを判定します。
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

// IsAuthError は err が認証・認可エラー（401/403）かどうかを判定します。
// 設定不備として扱い、リトライしてはいけません。
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// RetriesExhaustedError はリトライ上限まで試行しても成功しなかったことを示します。
// 元の API エラーとは区別可能で、Unwrap で最後の失敗を辿れます。
type RetriesExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Last
}

// MalformedResponseError は修復を試みた後も構造的に解釈できなかった応答です。
// 診断のために受信した生テキストを保持します。自動リトライはしません。
type MalformedResponseError struct {
	Raw    string
	Reason error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed generative response: %v", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Reason
}

// TruncatedResponseError はトークン上限により応答が途中で切られたことを示します。
// 構造の途中で切れた JSON は確実には修復できないため、修復を試みずに即座に失敗します。
type TruncatedResponseError struct {
	Raw string
}

func (e *TruncatedResponseError) Error() string {
	return "generative response was truncated by the token limit; shorten the prompt or split the request"
}

// ValidationError はネットワーク到達前のローカル検証エラーです。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
