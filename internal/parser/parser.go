// Package parser は生成 API の応答テキストを構造化結果へデコードします。
// ネットワークには一切依存せず、文字列のみを入力として動作します。
package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"ap-content-web/internal/domain"
)

// Generation はチャット補完の応答を GenerationResult へデコードします。
// トークン上限による途中終了は修復不能とみなし、修復を試みずに
// TruncatedResponseError で即座に失敗します。
func Generation(completion domain.ChatCompletion) (*domain.GenerationResult, error) {
	if completion.Truncated() {
		return nil, &domain.TruncatedResponseError{Raw: completion.Content}
	}

	raw := stripCodeFences(completion.Content)
	if strings.TrimSpace(raw) == "" {
		return nil, &domain.MalformedResponseError{Raw: completion.Content, Reason: fmt.Errorf("empty response body")}
	}

	result, err := decodeGeneration(raw)
	if err != nil {
		// 1回だけ構造修復を試みてから再デコードします。
		repaired := Repair(raw)
		result, err = decodeGeneration(repaired)
		if err != nil {
			return nil, &domain.MalformedResponseError{Raw: completion.Content, Reason: err}
		}
	}

	if result.Title == "" || result.Content.IsEmpty() {
		return nil, &domain.MalformedResponseError{
			Raw:    completion.Content,
			Reason: fmt.Errorf("required fields missing: title=%q, content empty=%v", result.Title, result.Content.IsEmpty()),
		}
	}

	return result, nil
}

// Review はレビュー応答を ReviewResponse へデコードします。
// 生成応答と同じ修復方針を適用します。
func Review(completion domain.ChatCompletion) (*domain.ReviewResponse, error) {
	if completion.Truncated() {
		return nil, &domain.TruncatedResponseError{Raw: completion.Content}
	}

	raw := stripCodeFences(completion.Content)
	result, err := decodeReview(raw)
	if err != nil {
		result, err = decodeReview(Repair(raw))
		if err != nil {
			return nil, &domain.MalformedResponseError{Raw: completion.Content, Reason: err}
		}
	}

	return result, nil
}

func decodeGeneration(raw string) (*domain.GenerationResult, error) {
	var result domain.GenerationResult
	decoder := json.NewDecoder(strings.NewReader(raw))
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("json decode failed: %w", err)
	}
	return &result, nil
}

func decodeReview(raw string) (*domain.ReviewResponse, error) {
	var result domain.ReviewResponse
	decoder := json.NewDecoder(strings.NewReader(raw))
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("json decode failed: %w", err)
	}
	return &result, nil
}

// stripCodeFences は LLM がしばしば付けてくる Markdown のコードフェンスを除去します。
func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	} else {
		return cleaned
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
