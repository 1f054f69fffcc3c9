package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"ap-content-web/internal/domain"
	"ap-content-web/internal/prompt"

	"github.com/google/uuid"
)

// ImageClient は画像生成 API への薄いクライアントです。
// 1回の呼び出しにつき画像 URL を1件返します。
type ImageClient struct {
	httpClient httpDoer
	baseURL    string
	apiKey     string
	model      string
}

// NewImageClient は ImageClient を生成します。
func NewImageClient(httpClient httpDoer, baseURL, apiKey, model string) *ImageClient {
	return &ImageClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

type imageGenerationRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality,omitempty"`
	Style   string `json:"style,omitempty"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Generate はスタイル修飾を適用したプロンプトで画像を1枚生成し、URL を返します。
func (c *ImageClient) Generate(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageGenerationResponse, error) {
	if err := prompt.ValidateImagePrompt(req.Prompt); err != nil {
		return nil, err
	}

	style := req.Style
	if style == "" {
		style = domain.StyleRealistic
	}
	quality := req.Quality
	if quality == "" {
		quality = domain.QualityStandard
	}

	payload := imageGenerationRequest{
		Model:   c.model,
		Prompt:  prompt.EnhanceImagePrompt(req.Prompt, style),
		N:       1,
		Size:    prompt.ImageSize(req.AspectRatio),
		Quality: string(quality),
		Style:   renderStyle(style),
	}

	body, err := postJSON(ctx, c.httpClient, c.baseURL+"/images/generations", c.apiKey, payload)
	if err != nil {
		return nil, err
	}

	var parsed imageGenerationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &domain.MalformedResponseError{Raw: string(body), Reason: fmt.Errorf("image envelope decode failed: %w", err)}
	}
	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return nil, &domain.MalformedResponseError{Raw: string(body), Reason: fmt.Errorf("image response contained no url")}
	}

	return &domain.ImageGenerationResponse{
		ID:     "img_" + uuid.NewString(),
		URL:    parsed.Data[0].URL,
		Prompt: req.Prompt,
		Style:  style,
	}, nil
}

// renderStyle は画像 API のレンダリングスタイル（natural / vivid）へ変換します。
func renderStyle(style domain.ImageStyle) string {
	if style == domain.StyleRealistic {
		return "natural"
	}
	return "vivid"
}
