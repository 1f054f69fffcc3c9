package prompt

import (
	"fmt"
	"strings"

	"ap-content-web/internal/domain"
)

const (
	// MinImagePromptLen / MaxImagePromptLen は画像プロンプトの許容長です。
	MinImagePromptLen = 10
	MaxImagePromptLen = 1000
)

var styleEnhancements = map[domain.ImageStyle]string{
	domain.StyleRealistic:    "photorealistic, high quality, detailed, professional photography style",
	domain.StyleIllustration: "illustration style, artistic, creative, hand-drawn aesthetic",
	domain.StyleMinimalist:   "minimalist design, clean, simple, modern, lots of white space",
	domain.StyleVibrant:      "vibrant colors, energetic, dynamic, eye-catching, modern design",
}

// EnhanceImagePrompt はスタイルに応じた修飾句を付与した画像プロンプトを返します。
// 未知のスタイルは vibrant にフォールバックします。
func EnhanceImagePrompt(base string, style domain.ImageStyle) string {
	enhancement, ok := styleEnhancements[style]
	if !ok {
		enhancement = styleEnhancements[domain.StyleVibrant]
	}
	return fmt.Sprintf("%s. %s. High quality, professional, suitable for social media.", base, enhancement)
}

// BuildCarouselImagePrompt はスライド本文と視覚説明から画像生成プロンプトを導出します。
func BuildCarouselImagePrompt(slideText, description string, slideNumber int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a vibrant, engaging Instagram carousel slide image for slide %d.\n\n", slideNumber)
	fmt.Fprintf(&sb, "Slide content: %q\n", slideText)
	fmt.Fprintf(&sb, "Visual description: %q\n\n", description)
	sb.WriteString(`Style requirements:
- Modern, clean design suitable for Instagram
- High contrast and vibrant colors
- Text-friendly layout (space for overlay text)
- Professional but engaging aesthetic
- No text overlay in the image itself
- Square format (1:1 aspect ratio)
- High quality, sharp details

The image should visually represent the content and be suitable for social media engagement.`)
	return sb.String()
}

// ValidateImagePrompt は画像プロンプトのローカル検証を行います。
func ValidateImagePrompt(p string) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < MinImagePromptLen {
		return &domain.ValidationError{Field: "prompt", Message: fmt.Sprintf("image prompt must be at least %d characters", MinImagePromptLen)}
	}
	if len(p) > MaxImagePromptLen {
		return &domain.ValidationError{Field: "prompt", Message: fmt.Sprintf("image prompt must not exceed %d characters", MaxImagePromptLen)}
	}
	return nil
}

// ImageSize はアスペクト比を画像 API のサイズ指定へ変換します。
func ImageSize(ratio domain.AspectRatio) string {
	switch ratio {
	case domain.AspectLandscape:
		return "1792x1024"
	case domain.AspectPortrait:
		return "1024x1792"
	default:
		return "1024x1024"
	}
}
