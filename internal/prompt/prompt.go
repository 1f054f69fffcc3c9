// Package prompt は生成・レビュー API に渡すプロンプト対を組み立てます。
// I/O もリトライも行わない純粋な変換であり、同じ入力からは常に同じ出力を返します。
package prompt

import (
	"fmt"
	"strings"

	"ap-content-web/internal/domain"
)

const (
	// DefaultCarouselSlides はスライド枚数が未指定のときの既定値です。
	DefaultCarouselSlides = 6
	// DefaultVideoDuration は動画尺が未指定のときの既定値（秒）です。
	DefaultVideoDuration = 30
)

// Pair は system / user のプロンプト対です。
type Pair struct {
	System string
	User   string
}

// BuildGeneration は GenerationRequest からプロンプト対を構築します。
// 任意項目（トーン・ターゲット層など）は、指定されたときだけ行を出力します。
func BuildGeneration(req domain.GenerationRequest) (Pair, error) {
	system, err := buildGenerationSystem(req)
	if err != nil {
		return Pair{}, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create content about: %q\n\n", req.Prompt)
	fmt.Fprintf(&sb, "Platform: %s\n", req.Platform)
	fmt.Fprintf(&sb, "Format: %s\n", req.Format)
	if req.Tone != "" {
		fmt.Fprintf(&sb, "Tone: %s\n", req.Tone)
	}
	if req.TargetAudience != "" {
		fmt.Fprintf(&sb, "Target audience: %s\n", req.TargetAudience)
	}

	sb.WriteString("\nMake sure the content is:\n")
	fmt.Fprintf(&sb, "- Optimized for %s in the %s format\n", req.Platform, req.Format)
	sb.WriteString("- Engaging and relevant\n")
	sb.WriteString("- Tagged with appropriate hashtags (when applicable)\n")
	sb.WriteString("- Annotated with realistic performance estimates\n")

	switch req.Format {
	case domain.FormatCarousel:
		fmt.Fprintf(&sb, "- Exactly %d slides, each with a concise visual description\n", slideCount(req))
	case domain.FormatVideoScript:
		fmt.Fprintf(&sb, "- A script timed to exactly %d seconds with precise scene timing\n", videoDuration(req))
	}

	return Pair{System: system, User: sb.String()}, nil
}

func buildGenerationSystem(req domain.GenerationRequest) (string, error) {
	var body, shape string
	switch req.Format {
	case domain.FormatVideoScript:
		body = fmt.Sprintf(videoScriptSystem, videoDuration(req))
		shape = videoScriptShape
	case domain.FormatCarousel:
		body = fmt.Sprintf(carouselSystem, slideCount(req))
		shape = carouselShape
	case domain.FormatEmailNewsletter:
		body = emailNewsletterSystem
		shape = emailNewsletterShape
	default:
		return "", &domain.ValidationError{Field: "format", Message: fmt.Sprintf("no prompt template for format %q", req.Format)}
	}

	return body + "\n\nReturn the content strictly as JSON in the following shape:\n" + shape, nil
}

// BuildReview は一貫性レビュー用のプロンプト対を構築します。
// 比較モードではペア比較用のテンプレートと JSON 形状を使用します。
func BuildReview(req domain.ReviewRequest) Pair {
	var system, shape, heading string
	if req.Mode == domain.ReviewComparison {
		system = comparisonReviewSystem
		shape = comparisonShape
		heading = "Compare the following content items for coherence analysis:"
	} else {
		system = coherenceReviewSystem
		shape = reviewShape
		heading = "Analyze the following content items for coherence and quality:"
	}

	var sb strings.Builder
	sb.WriteString(heading)
	sb.WriteString("\n")
	for i, c := range req.Contents {
		fmt.Fprintf(&sb, "\nContent %d:\n", i+1)
		fmt.Fprintf(&sb, "- ID: %s\n", c.ID)
		fmt.Fprintf(&sb, "- Title: %s\n", c.Title)
		fmt.Fprintf(&sb, "- Platform: %s\n", c.Platform)
		fmt.Fprintf(&sb, "- Format: %s\n", c.Format)
		fmt.Fprintf(&sb, "- Body: %s\n", c.Body)
		fmt.Fprintf(&sb, "- Date: %s\n", c.CreatedAt.Format("2006-01-02"))
	}
	if req.BrandGuidelines != "" {
		fmt.Fprintf(&sb, "\nBrand guidelines:\n%s\n", req.BrandGuidelines)
	}
	if req.TargetAudience != "" {
		fmt.Fprintf(&sb, "\nTarget audience:\n%s\n", req.TargetAudience)
	}
	sb.WriteString("\nReturn the analysis strictly as JSON in the following shape:\n")
	sb.WriteString(shape)

	return Pair{System: system, User: sb.String()}
}

// BuildOptimization は既存本文の最適化指示を構築します。
func BuildOptimization(body string, platform domain.Platform, goal domain.OptimizationGoal) Pair {
	goals := map[domain.OptimizationGoal]string{
		domain.OptimizeEngagement: "Optimize this content to maximize engagement (likes, comments, shares)",
		domain.OptimizeReach:      "Optimize this content to maximize reach and visibility",
		domain.OptimizeConversion: "Optimize this content to maximize conversions and desired actions",
	}
	instruction, ok := goals[goal]
	if !ok {
		instruction = goals[domain.OptimizeEngagement]
	}

	return Pair{
		System: fmt.Sprintf("You are an expert in content optimization for %s. %s.", platform, instruction),
		User:   fmt.Sprintf("Optimize this content for %s:\n\n%s", platform, body),
	}
}

func slideCount(req domain.GenerationRequest) int {
	if req.CarouselSlides > 0 {
		return req.CarouselSlides
	}
	return DefaultCarouselSlides
}

func videoDuration(req domain.GenerationRequest) int {
	if req.VideoDuration > 0 {
		return req.VideoDuration
	}
	return DefaultVideoDuration
}
