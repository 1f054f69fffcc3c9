package domain

// ChatRequest はチャット補完 API への1回分の要求です。
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
	// JSONMode は structured-output（JSON オブジェクト強制）を有効にします。
	JSONMode bool
}

// FinishReasonLength はトークン上限による打ち切りを示す finish_reason です。
const FinishReasonLength = "length"

// ChatCompletion はチャット補完 API の応答本文です。
type ChatCompletion struct {
	Content      string
	FinishReason string
}

// Truncated は応答がトークン上限で途中終了したかどうかを返します。
func (c ChatCompletion) Truncated() bool {
	return c.FinishReason == FinishReasonLength
}
