package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ap-content-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-notifier/pkg/factory"
	"github.com/shouni/go-notifier/pkg/slack"
)

// --- インターフェース定義 ---

type SlackNotifier interface {
	Notify(ctx context.Context, detail string, req domain.NotificationRequest) error
	NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error
}

// --- 具象アダプター ---

type SlackAdapter struct {
	httpClient  httpkit.ClientInterface
	webhookURL  string
	slackClient *slack.Client
}

func NewSlackAdapter(httpClient httpkit.ClientInterface, webhookURL string) (*SlackAdapter, error) {
	if webhookURL == "" {
		return &SlackAdapter{webhookURL: webhookURL}, nil
	}
	client, err := factory.GetSlackClient(httpClient)
	if err != nil {
		return nil, fmt.Errorf("Slackクライアントの初期化に失敗しました: %w", err)
	}

	return &SlackAdapter{
		httpClient:  httpClient,
		webhookURL:  webhookURL,
		slackClient: client,
	}, nil
}

// Notify は生成・レビュー完了時の Slack 通知を送信します。
func (a *SlackAdapter) Notify(ctx context.Context, detail string, req domain.NotificationRequest) error {
	if a.slackClient == nil {
		slog.Info("Slackクライアントが初期化されていないため、通知をスキップします。", "title", req.ContentTitle)
		return nil
	}

	// カテゴリに応じた絵文字の出し分け
	icon := "✍️"
	switch req.OutputCategory {
	case "carousel-images":
		icon = "🖼️"
	case "review-report":
		icon = "🔍"
	}

	title := fmt.Sprintf("%s コンテンツの処理が完了しました", icon)
	content := a.buildSlackContent(detail, req)

	if err := a.slackClient.SendTextWithHeader(ctx, title, content); err != nil {
		return fmt.Errorf("Slackへの投稿に失敗しました: %w", err)
	}

	slog.Info("Slack に完了通知を送信しました。", "title", req.ContentTitle)
	return nil
}

// NotifyError はエラー詳細と実行メタデータを含む Slack エラー通知を送信します。
func (a *SlackAdapter) NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error {
	if a.slackClient == nil {
		slog.Info("Slackクライアントが初期化されていないため、エラー通知をスキップします。", "error", errDetail)
		return nil
	}

	title := "❌ 処理中にエラーが発生しました"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*タイトル:* `%s`\n", req.ContentTitle))
	sb.WriteString(fmt.Sprintf("*実行モード:* `%s`\n", req.ExecutionMode))
	sb.WriteString(fmt.Sprintf("*プラットフォーム:* %s\n\n", req.Platform))

	// エラー詳細をコードブロックで囲み、可読性を確保します。
	sb.WriteString("*エラー内容:*\n")
	sb.WriteString(fmt.Sprintf("```\n%v\n```\n", errDetail))

	if req.OutputCategory != "" && req.OutputCategory != domain.CategoryNotAvailable {
		sb.WriteString(fmt.Sprintf("\n📍 *カテゴリ:* `%s`", req.OutputCategory))
	}

	if err := a.slackClient.SendTextWithHeader(ctx, title, sb.String()); err != nil {
		return fmt.Errorf("Slackへのエラー通知に失敗しました: %w", err)
	}

	slog.Info("Slack にエラー通知を送信しました。", "error", errDetail)
	return nil
}

// buildSlackContent は通知リクエストから Slack メッセージ本文を生成します。
func (a *SlackAdapter) buildSlackContent(detail string, req domain.NotificationRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**タイトル:** `%s`\n", req.ContentTitle))
	sb.WriteString(fmt.Sprintf("**実行モード:** `%s`\n", req.ExecutionMode))
	sb.WriteString(fmt.Sprintf("**プラットフォーム:** %s\n\n", req.Platform))

	if detail != "" {
		sb.WriteString(detail)
		sb.WriteString("\n")
	}

	return sb.String()
}
