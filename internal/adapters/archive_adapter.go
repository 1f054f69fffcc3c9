package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// objectWriter は画像退避に必要な最小の書き込みインターフェースです。
// remoteio.OutputWriter がこれを満たします。
type objectWriter interface {
	Write(ctx context.Context, path string, r io.Reader, contentType string) error
}

// ImageArchiver は生成 API が返す一時 URL の画像を取得し、ストレージへ退避します。
// 画像 API の URL は一定時間で失効するため、永続化はここで行います。
type ImageArchiver struct {
	httpClient httpDoer
	writer     objectWriter
}

// NewImageArchiver は ImageArchiver を生成します。writer が nil の場合、
// Archive は元の URL をそのまま返します（ストレージ未設定のローカル実行を想定）。
func NewImageArchiver(httpClient httpDoer, writer objectWriter) *ImageArchiver {
	return &ImageArchiver{
		httpClient: httpClient,
		writer:     writer,
	}
}

// Archive は imageURL の画像を destination（"gs://..." 形式）へ書き込み、保存先 URI を返します。
func (a *ImageArchiver) Archive(ctx context.Context, imageURL, destination string) (string, error) {
	if a.writer == nil {
		slog.InfoContext(ctx, "Image storage is not configured, keeping the original URL", "url", imageURL)
		return imageURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("image download request construction failed: %w", err)
	}

	res, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image download failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image download failed with status %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("image read failed: %w", err)
	}

	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	if err := a.writer.Write(ctx, destination, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("image archive write failed: %w", err)
	}

	slog.InfoContext(ctx, "Archived generated image", "destination", destination, "bytes", len(data))
	return destination, nil
}
