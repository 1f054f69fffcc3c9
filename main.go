package main

import (
	"context"
	"log/slog"
	"os"

	"ap-content-web/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// ローカル実行時のみ .env を読み込みます。本番環境ではファイルが無くても問題ありません。
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment variables from .env")
	}

	if err := server.Run(context.Background()); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}
