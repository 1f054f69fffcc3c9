// Package retry は生成 API 呼び出しをレートリミット耐性付きで実行します。
// リトライ対象はレートリミット（429 相当）のみで、それ以外の失敗は即座に伝播します。
// 渡す操作は安全に再実行できる純粋な要求/応答呼び出しでなければなりません。
package retry

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"ap-content-web/internal/domain"
)

const (
	// DefaultMaxRetries は初回実行を除くリトライ回数の上限です。
	DefaultMaxRetries = 3
	// DefaultBaseDelay はバックオフの基準遅延です。
	DefaultBaseDelay = time.Second
	// jitterRange は各リトライに加算されるランダム遅延の上限です。
	jitterRange = time.Second
)

// Executor はリトライ方針を保持します。ゼロ値ではなく New で生成してください。
// 1つの Executor を複数の goroutine から同時に使用できます。
type Executor struct {
	maxRetries int
	baseDelay  time.Duration

	// sleep はテストから差し替えるための待機関数です。
	sleep func(ctx context.Context, d time.Duration) error
}

// New は既定の待機実装を持つ Executor を生成します。
func New(maxRetries int, baseDelay time.Duration) *Executor {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	return &Executor{
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		sleep:      sleepContext,
	}
}

// WithSleep は待機関数を差し替えた Executor を返します（テスト用）。
func (e *Executor) WithSleep(sleep func(ctx context.Context, d time.Duration) error) *Executor {
	clone := *e
	clone.sleep = sleep
	return &clone
}

// Do は op を実行し、レートリミット時のみ指数バックオフ＋ジッタでリトライします。
// 上限まで失敗した場合は RetriesExhaustedError を返します。
func Do[T any](ctx context.Context, e *Executor, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		if !domain.IsRateLimited(err) {
			return zero, err
		}
		lastErr = err

		if attempt == e.maxRetries {
			break
		}

		delay := e.backoff(attempt)
		slog.WarnContext(ctx, "Rate limited by generative API, backing off",
			"attempt", attempt+1,
			"delay", delay,
		)
		if sleepErr := e.sleep(ctx, delay); sleepErr != nil {
			return zero, sleepErr
		}
	}

	return zero, &domain.RetriesExhaustedError{Attempts: e.maxRetries + 1, Last: lastErr}
}

// backoff は base×2^attempt に 0〜1000ms のジッタを加えた遅延を返します。
// ジッタはパッケージ共有の乱数源から取得するため、並行呼び出しでも安全です。
func (e *Executor) backoff(attempt int) time.Duration {
	delay := e.baseDelay * (1 << attempt)
	return delay + time.Duration(rand.Int63n(int64(jitterRange)))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
