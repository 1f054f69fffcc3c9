// Package store は Postgres（Supabase）へのコンテンツ永続化を担当します。
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ap-content-web/internal/domain"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// ErrNotFound は指定 ID のレコードが存在しないことを示します。
var ErrNotFound = errors.New("record not found")

// Store はコンテンツ・カルーセル画像・レビュー結果の保存先です。
type Store struct {
	db *sql.DB
}

// New は接続文字列から Store を生成し、疎通を確認します。
func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("データベース接続の初期化に失敗しました: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("データベースへの疎通確認に失敗しました: %w", err)
	}
	return &Store{db: db}, nil
}

// Close は接続プールを閉じます。
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateContent は生成結果をコンテンツレコードとして保存し、採番した ID を返します。
func (s *Store) CreateContent(ctx context.Context, content domain.Content) (string, error) {
	if content.ID == "" {
		content.ID = uuid.NewString()
	}
	if content.CreatedAt.IsZero() {
		content.CreatedAt = time.Now()
	}

	metadata, err := json.Marshal(content.Metadata)
	if err != nil {
		return "", fmt.Errorf("metadata encoding failed: %w", err)
	}

	const query = `
		INSERT INTO contents (id, title, body, platform, format, status, prompt, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = s.db.ExecContext(ctx, query,
		content.ID,
		content.Title,
		content.Body,
		string(content.Platform),
		string(content.Format),
		string(content.Status),
		content.Prompt,
		metadata,
		content.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("コンテンツの保存に失敗しました: %w", err)
	}
	return content.ID, nil
}

// GetContent は ID でコンテンツを1件取得します。
func (s *Store) GetContent(ctx context.Context, id string) (*domain.Content, error) {
	const query = `
		SELECT id, title, body, platform, format, status, prompt, metadata, created_at
		FROM contents WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	content, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("コンテンツの取得に失敗しました: %w", err)
	}
	return content, nil
}

// UpdateContentBody は本文とメタデータを更新します。レビュー調整の反映に使用します。
func (s *Store) UpdateContentBody(ctx context.Context, content domain.Content) error {
	metadata, err := json.Marshal(content.Metadata)
	if err != nil {
		return fmt.Errorf("metadata encoding failed: %w", err)
	}

	const query = `UPDATE contents SET body = $2, metadata = $3 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, content.ID, content.Body, metadata)
	if err != nil {
		return fmt.Errorf("コンテンツの更新に失敗しました: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateContentStatus はライフサイクル状態のみを更新します。
func (s *Store) UpdateContentStatus(ctx context.Context, id string, status domain.ContentStatus) error {
	const query = `UPDATE contents SET status = $2 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("ステータスの更新に失敗しました: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListContentsByDateRange は作成日が [start, end] に含まれるコンテンツを作成日順で返します。
// 範囲の検証（start <= end、最大30日）は呼び出し側で済ませてください。
func (s *Store) ListContentsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Content, error) {
	const query = `
		SELECT id, title, body, platform, format, status, prompt, metadata, created_at
		FROM contents
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("コンテンツの検索に失敗しました: %w", err)
	}
	defer rows.Close()

	var contents []domain.Content
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("コンテンツの読み取りに失敗しました: %w", err)
		}
		contents = append(contents, *content)
	}
	return contents, rows.Err()
}

// CreateCarouselImage はスライド画像タスクの最終状態を保存します。
func (s *Store) CreateCarouselImage(ctx context.Context, contentID string, task domain.SlideImageTask) error {
	const query = `
		INSERT INTO carousel_images (id, content_id, slide_number, image_prompt, status, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.db.ExecContext(ctx, query,
		uuid.NewString(),
		contentID,
		task.SlideNumber,
		task.ImagePrompt,
		string(task.Status),
		task.ImageURL,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("スライド画像の保存に失敗しました: %w", err)
	}
	return nil
}

// CreateReview はレビュー結果と個別結果・比較結果を1トランザクションで保存し、
// 採番したレビュー ID を返します。
func (s *Store) CreateReview(ctx context.Context, mode domain.ReviewMode, res domain.ReviewResponse) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	now := time.Now()

	const reviewQuery = `
		INSERT INTO reviews (id, mode, overall_coherence, summary, needs_adjustment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = tx.ExecContext(ctx, reviewQuery,
		id,
		string(mode),
		res.OverallCoherence,
		res.Summary,
		res.NeedsAdjustment,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("レビュー結果の保存に失敗しました: %w", err)
	}

	const resultQuery = `
		INSERT INTO review_results (id, review_id, content_id, coherence_score, status, issues, suggestions, adjusted_content)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, result := range res.Results {
		issues, err := json.Marshal(result.Issues)
		if err != nil {
			return "", fmt.Errorf("issues encoding failed: %w", err)
		}
		suggestions, err := json.Marshal(result.Suggestions)
		if err != nil {
			return "", fmt.Errorf("suggestions encoding failed: %w", err)
		}

		_, err = tx.ExecContext(ctx, resultQuery,
			uuid.NewString(),
			id,
			result.ContentID,
			result.CoherenceScore,
			result.Status,
			issues,
			suggestions,
			result.AdjustedContent,
		)
		if err != nil {
			return "", fmt.Errorf("個別レビュー結果の保存に失敗しました: %w", err)
		}
	}

	const comparisonQuery = `
		INSERT INTO comparison_results (id, review_id, content_id_1, content_id_2, coherence_similarity, payload)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, pair := range res.ComparisonResults {
		payload, err := json.Marshal(pair)
		if err != nil {
			return "", fmt.Errorf("comparison encoding failed: %w", err)
		}

		_, err = tx.ExecContext(ctx, comparisonQuery,
			uuid.NewString(),
			id,
			pair.ContentID1,
			pair.ContentID2,
			pair.CoherenceSimilarity,
			payload,
		)
		if err != nil {
			return "", fmt.Errorf("比較結果の保存に失敗しました: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("レビュー結果のコミットに失敗しました: %w", err)
	}
	return id, nil
}

// scanner は sql.Row / sql.Rows 共通の Scan インターフェースです。
type scanner interface {
	Scan(dest ...any) error
}

func scanContent(row scanner) (*domain.Content, error) {
	var (
		content  domain.Content
		platform string
		format   string
		status   string
		metadata []byte
	)
	err := row.Scan(
		&content.ID,
		&content.Title,
		&content.Body,
		&platform,
		&format,
		&status,
		&content.Prompt,
		&metadata,
		&content.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	content.Platform = domain.Platform(platform)
	content.Format = domain.ContentFormat(format)
	content.Status = domain.ContentStatus(status)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &content.Metadata); err != nil {
			return nil, fmt.Errorf("metadata decoding failed: %w", err)
		}
	}
	return &content, nil
}
