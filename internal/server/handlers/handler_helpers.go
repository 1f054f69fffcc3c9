package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ap-content-web/internal/domain"
)

// decodeJSON はリクエストボディを JSON としてデコードします。未知のフィールドは拒否します。
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// respondJSON は任意の値を JSON としてレスポンスに書き込みます。
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("レスポンスの書き込みに失敗しました", "error", err)
	}
}

// respondError はエラー種別から HTTP ステータスを決定し、エラーレスポンスを返します。
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "リクエストの処理に失敗しました", "error", err)
	} else {
		slog.WarnContext(r.Context(), "リクエストを拒否しました", "error", err)
	}

	respondJSON(w, status, map[string]string{"error": err.Error()})
}

// statusForError はドメインエラーを HTTP ステータスへ対応付けます。
// 生成 API 側に起因する失敗は 502 として SPA に区別させます。
func statusForError(err error) int {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	if domain.IsRateLimited(err) {
		return http.StatusBadGateway
	}

	var exhausted *domain.RetriesExhaustedError
	var malformed *domain.MalformedResponseError
	var truncated *domain.TruncatedResponseError
	var apiErr *domain.APIError
	if errors.As(err, &exhausted) || errors.As(err, &malformed) || errors.As(err, &truncated) || errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
