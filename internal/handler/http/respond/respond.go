// Package respond writes the API's JSON responses: records, confirmations,
// the typed not-found body and sanitized error bodies.
package respond

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"campus-api/internal/domain/entity"
	"campus-api/internal/observability/logging"
)

// NotFoundBody is the JSON body of a 404 caused by a record lookup miss.
type NotFoundBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// MessageBody is the JSON body of a plain confirmation.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Message writes {"message": msg} with status 200.
func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, MessageBody{Message: msg})
}

// NotFound writes the typed 404 body for a lookup miss.
func NotFound(w http.ResponseWriter, err *entity.NotFoundError) {
	JSON(w, http.StatusNotFound, NotFoundBody{
		Type:    entity.NotFoundErrorType,
		Message: err.Error(),
	})
}

// FromError translates a service error into a response:
// lookup misses become the typed 404, validation errors a 400 and
// everything else a sanitized 500.
func FromError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	var nf *entity.NotFoundError
	if errors.As(err, &nf) {
		NotFound(w, nf)
		return
	}
	if errors.Is(err, entity.ErrInvalidInput) {
		SafeError(w, http.StatusBadRequest, err)
		return
	}
	SafeError(w, http.StatusInternalServerError, err)
}

// safeErrors lists substrings marking messages that may be shown to clients.
var safeErrors = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"cannot be",
	"too long",
	"too short",
	"forbidden",
	"unauthorized",
	"too many requests",
}

// SafeError sanitizes error messages before returning them to users.
// Internal errors (e.g., database errors) are returned as "internal server error",
// with details logged for debugging. Safe errors (validation errors) are returned as-is.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	// ユーザーに安全に返せるエラーかどうかを判定
	msg := err.Error()

	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeErrors {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}

	// 500エラーは常に内部エラーとして扱う
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	// 機密情報をマスクしてログ出力
	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", logging.SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}
