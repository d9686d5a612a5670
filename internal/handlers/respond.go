package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"Catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// errBadJSON - тело запроса не разбирается как JSON.
var errBadJSON = errors.New("invalid JSON body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError переводит ошибку сервиса в HTTP статус и JSON тело.
// ValidationError отдаётся как {"error": "...", "errors": [...]}.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  strings.Join(ve.Messages, "; "),
			"errors": ve.Messages,
		})
	case errors.Is(err, errBadJSON):
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON body")
	case errors.Is(err, service.ErrEmptyPatch):
		writeErrorMessage(w, http.StatusBadRequest, "No data provided")
	case errors.Is(err, service.ErrCannotDeleteSelf):
		writeErrorMessage(w, http.StatusBadRequest, "Cannot delete yourself")
	case errors.Is(err, service.ErrUnauthenticated):
		writeErrorMessage(w, http.StatusUnauthorized, capitalize(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		writeErrorMessage(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, service.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, capitalize(err.Error()))
	case errors.Is(err, service.ErrConflict):
		writeErrorMessage(w, http.StatusConflict, capitalize(err.Error()))
	default:
		logger.Errorw("request failed", "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// decodeJSON разбирает тело запроса. Пустое тело не считается ошибкой: found=false.
func decodeJSON(r *http.Request, v any) (found bool, err error) {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, errBadJSON
	}
	return true, nil
}

// pathID достаёт числовой параметр маршрута.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}
