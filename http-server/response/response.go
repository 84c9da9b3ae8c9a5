package response

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"zko-backend/internal/zko"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// StatusFor переводит вид ошибки в HTTP-статус ответа фронтенду.
func StatusFor(err error) int {
	switch zko.KindOf(err) {
	case zko.KindValidation:
		return http.StatusBadRequest
	case zko.KindNotFound:
		return http.StatusNotFound
	case zko.KindConflict:
		return http.StatusConflict
	case zko.KindRemote, zko.KindDecode:
		return http.StatusBadGateway
	case zko.KindNetwork, zko.KindTransient:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Error пишет ошибку в лог и отдаёт {error} с сообщением для пользователя.
// Ошибки пользователя (400/404/409) логируются как Warn.
func Error(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	status := StatusFor(err)

	attrs := []any{
		slog.String("op", op),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	}
	if status < http.StatusInternalServerError {
		log.Warn("запрос отклонён", attrs...)
	} else {
		log.Error("ошибка обработки запроса", attrs...)
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{
		Error: zko.UserMessage(err),
		Kind:  zko.KindOf(err).String(),
	})
}

func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{Error: msg, Kind: zko.KindValidation.String()})
}

// PathID читает положительный числовой параметр маршрута.
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("nieprawidłowy identyfikator %s: %q", name, raw)
	}
	return id, nil
}
