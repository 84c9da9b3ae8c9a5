package change

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"zko-backend/http-server/response"
	"zko-backend/internal/zko"
)

type Response struct {
	Komunikat string         `json:"komunikat"`
	Status    zko.StatusCode `json:"status"`
}

type StatusChanger interface {
	ChangeStatus(ctx context.Context, req zko.StatusChange) (string, error)
}

// ChangeStatus: POST /api/zko/status/change.
func ChangeStatus(log *slog.Logger, changer StatusChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.status.ChangeStatus"

		var req zko.StatusChange
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, r, "nieprawidłowy JSON")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 40*time.Second)
		defer cancel()

		msg, err := changer.ChangeStatus(ctx, req)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		log.Info("этап ZKO изменён",
			slog.String("op", op),
			slog.Int64("zko_id", req.ZkoID),
			slog.String("etap", string(req.NowyEtapKod)),
			slog.String("operator", req.Operator),
		)

		render.JSON(w, r, Response{Komunikat: msg, Status: req.NowyEtapKod})
	}
}

// GetStations: GET /api/zko/status/stations, последовательность этапов для фронтенда.
func GetStations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, zko.Stations())
	}
}
