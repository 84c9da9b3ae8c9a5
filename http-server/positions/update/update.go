package update

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
	Pozycja *zko.Position `json:"pozycja"`
}

type PositionUpdater interface {
	UpdatePosition(ctx context.Context, positionID int64, patch zko.PositionPatch) (*zko.Position, error)
}

// UpdatePosition: PUT /api/zko/pozycje/{positionId}. Отсутствующие поля не меняются.
func UpdatePosition(log *slog.Logger, updater PositionUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.positions.UpdatePosition"

		positionID, err := response.PathID(r, "positionId")
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		var patch zko.PositionPatch
		if err := render.DecodeJSON(r.Body, &patch); err != nil {
			response.BadRequest(w, r, "nieprawidłowy JSON")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 40*time.Second)
		defer cancel()

		pos, err := updater.UpdatePosition(ctx, positionID, patch)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		log.Info("позиция обновлена", slog.String("op", op), slog.Int64("pozycja_id", positionID))

		render.JSON(w, r, Response{Pozycja: pos})
	}
}
