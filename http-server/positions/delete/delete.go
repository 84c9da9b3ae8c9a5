package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"zko-backend/http-server/response"
	"zko-backend/internal/zko"
)

type PositionDeleter interface {
	DeletePosition(ctx context.Context, positionID int64, req zko.DeletePosition) (*zko.DeletePositionResult, error)
}

// DeletePosition: DELETE /api/zko/pozycje/{positionId}. Сервер каскадно удаляет форматки и палеты.
func DeletePosition(log *slog.Logger, deleter PositionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.positions.DeletePosition"

		positionID, err := response.PathID(r, "positionId")
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		var req zko.DeletePosition
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, r, "nieprawidłowy JSON")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 40*time.Second)
		defer cancel()

		res, err := deleter.DeletePosition(ctx, positionID, req)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		log.Info("позиция удалена",
			slog.String("op", op),
			slog.Int64("pozycja_id", positionID),
			slog.String("uzytkownik", req.Uzytkownik),
			slog.Int("usuniete_formatki", res.UsunieteFormatki),
			slog.Int("usuniete_palety", res.UsunietePalety),
		)

		render.JSON(w, r, res)
	}
}
