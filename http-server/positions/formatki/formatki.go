package formatki

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
	Formatki   []zko.Formatka              `json:"formatki"`
	Naruszenia []zko.AvailabilityViolation `json:"naruszenia"`
}

type FormatkiReader interface {
	PositionFormatki(ctx context.Context, positionID int64) ([]zko.Formatka, error)
}

// GetFormatki: GET /api/zko/pozycje/{positionId}/formatki[?available=1].
// ilosc_dostepna пересчитывается, расхождения с сервером возвращаются в naruszenia.
func GetFormatki(log *slog.Logger, reader FormatkiReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.positions.GetFormatki"

		positionID, err := response.PathID(r, "positionId")
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
		defer cancel()

		items, err := reader.PositionFormatki(ctx, positionID)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		checked, violations := zko.CheckAvailability(items)
		if len(violations) > 0 {
			log.Warn("ilosc_dostepna не сходится с расчётом",
				slog.String("op", op),
				slog.Int64("pozycja_id", positionID),
				slog.Int("naruszenia", len(violations)),
			)
		}

		if r.URL.Query().Get("available") == "1" {
			checked = zko.AvailableFormatki(checked)
		}
		if violations == nil {
			violations = []zko.AvailabilityViolation{}
		}

		render.JSON(w, r, Response{Formatki: checked, Naruszenia: violations})
	}
}
