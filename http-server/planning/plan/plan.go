package plan

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"zko-backend/http-server/response"
	"zko-backend/internal/planning"
	"zko-backend/internal/presenter"
)

type Request struct {
	MaxWysokoscMM       int    `json:"max_wysokosc_mm"`
	MaxFormatekNaPalete int    `json:"max_formatek_na_palete"`
	NadpiszIstniejace   bool   `json:"nadpisz_istniejace"`
	Operator            string `json:"operator"`
}

type Response struct {
	Outcome *planning.Outcome `json:"outcome"`
	Summary presenter.Summary `json:"summary"`
}

type PlanningStarter interface {
	Start(ctx context.Context, req planning.Request) (*planning.Outcome, error)
}

// PlanPallets: POST /api/planning/zko/{orderId}.
// 202, если сервер ждёт подтверждения перезаписи существующих палет.
func PlanPallets(log *slog.Logger, planner PlanningStarter, opts presenter.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.planning.PlanPallets"

		orderID, err := response.PathID(r, "orderId")
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("ошибка парсинга JSON", slog.String("op", op), slog.String("error", err.Error()))
			response.BadRequest(w, r, "nieprawidłowy JSON")
			return
		}

		// планирование + сверка: несколько последовательных запросов к бэкенду
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
		defer cancel()

		out, err := planner.Start(ctx, planning.Request{
			OrderID:            orderID,
			MaxHeightMM:        req.MaxWysokoscMM,
			MaxPiecesPerPallet: req.MaxFormatekNaPalete,
			Overwrite:          req.NadpiszIstniejace,
			Operator:           req.Operator,
		})
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		log.Info("планирование выполнено",
			slog.String("op", op),
			slog.Int64("zko_id", orderID),
			slog.String("state", string(out.State)),
		)

		if out.State == planning.StateAwaitingConfirmation {
			render.Status(r, http.StatusAccepted)
		}
		render.JSON(w, r, Response{Outcome: out, Summary: presenter.ForOutcome(out, opts)})
	}
}
