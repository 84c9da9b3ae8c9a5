package confirm

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"zko-backend/http-server/response"
	"zko-backend/internal/planning"
	"zko-backend/internal/presenter"
)

type Request struct {
	Accept *bool `json:"accept"`
}

type Response struct {
	Outcome *planning.Outcome `json:"outcome"`
	Summary presenter.Summary `json:"summary"`
}

type PlanningConfirmer interface {
	Confirm(ctx context.Context, token string, accept bool) (*planning.Outcome, error)
}

// ConfirmOverwrite: POST /api/planning/confirm/{token}, тело {accept: true|false}.
func ConfirmOverwrite(log *slog.Logger, planner PlanningConfirmer, opts presenter.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.planning.ConfirmOverwrite"

		token := chi.URLParam(r, "token")
		if token == "" {
			response.BadRequest(w, r, "brak tokenu potwierdzenia")
			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil || req.Accept == nil {
			response.BadRequest(w, r, "pole accept jest wymagane")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
		defer cancel()

		out, err := planner.Confirm(ctx, token, *req.Accept)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		log.Info("решение по перезаписи принято",
			slog.String("op", op),
			slog.Bool("accept", *req.Accept),
			slog.String("state", string(out.State)),
		)

		render.JSON(w, r, Response{Outcome: out, Summary: presenter.ForOutcome(out, opts)})
	}
}
