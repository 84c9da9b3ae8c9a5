package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"zko-backend/http-server/response"
	"zko-backend/internal/storage"
)

type RunLister interface {
	ListRuns(ctx context.Context, filter storage.RunFilter) ([]storage.PlanningRun, error)
}

// GetRuns: журнал прогонов планирования для админки. ?zko_id=28&limit=50
func GetRuns(log *slog.Logger, lister RunLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.journal.GetRuns"

		var filter storage.RunFilter
		q := r.URL.Query()

		if raw := q.Get("zko_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				response.BadRequest(w, r, "nieprawidłowy zko_id")
				return
			}
			filter.ZkoID = id
		}
		if raw := q.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit <= 0 {
				response.BadRequest(w, r, "nieprawidłowy limit")
				return
			}
			filter.Limit = limit
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		runs, err := lister.ListRuns(ctx, filter)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		render.JSON(w, r, runs)
	}
}
