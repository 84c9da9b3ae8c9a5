package check

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"zko-backend/http-server/response"
	"zko-backend/internal/zko"
)

type QuantityChecker interface {
	Check(ctx context.Context, orderID int64) (*zko.QuantityCheck, error)
}

// CheckQuantities: GET /api/pallets/zko/{orderId}/check-quantities.
// Вердикт пересчитывается локально, статус сервера только для сравнения.
func CheckQuantities(log *slog.Logger, checker QuantityChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.quantities.CheckQuantities"

		orderID, err := response.PathID(r, "orderId")
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
		defer cancel()

		res, err := checker.Check(ctx, orderID)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		render.JSON(w, r, res)
	}
}
