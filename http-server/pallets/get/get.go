package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"zko-backend/http-server/response"
	"zko-backend/internal/presenter"
	"zko-backend/internal/zko"
)

type Response struct {
	Palety  []zko.Pallet      `json:"palety"`
	Summary presenter.Summary `json:"summary"`
}

type PalletReader interface {
	PalletDetails(ctx context.Context, orderID int64) ([]zko.Pallet, error)
}

func GetPalletDetails(log *slog.Logger, reader PalletReader, opts presenter.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pallets.GetPalletDetails"

		orderID, err := response.PathID(r, "orderId")
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
		defer cancel()

		pallets, err := reader.PalletDetails(ctx, orderID)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		render.JSON(w, r, Response{
			Palety:  pallets,
			Summary: presenter.Summarize(pallets, nil, opts),
		})
	}
}
