package assign

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
	Komunikat string `json:"komunikat"`
}

type removeRequest struct {
	Operator string `json:"operator"`
}

type AssignmentEditor interface {
	AddPalletFormatka(ctx context.Context, palletID int64, a zko.Assignment) (string, error)
	UpdatePalletFormatka(ctx context.Context, palletID, formatkaID int64, a zko.Assignment) (string, error)
	RemovePalletFormatka(ctx context.Context, palletID, formatkaID int64, operator string) (string, error)
}

// AddFormatka: POST /api/pallets/{palletId}/formatki.
func AddFormatka(log *slog.Logger, editor AssignmentEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pallets.AddFormatka"

		palletID, err := response.PathID(r, "palletId")
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		var req zko.Assignment
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, r, "nieprawidłowy JSON")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 40*time.Second)
		defer cancel()

		msg, err := editor.AddPalletFormatka(ctx, palletID, req)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		log.Info("форматка добавлена на палету",
			slog.String("op", op),
			slog.Int64("paleta_id", palletID),
			slog.Int64("formatka_id", req.FormatkaID),
			slog.Int("ilosc", req.Ilosc),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{Komunikat: msg})
	}
}

// UpdateFormatka: PUT /api/pallets/{palletId}/formatki/{formatkaId}.
func UpdateFormatka(log *slog.Logger, editor AssignmentEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pallets.UpdateFormatka"

		palletID, err := response.PathID(r, "palletId")
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}
		formatkaID, err := response.PathID(r, "formatkaId")
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		var req zko.Assignment
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, r, "nieprawidłowy JSON")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 40*time.Second)
		defer cancel()

		msg, err := editor.UpdatePalletFormatka(ctx, palletID, formatkaID, req)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		render.JSON(w, r, Response{Komunikat: msg})
	}
}

// RemoveFormatka: DELETE /api/pallets/{palletId}/formatki/{formatkaId}, тело {operator}.
func RemoveFormatka(log *slog.Logger, editor AssignmentEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pallets.RemoveFormatka"

		palletID, err := response.PathID(r, "palletId")
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}
		formatkaID, err := response.PathID(r, "formatkaId")
		if err != nil {
			response.BadRequest(w, r, err.Error())
			return
		}

		var req removeRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, r, "nieprawidłowy JSON")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 40*time.Second)
		defer cancel()

		msg, err := editor.RemovePalletFormatka(ctx, palletID, formatkaID, req.Operator)
		if err != nil {
			response.Error(w, r, log, op, err)
			return
		}

		log.Info("форматка снята с палеты",
			slog.String("op", op),
			slog.Int64("paleta_id", palletID),
			slog.Int64("formatka_id", formatkaID),
		)

		render.JSON(w, r, Response{Komunikat: msg})
	}
}
