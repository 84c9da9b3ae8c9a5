package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"zko-backend/internal/zko"
)

type planResponse struct {
	Sukces                 *bool          `json:"sukces"`
	Komunikat              string         `json:"komunikat"`
	PotrzebaPotwierdzenia  bool           `json:"potrzeba_potwierdzenia"`
	PotrzebaTPotwierdzenia bool           `json:"potrzebaTPotwierdzenia"`
	WymagaPotwierdzenia    bool           `json:"wymaga_potwierdzenia"`
	PaletyUtworzone        []flexInt64    `json:"palety_utworzone"`
	PaletySzczegoly        []palletWire   `json:"palety_szczegoly"`
	Statystyki             map[string]any `json:"statystyki"`
	Wersja                 flexString     `json:"wersja"`
}

func (r planResponse) needsConfirmation() bool {
	return r.PotrzebaPotwierdzenia || r.PotrzebaTPotwierdzenia || r.WymagaPotwierdzenia
}

// PlanModular: POST /api/pallets/zko/{id}/plan-modular.
// Мутация: никогда не повторяется. Запрос подтверждения считается успешным ответом, не ошибкой.
func (c *Client) PlanModular(ctx context.Context, orderID int64, params zko.PlanParams) (*zko.PlanResult, error) {
	const op = "client.PlanModular"

	if orderID <= 0 {
		return nil, zko.NewValidationError(op, "zko_id musi być dodatnie")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	data, err := c.send(ctx, op, "plan-modular", http.MethodPost, fmt.Sprintf("/api/pallets/zko/%d/plan-modular", orderID), params)
	if err != nil {
		return nil, err
	}

	var resp planResponse
	if err := decode(op, data, &resp); err != nil {
		return nil, err
	}

	if resp.needsConfirmation() {
		return &zko.PlanResult{Komunikat: resp.Komunikat, NeedsConfirmation: true}, nil
	}
	if resp.Sukces == nil {
		return nil, zko.NewDecodeError(op, errors.New("missing sukces"))
	}
	if !*resp.Sukces {
		msg := resp.Komunikat
		if msg == "" {
			msg = "planowanie palet nie powiodło się"
		}
		return nil, zko.NewRemoteFault(op, http.StatusOK, msg)
	}

	pallets, err := normalizePallets(op, resp.PaletySzczegoly)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(resp.PaletyUtworzone))
	for _, id := range resp.PaletyUtworzone {
		ids = append(ids, int64(id))
	}

	return &zko.PlanResult{
		Komunikat:        resp.Komunikat,
		CreatedPalletIDs: ids,
		Pallets:          pallets,
		Stats:            resp.Statystyki,
		Version:          string(resp.Wersja),
	}, nil
}
