package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"zko-backend/internal/zko"
)

type palletFormatkaWire struct {
	FormatkaID flexInt64  `json:"formatka_id"`
	ID         flexInt64  `json:"id"`
	Ilosc      flexInt    `json:"ilosc"`
	Nazwa      flexString `json:"nazwa"`
	Kolor      flexString `json:"kolor"`
}

type palletWire struct {
	ID                flexInt64            `json:"id"`
	PaletaID          flexInt64            `json:"paleta_id"`
	NumerPalety       flexString           `json:"numer_palety"`
	ZkoID             flexInt64            `json:"zko_id"`
	Przeznaczenie     flexString           `json:"przeznaczenie"`
	Status            flexString           `json:"status"`
	SztukTotal        flexInt              `json:"sztuk_total"`
	IloscFormatek     flexInt              `json:"ilosc_formatek"`
	WysokoscStosu     flexFloat            `json:"wysokosc_stosu"`
	WagaKg            flexFloat            `json:"waga_kg"`
	Kolory            flexStrings          `json:"kolory"`
	KoloryNaPalecie   flexStrings          `json:"kolory_na_palecie"`
	FormatkiSzczegoly []palletFormatkaWire `json:"formatki_szczegoly"`
	Formatki          []palletFormatkaWire `json:"formatki"`
}

// normalizePallets сводит разные формы ответа к одной zko.Pallet.
// formatki_szczegoly приоритетнее formatki; id палеты обязателен.
func normalizePallets(op string, in []palletWire) ([]zko.Pallet, error) {
	out := make([]zko.Pallet, 0, len(in))

	for i, w := range in {
		id := int64(w.ID)
		if id == 0 {
			id = int64(w.PaletaID)
		}
		if id <= 0 {
			return nil, zko.NewDecodeError(op, fmt.Errorf("pallet %d: missing id", i))
		}

		source := w.FormatkiSzczegoly
		if len(source) == 0 {
			source = w.Formatki
		}

		items := make([]zko.PalletFormatka, 0, len(source))
		for _, f := range source {
			fid := int64(f.FormatkaID)
			if fid == 0 {
				fid = int64(f.ID)
			}
			items = append(items, zko.PalletFormatka{
				FormatkaID: fid,
				Ilosc:      int(f.Ilosc),
				Nazwa:      string(f.Nazwa),
				Kolor:      string(f.Kolor),
			})
		}

		colors := []string(w.Kolory)
		if len(colors) == 0 {
			colors = []string(w.KoloryNaPalecie)
		}

		pieces := int(w.SztukTotal)
		if pieces == 0 {
			pieces = int(w.IloscFormatek)
		}

		out = append(out, zko.Pallet{
			ID:            id,
			Numer:         string(w.NumerPalety),
			ZkoID:         int64(w.ZkoID),
			Przeznaczenie: string(w.Przeznaczenie),
			Status:        string(w.Status),
			SztukTotal:    pieces,
			WysokoscStosu: float64(w.WysokoscStosu),
			WagaKg:        float64(w.WagaKg),
			Kolory:        colors,
			Formatki:      items,
		})
	}

	return out, nil
}

type detailsResponse struct {
	Sukces    *bool         `json:"sukces"`
	Komunikat string        `json:"komunikat"`
	Palety    *[]palletWire `json:"palety"`
}

// PalletDetails: GET /api/pallets/zko/{id}/details.
func (c *Client) PalletDetails(ctx context.Context, orderID int64) ([]zko.Pallet, error) {
	const op = "client.PalletDetails"

	if orderID <= 0 {
		return nil, zko.NewValidationError(op, "zko_id musi być dodatnie")
	}

	data, err := c.read(ctx, op, "pallet-details", fmt.Sprintf("/api/pallets/zko/%d/details", orderID))
	if err != nil {
		return nil, err
	}

	var raw []palletWire
	if isArray(data) {
		if err := decode(op, data, &raw); err != nil {
			return nil, err
		}
	} else {
		var resp detailsResponse
		if err := decode(op, data, &resp); err != nil {
			return nil, err
		}
		if resp.Sukces != nil && !*resp.Sukces {
			return nil, zko.NewRemoteFault(op, http.StatusOK, resp.Komunikat)
		}
		if resp.Palety == nil {
			return nil, zko.NewDecodeError(op, errors.New("missing palety"))
		}
		raw = *resp.Palety
	}

	return normalizePallets(op, raw)
}

// AddPalletFormatka: POST /api/pallets/{id}/formatki.
func (c *Client) AddPalletFormatka(ctx context.Context, palletID int64, a zko.Assignment) (string, error) {
	const op = "client.AddPalletFormatka"

	if palletID <= 0 {
		return "", zko.NewValidationError(op, "paleta_id musi być dodatnie")
	}
	if err := a.Validate(); err != nil {
		return "", err
	}

	data, err := c.send(ctx, op, "pallet-formatka-add", http.MethodPost, fmt.Sprintf("/api/pallets/%d/formatki", palletID), a)
	if err != nil {
		return "", err
	}
	env, err := checkEnvelope(op, data)
	return env.Komunikat, err
}

// UpdatePalletFormatka: PUT /api/pallets/{id}/formatki/{formatkaId}.
func (c *Client) UpdatePalletFormatka(ctx context.Context, palletID, formatkaID int64, a zko.Assignment) (string, error) {
	const op = "client.UpdatePalletFormatka"

	if palletID <= 0 {
		return "", zko.NewValidationError(op, "paleta_id musi być dodatnie")
	}
	a.FormatkaID = formatkaID
	if err := a.Validate(); err != nil {
		return "", err
	}

	data, err := c.send(ctx, op, "pallet-formatka-update", http.MethodPut, fmt.Sprintf("/api/pallets/%d/formatki/%d", palletID, formatkaID), a)
	if err != nil {
		return "", err
	}
	env, err := checkEnvelope(op, data)
	return env.Komunikat, err
}

// RemovePalletFormatka: DELETE /api/pallets/{id}/formatki/{formatkaId}.
func (c *Client) RemovePalletFormatka(ctx context.Context, palletID, formatkaID int64, operator string) (string, error) {
	const op = "client.RemovePalletFormatka"

	if palletID <= 0 || formatkaID <= 0 {
		return "", zko.NewValidationError(op, "paleta_id i formatka_id są wymagane")
	}
	if operator == "" {
		return "", zko.NewValidationError(op, "operator jest wymagany")
	}

	body := map[string]string{"operator": operator}
	data, err := c.send(ctx, op, "pallet-formatka-remove", http.MethodDelete, fmt.Sprintf("/api/pallets/%d/formatki/%d", palletID, formatkaID), body)
	if err != nil {
		return "", err
	}
	env, err := checkEnvelope(op, data)
	return env.Komunikat, err
}
