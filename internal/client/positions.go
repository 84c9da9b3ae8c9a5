package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"zko-backend/internal/zko"
)

type formatkaWire struct {
	ID             flexInt64  `json:"id"`
	PozycjaID      flexInt64  `json:"pozycja_id"`
	Nazwa          flexString `json:"nazwa"`
	Dlugosc        flexFloat  `json:"dlugosc"`
	Szerokosc      flexFloat  `json:"szerokosc"`
	Grubosc        flexFloat  `json:"grubosc"`
	Kolor          flexString `json:"kolor"`
	IloscPlanowana flexInt    `json:"ilosc_planowana"`
	IloscWPaletach flexInt    `json:"ilosc_w_paletach"`
	IloscDostepna  flexInt    `json:"ilosc_dostepna"`
}

type formatkiResponse struct {
	Sukces    *bool           `json:"sukces"`
	Komunikat string          `json:"komunikat"`
	Formatki  *[]formatkaWire `json:"formatki"`
}

// PositionFormatki: GET /api/zko/pozycje/{id}/formatki.
func (c *Client) PositionFormatki(ctx context.Context, positionID int64) ([]zko.Formatka, error) {
	const op = "client.PositionFormatki"

	if positionID <= 0 {
		return nil, zko.NewValidationError(op, "pozycja_id musi być dodatnie")
	}

	data, err := c.read(ctx, op, "position-formatki", fmt.Sprintf("/api/zko/pozycje/%d/formatki", positionID))
	if err != nil {
		return nil, err
	}

	var raw []formatkaWire
	if isArray(data) {
		if err := decode(op, data, &raw); err != nil {
			return nil, err
		}
	} else {
		var resp formatkiResponse
		if err := decode(op, data, &resp); err != nil {
			return nil, err
		}
		if resp.Sukces != nil && !*resp.Sukces {
			return nil, zko.NewRemoteFault(op, http.StatusOK, resp.Komunikat)
		}
		if resp.Formatki == nil {
			return nil, zko.NewDecodeError(op, errors.New("missing formatki"))
		}
		raw = *resp.Formatki
	}

	out := make([]zko.Formatka, 0, len(raw))
	for i, w := range raw {
		if w.ID <= 0 {
			return nil, zko.NewDecodeError(op, fmt.Errorf("formatka %d: missing id", i))
		}
		pozycja := int64(w.PozycjaID)
		if pozycja == 0 {
			pozycja = positionID
		}
		out = append(out, zko.Formatka{
			ID:             int64(w.ID),
			PozycjaID:      pozycja,
			Nazwa:          string(w.Nazwa),
			Dlugosc:        float64(w.Dlugosc),
			Szerokosc:      float64(w.Szerokosc),
			Grubosc:        float64(w.Grubosc),
			Kolor:          string(w.Kolor),
			IloscPlanowana: int(w.IloscPlanowana),
			IloscWPaletach: int(w.IloscWPaletach),
			IloscDostepna:  int(w.IloscDostepna),
		})
	}

	return out, nil
}

type positionWire struct {
	ID         flexInt64  `json:"id"`
	ZkoID      flexInt64  `json:"zko_id"`
	KolorPlyty flexString `json:"kolor_plyty"`
	NazwaPlyty flexString `json:"nazwa_plyty"`
	IloscPlyt  flexInt    `json:"ilosc_plyt"`
	Kolejnosc  flexInt    `json:"kolejnosc"`
	Uwagi      flexString `json:"uwagi"`
}

func (w positionWire) toPosition() zko.Position {
	return zko.Position{
		ID:         int64(w.ID),
		ZkoID:      int64(w.ZkoID),
		KolorPlyty: string(w.KolorPlyty),
		NazwaPlyty: string(w.NazwaPlyty),
		IloscPlyt:  int(w.IloscPlyt),
		Kolejnosc:  int(w.Kolejnosc),
		Uwagi:      string(w.Uwagi),
	}
}

// UpdatePosition: PUT /api/zko/pozycje/{id}, только изменённые поля.
func (c *Client) UpdatePosition(ctx context.Context, positionID int64, patch zko.PositionPatch) (*zko.Position, error) {
	const op = "client.UpdatePosition"

	if positionID <= 0 {
		return nil, zko.NewValidationError(op, "pozycja_id musi być dodatnie")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	data, err := c.send(ctx, op, "position-update", http.MethodPut, fmt.Sprintf("/api/zko/pozycje/%d", positionID), patch)
	if err != nil {
		return nil, err
	}
	if _, err := checkEnvelope(op, data); err != nil {
		return nil, err
	}

	var wrapped struct {
		Pozycja *positionWire `json:"pozycja"`
		Dane    *positionWire `json:"dane"`
	}
	if err := decode(op, data, &wrapped); err != nil {
		return nil, err
	}

	var record positionWire
	switch {
	case wrapped.Pozycja != nil:
		record = *wrapped.Pozycja
	case wrapped.Dane != nil:
		record = *wrapped.Dane
	default:
		if err := decode(op, data, &record); err != nil {
			return nil, err
		}
	}
	if record.ID == 0 {
		record.ID = flexInt64(positionID)
	}

	pos := record.toPosition()
	return &pos, nil
}

type deletePositionResponse struct {
	Sukces           *bool   `json:"sukces"`
	Komunikat        string  `json:"komunikat"`
	UsunieteFormatki flexInt `json:"usuniete_formatki"`
	UsunietePalety   flexInt `json:"usuniete_palety"`
}

// DeletePosition: DELETE /api/zko/pozycje/{id} с телом {uzytkownik, powod}.
func (c *Client) DeletePosition(ctx context.Context, positionID int64, req zko.DeletePosition) (*zko.DeletePositionResult, error) {
	const op = "client.DeletePosition"

	if positionID <= 0 {
		return nil, zko.NewValidationError(op, "pozycja_id musi być dodatnie")
	}
	if req.Uzytkownik == "" {
		return nil, zko.NewValidationError(op, "uzytkownik jest wymagany")
	}

	data, err := c.send(ctx, op, "position-delete", http.MethodDelete, fmt.Sprintf("/api/zko/pozycje/%d", positionID), req)
	if err != nil {
		return nil, err
	}
	if _, err := checkEnvelope(op, data); err != nil {
		return nil, err
	}

	var resp deletePositionResponse
	if err := decode(op, data, &resp); err != nil {
		return nil, err
	}

	return &zko.DeletePositionResult{
		Komunikat:        resp.Komunikat,
		UsunieteFormatki: int(resp.UsunieteFormatki),
		UsunietePalety:   int(resp.UsunietePalety),
	}, nil
}
