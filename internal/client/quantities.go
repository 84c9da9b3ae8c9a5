package client

import (
	"context"
	"errors"
	"fmt"

	"zko-backend/internal/zko"
)

type checkResponse struct {
	Sukces         *bool  `json:"sukces"`
	Komunikat      string `json:"komunikat"`
	ZgodnoscIlosci *bool  `json:"zgodnosc_ilosci"`
	Podsumowanie   *struct {
		Zko struct {
			TypyFormatek flexInt `json:"typy_formatek"`
			TotalSztuk   flexInt `json:"total_sztuk"`
		} `json:"zko"`
		Palety struct {
			LiczbaPalet flexInt `json:"liczba_palet"`
			TotalSztuk  flexInt `json:"total_sztuk"`
		} `json:"palety"`
		TabelaIlosc struct {
			Wpisy      flexInt `json:"wpisy"`
			TotalSztuk flexInt `json:"total_sztuk"`
		} `json:"tabela_ilosc"`
	} `json:"podsumowanie"`
	Zgodnosc struct {
		ZkoVsPalety           bool `json:"zko_vs_palety"`
		PaletyVsIlosc         bool `json:"palety_vs_ilosc"`
		TabelaIloscWypelniona bool `json:"tabela_ilosc_wypelniona"`
	} `json:"zgodnosc"`
	Status string `json:"status"`
}

// CheckQuantities: GET /api/pallets/zko/{id}/check-quantities.
// Возвращает сырые итоги и то, что насчитал сервер; вердикт пересчитывает reconcile.
func (c *Client) CheckQuantities(ctx context.Context, orderID int64) (*zko.QuantityCheck, error) {
	const op = "client.CheckQuantities"

	data, err := c.read(ctx, op, "check-quantities", fmt.Sprintf("/api/pallets/zko/%d/check-quantities", orderID))
	if err != nil {
		return nil, err
	}

	var resp checkResponse
	if err := decode(op, data, &resp); err != nil {
		return nil, err
	}
	if resp.Sukces != nil && !*resp.Sukces {
		return nil, zko.NewRemoteFault(op, 200, resp.Komunikat)
	}
	if resp.Podsumowanie == nil {
		return nil, zko.NewDecodeError(op, errors.New("missing podsumowanie"))
	}

	sum := resp.Podsumowanie
	status := zko.CheckStatus(resp.Status)
	if status != zko.CheckOK && status != zko.CheckNeedsFix {
		status = ""
	}

	return &zko.QuantityCheck{
		OrderID: orderID,
		Totals: zko.Totals{
			Order:   int(sum.Zko.TotalSztuk),
			Pallets: int(sum.Palety.TotalSztuk),
			Ledger:  int(sum.TabelaIlosc.TotalSztuk),
		},
		FormatkaTypes:   int(sum.Zko.TypyFormatek),
		PalletCount:     int(sum.Palety.LiczbaPalet),
		LedgerEntries:   int(sum.TabelaIlosc.Wpisy),
		OrderVsPallets:  resp.Zgodnosc.ZkoVsPalety,
		PalletsVsLedger: resp.Zgodnosc.PaletyVsIlosc,
		LedgerFilled:    resp.Zgodnosc.TabelaIloscWypelniona,
		Status:          status,
		ServerStatus:    status,
	}, nil
}
