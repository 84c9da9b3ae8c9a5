package presenter

import (
	"fmt"

	"zko-backend/internal/planning"
	"zko-backend/internal/zko"
)

const defaultPreviewLimit = 4

type Options struct {
	PreviewLimit int
	Limits       zko.Limits
}

type PalletPreview struct {
	ID       int64          `json:"id"`
	Numer    string         `json:"numer_palety"`
	Pieces   int            `json:"sztuk"`
	HeightMM float64        `json:"wysokosc_stosu"`
	WeightKG float64        `json:"waga_kg"`
	Colors   []string       `json:"kolory"`
	Flags    zko.LimitFlags `json:"flagi"`
}

// Summary: модель для экрана результата. Никаких решений здесь не принимается.
type Summary struct {
	State        string                 `json:"state,omitempty"`
	PalletCount  int                    `json:"liczba_palet"`
	TotalPieces  int                    `json:"total_sztuk"`
	Preview      []PalletPreview        `json:"podglad"`
	MoreCount    int                    `json:"wiecej"`
	MoreLabel    string                 `json:"wiecej_etykieta,omitempty"`
	Colors       []string               `json:"kolory"`
	OverLimit    int                    `json:"przekroczenia"`
	Warning      string                 `json:"ostrzezenie,omitempty"`
	Warnings     []string               `json:"ostrzezenia,omitempty"`
	Confirmation *planning.Confirmation `json:"potwierdzenie,omitempty"`
}

// Summarize собирает сводку по списку палет и последней сверке.
func Summarize(pallets []zko.Pallet, check *zko.QuantityCheck, opts Options) Summary {
	limit := opts.PreviewLimit
	if limit <= 0 {
		limit = defaultPreviewLimit
	}

	s := Summary{
		PalletCount: len(pallets),
		TotalPieces: zko.TotalPieces(pallets),
		Preview:     make([]PalletPreview, 0, min(limit, len(pallets))),
		Colors:      []string{},
	}

	seen := make(map[string]struct{})
	for i, p := range pallets {
		flags := opts.Limits.Check(p)
		if flags.Any() {
			s.OverLimit++
		}

		colors := p.Colors()
		for _, c := range colors {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				s.Colors = append(s.Colors, c)
			}
		}

		if i < limit {
			s.Preview = append(s.Preview, PalletPreview{
				ID:       p.ID,
				Numer:    p.Numer,
				Pieces:   p.Pieces(),
				HeightMM: p.WysokoscStosu,
				WeightKG: p.WagaKg,
				Colors:   colors,
				Flags:    flags,
			})
		}
	}

	if len(pallets) > limit {
		s.MoreCount = len(pallets) - limit
		s.MoreLabel = fmt.Sprintf("+%d więcej", s.MoreCount)
	}

	if check != nil && check.Status == zko.CheckNeedsFix {
		s.Warning = fmt.Sprintf("Ilości się nie zgadzają: ZKO %d, palety %d, tabela ilości %d",
			check.Totals.Order, check.Totals.Pallets, check.Totals.Ledger)
	}

	return s
}

// ForOutcome: сводка по результату прогона планирования.
func ForOutcome(o *planning.Outcome, opts Options) Summary {
	if o == nil {
		return Summarize(nil, nil, opts)
	}

	s := Summarize(o.Pallets, o.Check, opts)
	s.State = string(o.State)
	s.Warnings = o.Warnings
	s.Confirmation = o.Confirmation
	return s
}
