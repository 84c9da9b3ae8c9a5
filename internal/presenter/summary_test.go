package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zko-backend/internal/planning"
	"zko-backend/internal/zko"
)

func pallets(n int) []zko.Pallet {
	out := make([]zko.Pallet, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, zko.Pallet{
			ID:            int64(i + 1),
			Numer:         "PAL",
			SztukTotal:    80,
			WysokoscStosu: 1296,
			WagaKg:        500,
			Kolory:        []string{"BIALY"},
		})
	}
	return out
}

func TestSummarize_PreviewCollapse(t *testing.T) {
	s := Summarize(pallets(7), nil, Options{PreviewLimit: 4})

	assert.Equal(t, 7, s.PalletCount)
	assert.Equal(t, 560, s.TotalPieces)
	assert.Len(t, s.Preview, 4)
	assert.Equal(t, 3, s.MoreCount)
	assert.Equal(t, "+3 więcej", s.MoreLabel)
	assert.Empty(t, s.Warning)
}

func TestSummarize_NoCollapseAtLimit(t *testing.T) {
	s := Summarize(pallets(4), nil, Options{})

	assert.Len(t, s.Preview, 4)
	assert.Zero(t, s.MoreCount)
	assert.Empty(t, s.MoreLabel)
}

func TestSummarize_ColorsAndLimitFlags(t *testing.T) {
	in := []zko.Pallet{
		{ID: 1, SztukTotal: 10, WysokoscStosu: 1500, Kolory: []string{"BIALY"}},
		{ID: 2, SztukTotal: 10, WagaKg: 720, Formatki: []zko.PalletFormatka{{FormatkaID: 5, Ilosc: 10, Kolor: "DAB"}}},
		{ID: 3, SztukTotal: 10, Kolory: []string{"DAB", "BIALY"}},
	}

	s := Summarize(in, nil, Options{Limits: zko.Limits{MaxHeightMM: 1440, MaxWeightKG: 700}})

	assert.Equal(t, []string{"BIALY", "DAB"}, s.Colors)
	assert.Equal(t, 2, s.OverLimit)
	require.Len(t, s.Preview, 3)
	assert.True(t, s.Preview[0].Flags.OverHeight)
	assert.True(t, s.Preview[1].Flags.OverWeight)
	assert.False(t, s.Preview[2].Flags.Any())
	assert.Equal(t, []string{"DAB"}, s.Preview[1].Colors)
}

func TestSummarize_WarningOnNeedsFix(t *testing.T) {
	check := &zko.QuantityCheck{Totals: zko.Totals{Order: 500, Pallets: 500, Ledger: 480}, Status: zko.CheckNeedsFix}

	s := Summarize(pallets(2), check, Options{})
	assert.Equal(t, "Ilości się nie zgadzają: ZKO 500, palety 500, tabela ilości 480", s.Warning)

	check.Status = zko.CheckOK
	s = Summarize(pallets(2), check, Options{})
	assert.Empty(t, s.Warning)
}

func TestForOutcome(t *testing.T) {
	conf := &planning.Confirmation{PalletCount: 2, TotalPieces: 500, Status: zko.CheckNeedsFix, RecommendOverwrite: true}
	o := &planning.Outcome{
		State:        planning.StateAwaitingConfirmation,
		Confirmation: conf,
		Warnings:     []string{"x"},
	}

	s := ForOutcome(o, Options{})
	assert.Equal(t, "AWAITING_CONFIRMATION", s.State)
	assert.Same(t, conf, s.Confirmation)
	assert.Zero(t, s.PalletCount)
	assert.NotNil(t, s.Preview)
	assert.Equal(t, []string{"x"}, s.Warnings)

	empty := ForOutcome(nil, Options{})
	assert.Zero(t, empty.PalletCount)
}
