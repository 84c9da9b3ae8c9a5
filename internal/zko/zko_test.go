package zko

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatka_FullyAssignedIsNotAvailable(t *testing.T) {
	items := []Formatka{
		{ID: 1, IloscPlanowana: 250, IloscWPaletach: 250, IloscDostepna: 0},
		{ID: 2, IloscPlanowana: 100, IloscWPaletach: 40, IloscDostepna: 60},
	}

	assert.Equal(t, 0, items[0].Available())

	available := AvailableFormatki(items)
	require.Len(t, available, 1)
	assert.Equal(t, int64(2), available[0].ID)
}

func TestCheckAvailability_NegativeIsSurfacedNotClamped(t *testing.T) {
	items := []Formatka{
		{ID: 7, IloscPlanowana: 10, IloscWPaletach: 12, IloscDostepna: 0},
		{ID: 8, IloscPlanowana: 10, IloscWPaletach: 4, IloscDostepna: 6},
	}

	out, violations := CheckAvailability(items)

	require.Len(t, out, 2)
	assert.Equal(t, -2, out[0].IloscDostepna)
	assert.Equal(t, 6, out[1].IloscDostepna)

	require.Len(t, violations, 1)
	assert.Equal(t, int64(7), violations[0].FormatkaID)
	assert.Equal(t, -2, violations[0].Computed)
}

func TestCheckAvailability_ServerMismatch(t *testing.T) {
	out, violations := CheckAvailability([]Formatka{{ID: 3, IloscPlanowana: 20, IloscWPaletach: 5, IloscDostepna: 20}})

	assert.Equal(t, 15, out[0].IloscDostepna)
	require.Len(t, violations, 1)
	assert.Equal(t, 20, violations[0].Reported)
}

func TestStatusChange_Validate(t *testing.T) {
	ok := StatusChange{ZkoID: 28, NowyEtapKod: StatusTransport2, Operator: "jan"}
	assert.NoError(t, ok.Validate())

	unknown := ok
	unknown.NowyEtapKod = "FOO"
	err := unknown.Validate()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))

	noOperator := ok
	noOperator.Operator = ""
	assert.True(t, IsKind(noOperator.Validate(), KindValidation))
}

func TestStatusIndex_Sequence(t *testing.T) {
	assert.Equal(t, 0, StatusIndex(StatusNowe))
	assert.Less(t, StatusIndex(StatusCiecieStart), StatusIndex(StatusTransport2))
	assert.Less(t, StatusIndex(StatusTransport2), StatusIndex(StatusWiercenieStop))
	assert.Equal(t, -1, StatusIndex(StatusAnulowane))
	assert.True(t, KnownStatus(StatusAnulowane))
	assert.False(t, KnownStatus("FOO"))
}

func TestLimits_FlagOnly(t *testing.T) {
	l := Limits{MaxHeightMM: 1440, MaxWeightKG: 700}

	flags := l.Check(Pallet{WysokoscStosu: 1500, WagaKg: 650})
	assert.True(t, flags.OverHeight)
	assert.False(t, flags.OverWeight)
	assert.True(t, flags.Any())

	assert.False(t, Limits{}.Check(Pallet{WysokoscStosu: 5000, WagaKg: 5000}).Any())
}

func TestPallet_PiecesAndColors(t *testing.T) {
	p := Pallet{
		Kolory: []string{"BIALY"},
		Formatki: []PalletFormatka{
			{FormatkaID: 1, Ilosc: 30, Kolor: "BIALY"},
			{FormatkaID: 2, Ilosc: 20, Kolor: "DAB"},
		},
	}

	assert.Equal(t, 50, p.Pieces())
	assert.Equal(t, []string{"BIALY", "DAB"}, p.Colors())

	p.SztukTotal = 55
	assert.Equal(t, 55, p.Pieces())
}

func TestIsKind_WalksWrappedChain(t *testing.T) {
	inner := NewNetworkError("client.get", errors.New("dial tcp: refused"))
	wrapped := fmt.Errorf("reconcile: %w", Transient("reconcile.Check", inner))

	assert.True(t, IsKind(wrapped, KindTransient))
	assert.True(t, IsKind(wrapped, KindNetwork))
	assert.False(t, IsKind(wrapped, KindDecode))
	assert.Equal(t, KindTransient, KindOf(wrapped))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Brak palet", UserMessage(NewRemoteFault("op", 500, "Brak palet")))
	assert.Equal(t, "Brak połączenia z serwerem", UserMessage(NewNetworkError("op", errors.New("timeout"))))
	assert.Equal(t, "Wystąpił błąd serwera", UserMessage(errors.New("boom")))
}

func TestPositionPatch_Validate(t *testing.T) {
	assert.True(t, IsKind(PositionPatch{}.Validate(), KindValidation))

	uwagi := "pilne"
	assert.NoError(t, PositionPatch{Uwagi: &uwagi}.Validate())

	zero := 0
	assert.True(t, IsKind(PositionPatch{IloscPlyt: &zero}.Validate(), KindValidation))
}
