package generate_excel

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"zko-backend/internal/zko"
)

type MockPalletStorage struct {
	mock.Mock
}

func (m *MockPalletStorage) PalletDetails(ctx context.Context, orderID int64) ([]zko.Pallet, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]zko.Pallet), args.Error(1)
}

func TestGenerateExcel_Manifest(t *testing.T) {
	st := new(MockPalletStorage)
	st.On("PalletDetails", mock.Anything, int64(28)).Return([]zko.Pallet{
		{
			ID: 101, Numer: "PAL-28-001", SztukTotal: 80, WysokoscStosu: 1296, WagaKg: 512.5,
			Kolory:   []string{"BIALY"},
			Formatki: []zko.PalletFormatka{{FormatkaID: 1, Ilosc: 80, Nazwa: "BOK 720x560", Kolor: "BIALY"}},
		},
		{
			ID: 102, Numer: "PAL-28-002", SztukTotal: 20, WysokoscStosu: 1500, WagaKg: 128,
			Formatki: []zko.PalletFormatka{
				{FormatkaID: 2, Ilosc: 12, Nazwa: "WIENIEC", Kolor: "DAB"},
				{FormatkaID: 3, Ilosc: 8, Nazwa: "POLKA", Kolor: "DAB"},
			},
		},
	}, nil)

	svc := NewGenerateService(st, zko.Limits{MaxHeightMM: 1440, MaxWeightKG: 700})

	data, err := svc.GenerateExcel(context.Background(), 28)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Palety", "Formatki"}, f.GetSheetList())

	rows, err := f.GetRows("Palety")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Nr palety", rows[0][0])
	assert.Equal(t, []string{"PAL-28-001", "101", "80", "1296", "512.5", "BIALY"}, rows[1][:6])
	assert.Equal(t, "DAB", rows[2][5])
	assert.Equal(t, "wysokość", rows[2][6])
	assert.Equal(t, []string{"Razem", "2", "100"}, rows[3][:3])

	items, err := f.GetRows("Formatki")
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, []string{"PAL-28-002", "3", "POLKA", "DAB", "8"}, items[3])
}

func TestGenerateExcel_EmptyOrder(t *testing.T) {
	st := new(MockPalletStorage)
	st.On("PalletDetails", mock.Anything, int64(30)).Return([]zko.Pallet{}, nil)

	data, err := NewGenerateService(st, zko.Limits{}).GenerateExcel(context.Background(), 30)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Palety")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Razem", "0", "0"}, rows[1][:3])
}

func TestGenerateExcel_StorageError(t *testing.T) {
	st := new(MockPalletStorage)
	st.On("PalletDetails", mock.Anything, int64(28)).Return(nil, zko.NewNotFoundError("client", "ZKO nie istnieje"))

	_, err := NewGenerateService(st, zko.Limits{}).GenerateExcel(context.Background(), 28)
	require.Error(t, err)
	assert.True(t, zko.IsKind(err, zko.KindNotFound))
	assert.False(t, errors.Is(err, context.Canceled))
}
