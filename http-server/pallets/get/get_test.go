package get

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"zko-backend/internal/presenter"
	"zko-backend/internal/zko"
)

type MockPalletReader struct {
	mock.Mock
}

func (m *MockPalletReader) PalletDetails(ctx context.Context, orderID int64) ([]zko.Pallet, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]zko.Pallet), args.Error(1)
}

func serve(reader PalletReader, path string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/api/pallets/zko/{orderId}/details", GetPalletDetails(slog.Default(), reader, presenter.Options{PreviewLimit: 2}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestGetPalletDetails(t *testing.T) {
	reader := new(MockPalletReader)
	reader.On("PalletDetails", mock.Anything, int64(28)).Return([]zko.Pallet{
		{ID: 1, SztukTotal: 80, Kolory: []string{"BIALY"}},
		{ID: 2, SztukTotal: 80, Kolory: []string{"SONOMA"}},
		{ID: 3, SztukTotal: 40, Kolory: []string{"BIALY"}},
	}, nil)

	rr := serve(reader, "/api/pallets/zko/28/details")

	require.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Len(t, resp.Palety, 3)
	assert.Equal(t, 200, resp.Summary.TotalPieces)
	assert.Len(t, resp.Summary.Preview, 2)
	assert.Equal(t, 1, resp.Summary.MoreCount)
}

func TestGetPalletDetails_RemoteFault(t *testing.T) {
	reader := new(MockPalletReader)
	reader.On("PalletDetails", mock.Anything, int64(28)).
		Return(nil, zko.NewRemoteFault("client", 500, "Błąd bazy danych"))

	rr := serve(reader, "/api/pallets/zko/28/details")

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Błąd bazy danych")
}
