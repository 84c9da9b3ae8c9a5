package formatki

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

	"zko-backend/internal/zko"
)

type MockFormatkiReader struct {
	mock.Mock
}

func (m *MockFormatkiReader) PositionFormatki(ctx context.Context, positionID int64) ([]zko.Formatka, error) {
	args := m.Called(ctx, positionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]zko.Formatka), args.Error(1)
}

func items() []zko.Formatka {
	return []zko.Formatka{
		{ID: 1, IloscPlanowana: 100, IloscWPaletach: 100, IloscDostepna: 0},
		{ID: 2, IloscPlanowana: 50, IloscWPaletach: 20, IloscDostepna: 30},
		{ID: 3, IloscPlanowana: 10, IloscWPaletach: 14, IloscDostepna: 0},
	}
}

func fetch(t *testing.T, reader FormatkiReader, path string) Response {
	t.Helper()

	router := chi.NewRouter()
	router.Get("/api/zko/pozycje/{positionId}/formatki", GetFormatki(slog.Default(), reader))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	return resp
}

func TestGetFormatki_All(t *testing.T) {
	reader := new(MockFormatkiReader)
	reader.On("PositionFormatki", mock.Anything, int64(3)).Return(items(), nil)

	resp := fetch(t, reader, "/api/zko/pozycje/3/formatki")

	require.Len(t, resp.Formatki, 3)
	assert.Equal(t, -4, resp.Formatki[2].IloscDostepna)
	require.Len(t, resp.Naruszenia, 1)
	assert.Equal(t, int64(3), resp.Naruszenia[0].FormatkaID)
}

func TestGetFormatki_AvailableOnly(t *testing.T) {
	reader := new(MockFormatkiReader)
	reader.On("PositionFormatki", mock.Anything, int64(3)).Return(items(), nil)

	resp := fetch(t, reader, "/api/zko/pozycje/3/formatki?available=1")

	require.Len(t, resp.Formatki, 1)
	assert.Equal(t, int64(2), resp.Formatki[0].ID)
	assert.Equal(t, 30, resp.Formatki[0].IloscDostepna)
}

func TestGetFormatki_NoViolations(t *testing.T) {
	reader := new(MockFormatkiReader)
	reader.On("PositionFormatki", mock.Anything, int64(3)).Return(items()[:2], nil)

	resp := fetch(t, reader, "/api/zko/pozycje/3/formatki")

	assert.NotNil(t, resp.Naruszenia)
	assert.Empty(t, resp.Naruszenia)
}
