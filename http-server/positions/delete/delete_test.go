package delete

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"zko-backend/internal/zko"
)

type MockPositionDeleter struct {
	mock.Mock
}

func (m *MockPositionDeleter) DeletePosition(ctx context.Context, positionID int64, req zko.DeletePosition) (*zko.DeletePositionResult, error) {
	args := m.Called(ctx, positionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*zko.DeletePositionResult), args.Error(1)
}

func serve(d PositionDeleter, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Delete("/api/zko/pozycje/{positionId}", DeletePosition(slog.Default(), d))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/zko/pozycje/4", strings.NewReader(body)))
	return rr
}

func TestDeletePosition(t *testing.T) {
	d := new(MockPositionDeleter)
	d.On("DeletePosition", mock.Anything, int64(4), zko.DeletePosition{Uzytkownik: "anna", Powod: "błąd w zamówieniu"}).
		Return(&zko.DeletePositionResult{Komunikat: "Usunięto pozycję", UsunieteFormatki: 6, UsunietePalety: 2}, nil)

	rr := serve(d, `{"uzytkownik": "anna", "powod": "błąd w zamówieniu"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"usuniete_palety":2`)
	d.AssertExpectations(t)
}

func TestDeletePosition_Rejected(t *testing.T) {
	d := new(MockPositionDeleter)
	d.On("DeletePosition", mock.Anything, int64(4), mock.Anything).
		Return(nil, zko.NewRemoteFault("client", 200, "Pozycja jest już w produkcji"))

	rr := serve(d, `{"uzytkownik": "anna"}`)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Pozycja jest już w produkcji")
}
