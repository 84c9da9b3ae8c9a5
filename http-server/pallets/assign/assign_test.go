package assign

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

type MockAssignmentEditor struct {
	mock.Mock
}

func (m *MockAssignmentEditor) AddPalletFormatka(ctx context.Context, palletID int64, a zko.Assignment) (string, error) {
	args := m.Called(ctx, palletID, a)
	return args.String(0), args.Error(1)
}

func (m *MockAssignmentEditor) UpdatePalletFormatka(ctx context.Context, palletID, formatkaID int64, a zko.Assignment) (string, error) {
	args := m.Called(ctx, palletID, formatkaID, a)
	return args.String(0), args.Error(1)
}

func (m *MockAssignmentEditor) RemovePalletFormatka(ctx context.Context, palletID, formatkaID int64, operator string) (string, error) {
	args := m.Called(ctx, palletID, formatkaID, operator)
	return args.String(0), args.Error(1)
}

func newRouter(editor AssignmentEditor) http.Handler {
	log := slog.Default()
	router := chi.NewRouter()
	router.Post("/api/pallets/{palletId}/formatki", AddFormatka(log, editor))
	router.Put("/api/pallets/{palletId}/formatki/{formatkaId}", UpdateFormatka(log, editor))
	router.Delete("/api/pallets/{palletId}/formatki/{formatkaId}", RemoveFormatka(log, editor))
	return router
}

func do(editor AssignmentEditor, method, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	newRouter(editor).ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rr
}

func TestAddFormatka(t *testing.T) {
	editor := new(MockAssignmentEditor)
	editor.On("AddPalletFormatka", mock.Anything, int64(7), zko.Assignment{FormatkaID: 101, Ilosc: 20, Operator: "jan"}).
		Return("Dodano formatkę", nil)

	rr := do(editor, http.MethodPost, "/api/pallets/7/formatki", `{"formatka_id": 101, "ilosc": 20, "operator": "jan"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "Dodano formatkę")
	editor.AssertExpectations(t)
}

func TestAddFormatka_ValidationFromClient(t *testing.T) {
	editor := new(MockAssignmentEditor)
	editor.On("AddPalletFormatka", mock.Anything, int64(7), mock.Anything).
		Return("", zko.NewValidationError("client", "ilosc musi być dodatnia"))

	rr := do(editor, http.MethodPost, "/api/pallets/7/formatki", `{"formatka_id": 101, "ilosc": 0, "operator": "jan"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "ilosc musi być dodatnia")
}

func TestUpdateFormatka(t *testing.T) {
	editor := new(MockAssignmentEditor)
	editor.On("UpdatePalletFormatka", mock.Anything, int64(7), int64(101), zko.Assignment{Ilosc: 15, Operator: "jan"}).
		Return("Zaktualizowano", nil)

	rr := do(editor, http.MethodPut, "/api/pallets/7/formatki/101", `{"ilosc": 15, "operator": "jan"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	editor.AssertExpectations(t)
}

func TestRemoveFormatka(t *testing.T) {
	editor := new(MockAssignmentEditor)
	editor.On("RemovePalletFormatka", mock.Anything, int64(7), int64(101), "jan").Return("Usunięto", nil)

	rr := do(editor, http.MethodDelete, "/api/pallets/7/formatki/101", `{"operator": "jan"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Usunięto")
	editor.AssertExpectations(t)
}

func TestRemoveFormatka_BadPath(t *testing.T) {
	editor := new(MockAssignmentEditor)

	rr := do(editor, http.MethodDelete, "/api/pallets/7/formatki/x", `{"operator": "jan"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	editor.AssertNotCalled(t, "RemovePalletFormatka", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
