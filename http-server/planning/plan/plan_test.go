package plan

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

	"zko-backend/internal/planning"
	"zko-backend/internal/presenter"
	"zko-backend/internal/zko"
)

type MockPlanningStarter struct {
	mock.Mock
}

func (m *MockPlanningStarter) Start(ctx context.Context, req planning.Request) (*planning.Outcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.Outcome), args.Error(1)
}

func newRouter(starter PlanningStarter) http.Handler {
	router := chi.NewRouter()
	router.Post("/api/planning/zko/{orderId}", PlanPallets(slog.Default(), starter, presenter.Options{PreviewLimit: 4}))
	return router
}

func TestPlanPallets_Done(t *testing.T) {
	starter := new(MockPlanningStarter)
	starter.On("Start", mock.Anything, planning.Request{
		OrderID:            28,
		MaxHeightMM:        1440,
		MaxPiecesPerPallet: 80,
		Operator:           "jan",
	}).Return(&planning.Outcome{
		OrderID: 28,
		State:   planning.StateDone,
		Pallets: []zko.Pallet{{ID: 1, SztukTotal: 300}, {ID: 2, SztukTotal: 200}},
		Check:   &zko.QuantityCheck{Status: zko.CheckOK},
	}, nil)

	body := `{"max_wysokosc_mm": 1440, "max_formatek_na_palete": 80, "nadpisz_istniejace": false, "operator": "jan"}`
	req := httptest.NewRequest(http.MethodPost, "/api/planning/zko/28", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	newRouter(starter).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, planning.StateDone, resp.Outcome.State)
	assert.Equal(t, 2, resp.Summary.PalletCount)
	assert.Equal(t, 500, resp.Summary.TotalPieces)
	starter.AssertExpectations(t)
}

func TestPlanPallets_AwaitingConfirmation(t *testing.T) {
	starter := new(MockPlanningStarter)
	starter.On("Start", mock.Anything, mock.Anything).Return(&planning.Outcome{
		State:        planning.StateAwaitingConfirmation,
		Token:        "tok-1",
		Confirmation: &planning.Confirmation{PalletCount: 2, TotalPieces: 500, Status: zko.CheckNeedsFix, RecommendOverwrite: true},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/planning/zko/28", strings.NewReader(`{"operator": "jan"}`))
	rr := httptest.NewRecorder()

	newRouter(starter).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Contains(t, rr.Body.String(), `"token":"tok-1"`)
	assert.Contains(t, rr.Body.String(), `"zalecane_nadpisanie":true`)
}

func TestPlanPallets_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "busy", err: zko.NewConflictError("planning", "Planowanie ZKO 28 jest już w toku"), code: http.StatusConflict},
		{name: "validation", err: zko.NewValidationError("planning", "operator jest wymagany"), code: http.StatusBadRequest},
		{name: "remote", err: zko.NewRemoteFault("client", 500, "Błąd funkcji planowania"), code: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			starter := new(MockPlanningStarter)
			starter.On("Start", mock.Anything, mock.Anything).Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/api/planning/zko/28", strings.NewReader(`{"operator": "jan"}`))
			rr := httptest.NewRecorder()

			newRouter(starter).ServeHTTP(rr, req)

			assert.Equal(t, tt.code, rr.Code)
			assert.Contains(t, rr.Body.String(), zko.UserMessage(tt.err))
		})
	}
}

func TestPlanPallets_BadInput(t *testing.T) {
	starter := new(MockPlanningStarter)

	for _, tc := range []struct{ path, body string }{
		{"/api/planning/zko/abc", `{"operator": "jan"}`},
		{"/api/planning/zko/28", `{`},
	} {
		req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
		rr := httptest.NewRecorder()

		newRouter(starter).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	}

	starter.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
}
