package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	generate_excel "zko-backend/http-server/generate-report/generate-excel"
	getruns "zko-backend/http-server/journal/get"
	"zko-backend/http-server/pallets/assign"
	getpallets "zko-backend/http-server/pallets/get"
	"zko-backend/http-server/planning/confirm"
	"zko-backend/http-server/planning/plan"
	deleteposition "zko-backend/http-server/positions/delete"
	"zko-backend/http-server/positions/formatki"
	updateposition "zko-backend/http-server/positions/update"
	"zko-backend/http-server/quantities/check"
	"zko-backend/http-server/status/change"
	"zko-backend/internal/client"
	"zko-backend/internal/config"
	"zko-backend/internal/middleware/auth"
	"zko-backend/internal/planning"
	"zko-backend/internal/presenter"
	"zko-backend/internal/reconcile"
	excelservice "zko-backend/internal/service/generate-excel"
	"zko-backend/internal/storage/mysql"
	"zko-backend/internal/zko"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	storage *mysql.Storage,
	api *client.Client,
	checker *reconcile.Checker,
	planner *planning.Planner,
	excel *excelservice.GenerateExcelService,
	limits zko.Limits,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	opts := presenter.Options{PreviewLimit: cfg.Planning.PreviewLimit, Limits: limits}

	// планирование палет
	router.Post("/api/planning/zko/{orderId}", plan.PlanPallets(log, planner, opts))
	router.Post("/api/planning/confirm/{token}", confirm.ConfirmOverwrite(log, planner, opts))

	// палеты и сверка количеств
	router.Get("/api/pallets/zko/{orderId}/check-quantities", check.CheckQuantities(log, checker))
	router.Get("/api/pallets/zko/{orderId}/details", getpallets.GetPalletDetails(log, api, opts))
	router.Get("/api/pallets/zko/{orderId}/report", generate_excel.GenerateReportExcel(log, excel))
	router.Post("/api/pallets/{palletId}/formatki", assign.AddFormatka(log, api))
	router.Put("/api/pallets/{palletId}/formatki/{formatkaId}", assign.UpdateFormatka(log, api))
	router.Delete("/api/pallets/{palletId}/formatki/{formatkaId}", assign.RemoveFormatka(log, api))

	// позиции ZKO
	router.Put("/api/zko/pozycje/{positionId}", updateposition.UpdatePosition(log, api))
	router.Delete("/api/zko/pozycje/{positionId}", deleteposition.DeletePosition(log, api))
	router.Get("/api/zko/pozycje/{positionId}/formatki", formatki.GetFormatki(log, api))

	// этапы
	router.Post("/api/zko/status/change", change.ChangeStatus(log, api))
	router.Get("/api/zko/status/stations", change.GetStations())

	router.Get("/health", health(storage))
	router.Handle("/metrics", promhttp.Handler())

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))
	adminRouter.Get("/journal", getruns.GetRuns(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}

type pinger interface {
	Ping(ctx context.Context) error
}

func health(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, map[string]string{"status": "db unavailable"})
			return
		}
		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}
