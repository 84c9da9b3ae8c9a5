package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zko-backend/internal/client"
	"zko-backend/internal/config"
	"zko-backend/internal/planning"
	"zko-backend/internal/reconcile"
	generate_excel "zko-backend/internal/service/generate-excel"
	"zko-backend/internal/storage/mysql"
	"zko-backend/internal/zko"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env, "errors.log")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := mysql.New(*cfg)
	if err != nil {
		log.Error("не удалось открыть БД", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	if err := storage.Migrate(ctx); err != nil {
		log.Error("не удалось применить миграции", slog.String("error", err.Error()))
		os.Exit(1)
	}

	api := client.New(cfg.Remote, log)
	checker := reconcile.NewChecker(log, api)
	planner := planning.New(log, checker, api, storage, cfg.Planning)

	limits := zko.Limits{
		MaxHeightMM: float64(cfg.Planning.MaxHeightMM),
		MaxWeightKG: cfg.Planning.MaxWeightKG,
	}
	excel := generate_excel.NewGenerateService(api, limits)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      routes(*cfg, log, storage, api, checker, planner, excel, limits),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("сервер запущен", slog.String("address", cfg.HTTPServer.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("сервер упал", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("ошибка остановки сервера", slog.String("error", err.Error()))
	}

	log.Info("сервер остановлен")
}
