// Command mahasiswa-api serves the student-record API over a local SQLite
// database, for running and testing mahasiswa-cli without the remote
// service.
//
//	mahasiswa-api --config config/local.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/mahasiswa/internal/config"
	"github.com/aanand-mishra/mahasiswa/internal/http/handlers/mahasiswa"
	"github.com/aanand-mishra/mahasiswa/internal/logger"
	"github.com/aanand-mishra/mahasiswa/internal/messages"
	"github.com/aanand-mishra/mahasiswa/internal/storage/sqlite"
	"github.com/aanand-mishra/mahasiswa/internal/validate"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg := config.MustLoad(config.Path(*configPath))

	log := logger.Setup(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	log.Info("starting mahasiswa-api",
		slog.String("env", cfg.Env),
		slog.String("version", version),
	)

	catalog, err := messages.New(cfg.Locale)
	if err != nil {
		log.Error("failed to load messages", slog.String("error", err.Error()))
		os.Exit(1)
	}
	v, err := validate.NewTranslated(catalog.Translator())
	if err != nil {
		log.Error("failed to initialise validator", slog.String("error", err.Error()))
		os.Exit(1)
	}

	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised", slog.String("path", cfg.StoragePath))

	router := http.NewServeMux()
	mahasiswa.Register(router, storage, v)

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
	}

	if err := storage.Close(); err != nil {
		log.Error("failed to close storage", slog.String("error", err.Error()))
	}

	log.Info("server stopped gracefully")
}
