package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/srmendes/dashboard/internal/api"
	"github.com/srmendes/dashboard/internal/clients/backend"
	"github.com/srmendes/dashboard/internal/demo"
	"github.com/srmendes/dashboard/internal/service"
	"github.com/srmendes/dashboard/pkg/config"
	"github.com/srmendes/dashboard/pkg/logger"
	"github.com/srmendes/dashboard/pkg/session"
)

const (
	ReadTimeout  = 3 * time.Second
	WriteTimeout = 30 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	_, err = logger.New(cfg.Logger.Level, cfg.Logger.Format)
	panicOnErr("create logger", err)

	store, err := session.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	panicOnErr("connect to redis", err)
	defer store.Close()

	apiClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, store)

	var fallback service.FallbackProvider
	if cfg.DemoFallback {
		fallback = demo.NewProvider()
	}

	registry := service.NewRegistry(apiClient, fallback)
	agenda := service.NewAgenda(apiClient, fallback)
	reports := service.NewReports(apiClient, fallback)

	handler := api.NewHandler(registry, agenda, reports)
	mw := api.NewMiddleware()

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "dashboard started", "port", cfg.HTTP.Port, "backend", cfg.Backend.BaseURL)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		err = server.Shutdown(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}
	}()

	wg.Wait()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
