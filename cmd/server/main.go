// Command server runs the autocorrect HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"autocorrect/internal/config"
	"autocorrect/internal/corrector"
	"autocorrect/internal/customdict"
	"autocorrect/internal/httpapi"
	"autocorrect/internal/lexicon"
	"autocorrect/internal/observe"
	"autocorrect/pkg/options"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to the YAML configuration file (defaults and environment when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "autocorrect: %v\n", err)
		return 1
	}

	logger := observe.NewLogger(string(cfg.Server.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownMetrics, err := observe.InitProvider(ctx)
	if err != nil {
		slog.Error("failed to init metrics provider", "err", err)
		return 1
	}
	metrics := observe.DefaultMetrics()

	var (
		loadOpts   = []lexicon.LoadOption{lexicon.WithLogger(logger)}
		engineOpts = []corrector.EngineOption{corrector.WithMetrics(metrics), corrector.WithEngineLogger(logger)}
		checkers   []httpapi.Checker
	)
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		dict := customdict.New(client)
		if err := dict.Ping(ctx); err != nil {
			slog.Warn("redis unreachable, custom words unavailable until it recovers", "addr", cfg.Redis.Addr, "err", err)
		}
		loadOpts = append(loadOpts, lexicon.WithCustomWords(dict))
		engineOpts = append(engineOpts, corrector.WithCustomDictionary(dict))
		checkers = append(checkers, httpapi.Checker{Name: "redis", Check: dict.Ping})
	}

	src := lexicon.NewFileSource(cfg.DictionaryDir, cfg.Languages)
	if err := src.Check(); err != nil {
		slog.Warn("dictionary files missing", "dir", cfg.DictionaryDir, "err", err)
	}

	store := lexicon.NewStore(src,
		lexicon.WithLoadOptions(loadOpts...),
		lexicon.WithLoadObserver(metrics.RecordLexiconLoad),
	)
	if err := store.Preload(ctx, cfg.Languages.Codes()...); err != nil {
		slog.Warn("some languages failed to preload", "err", err)
	}
	if len(store.Cached()) == 0 {
		slog.Error("no language could be loaded", "dir", cfg.DictionaryDir)
		return 1
	}

	sc := corrector.New(append(cfg.Corrector.Options(), options.WithLogger(logger))...)
	engine := corrector.NewEngine(cfg.Languages, store, sc, engineOpts...)
	checkers = append(checkers, httpapi.Checker{Name: "lexicon", Check: engine.Ready})

	api := httpapi.New(engine,
		httpapi.WithLogger(logger),
		httpapi.WithMetrics(metrics),
		httpapi.WithReadiness(checkers...),
	)
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/", api.Handler())

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening",
			"addr", cfg.Server.ListenAddr,
			"languages", store.Cached(),
			"custom_dictionary", cfg.Redis.Enabled(),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "err", err)
			return 1
		}
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	code := 0
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "err", err)
		code = 1
	}
	if err := shutdownMetrics(shutdownCtx); err != nil {
		slog.Warn("metrics shutdown error", "err", err)
	}
	slog.Info("goodbye")
	return code
}
