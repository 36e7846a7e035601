package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/cliparse"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/db"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/events"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/logging"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/mediastore"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/router"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger := logging.NewSlogLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the database; the guard keeps retrying until it answers
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database open failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()
	guard := db.NewGuard(dbConn)

	media, err := openMediaStore(ctx, cfg)
	if err != nil {
		slog.Error("media storage setup failed", "error", err)
		os.Exit(1)
	}

	hub := events.NewHub()
	var publisher events.Publisher = hub
	var bridge *events.RedisBridge
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()
		bridge = events.NewRedisBridge(client, cfg.RedisChannel, hub)
		publisher = bridge
		slog.Info("event fan-out via redis", "addr", cfg.RedisAddr, "channel", cfg.RedisChannel)
	}

	deps := router.Deps{
		Config:    cfg,
		Store:     store.New(dbConn),
		DB:        guard,
		Media:     media,
		Publisher: publisher,
		Hub:       hub,
	}
	if !cfg.UseCloudUploads {
		deps.UploadDir = cfg.UploadDir
	}

	server := &http.Server{
		Handler:           router.NewRouter(deps),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Supervision tree
	hook := (&sutureslog.Handler{Logger: logger}).MustHook()
	root := suture.New("portfolio-backend", suture.Spec{
		EventHook: hook,
		Timeout:   shutdownTimeout,
	})
	root.Add(guard)
	root.Add(hub)
	if bridge != nil {
		root.Add(bridge)
	}
	root.Add(&httpService{server: server})

	slog.Info("Listening", "port", cfg.Port, "media", media.Backend(), "database", cfg.DatabaseType)
	if err := root.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}

func openMediaStore(ctx context.Context, cfg cliparse.Config) (mediastore.Store, error) {
	if cfg.UseCloudUploads {
		return mediastore.NewCloudStore(ctx, cfg.StorageBucket, cfg.GoogleCredentials)
	}
	return mediastore.NewLocalStore(cfg.UploadDir)
}

// httpService runs the HTTP server under the supervisor
type httpService struct {
	server *http.Server
}

func (s *httpService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}

func (s *httpService) String() string {
	return "http-server"
}
