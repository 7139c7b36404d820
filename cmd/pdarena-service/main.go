// Package main provides the pdarena-service entrypoint: it wires the
// Persistence Store, Auth Verifier client, Sandbox Executor client,
// Matchup Queue, Ongoing-Task Registry, Result Broadcaster, Worker
// Pool, and HTTP/WebSocket API into one running process.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"pdarena.dev/service/admission"
	"pdarena.dev/service/api"
	"pdarena.dev/service/archive"
	"pdarena.dev/service/auth"
	"pdarena.dev/service/broadcast"
	"pdarena.dev/service/config"
	"pdarena.dev/service/logx"
	"pdarena.dev/service/pubsub"
	"pdarena.dev/service/queue"
	"pdarena.dev/service/sandbox"
	"pdarena.dev/service/store"
	"pdarena.dev/service/types"
	"pdarena.dev/service/worker"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func main() {
	app := &cli.App{
		Name:  "pdarena-service",
		Usage: "Iterated Prisoner's Dilemma tournament service",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to pdarena.yaml config overlay"},
			&cli.StringFlag{Name: "database-url", Usage: "Postgres connection URL", EnvVars: []string{"PDARENA_DATABASE_URL"}},
			&cli.StringFlag{Name: "site-external-url", Usage: "Public URL this service is reachable at", EnvVars: []string{"PDARENA_SITE_EXTERNAL_URL"}},
			&cli.StringFlag{Name: "auth-service-url", Usage: "Auth Verifier service base URL", EnvVars: []string{"PDARENA_AUTH_SERVICE_URL"}},
			&cli.StringFlag{Name: "sandbox-service-url", Aliases: []string{"pythonbox-service-url"}, Usage: "Sandbox Executor service base URL", EnvVars: []string{"PDARENA_SANDBOX_SERVICE_URL"}},
			&cli.StringFlag{Name: "redis-url", Usage: "Optional Redis URL for cross-process broadcast mirroring", EnvVars: []string{"PDARENA_REDIS_URL"}},
			&cli.StringFlag{Name: "archive-root", Usage: "Optional filesystem root for Hive-partitioned match resolution archives", EnvVars: []string{"PDARENA_ARCHIVE_ROOT"}},
			&cli.IntFlag{Name: "port", Usage: "HTTP bind port", Value: 0},
			&cli.IntFlag{Name: "workers", Usage: "Worker Pool size", Value: 0},
			&cli.StringFlag{Name: "log-level", Usage: "Log level: debug, info, warn, error", Value: ""},
		},
		Action: runAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "pdarena-service: %v\n", err)
		os.Exit(exitFailure)
	}
	os.Exit(exitSuccess)
}

func runAction(c *cli.Context) error {
	cfg := config.Config{
		DatabaseURL:       c.String("database-url"),
		SiteExternalURL:   c.String("site-external-url"),
		AuthServiceURL:    c.String("auth-service-url"),
		SandboxServiceURL: c.String("sandbox-service-url"),
		RedisURL:          c.String("redis-url"),
		ArchiveRoot:       c.String("archive-root"),
		Port:              c.Int("port"),
		Workers:           c.Int("workers"),
		LogLevel:          c.String("log-level"),
	}

	if path := c.String("config"); path != "" {
		f, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = cfg.Merge(f)
	} else {
		cfg = cfg.Merge(config.File{})
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logx.New()

	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	authClient, err := auth.New(auth.Config{ServiceURL: cfg.AuthServiceURL, Timeout: cfg.RequestTimeout})
	if err != nil {
		return fmt.Errorf("create auth client: %w", err)
	}
	defer authClient.Close()

	sandboxClient, err := sandbox.New(sandbox.Config{ServiceURL: cfg.SandboxServiceURL, Timeout: cfg.RequestTimeout})
	if err != nil {
		return fmt.Errorf("create sandbox client: %w", err)
	}
	defer sandboxClient.Close()

	q := queue.New()
	registry := queue.NewRegistry()
	broadcaster := broadcast.New()

	pool := worker.New(worker.Config{
		Store:       st,
		Sandbox:     sandboxClient,
		Queue:       q,
		Registry:    registry,
		Broadcaster: broadcaster,
		Logger:      logger,
		Workers:     cfg.Workers,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go pool.Run(ctx)

	if cfg.RedisURL != "" {
		mirror, err := pubsub.New(pubsub.Config{URL: cfg.RedisURL}, logger)
		if err != nil {
			return fmt.Errorf("create pubsub mirror: %w", err)
		}
		defer mirror.Close()
		go mirror.Run(ctx, broadcaster)
	}

	if cfg.ArchiveRoot != "" {
		if _, err := archive.New("pdarena", cfg.ArchiveRoot); err != nil {
			return fmt.Errorf("create archiver: %w", err)
		}
		// The Archiver is wired for explicit operator-triggered exports
		// (cli/cmd-style tooling); the live service does not itself
		// stream every resolution into cold storage.
	}

	admissionService := admission.New(st, authClient, q, logger)

	info := types.Info{Service: "pdarena-service", VersionMajor: 0, VersionMinor: 6, VersionRev: 1}
	server := api.New(admissionService, st, broadcaster, logger, info)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.Router(),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("pdarena-service listening", map[string]any{"port": cfg.Port, "workers": cfg.Workers})
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}
