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

	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/files-manager/files-service/cmd/middleware"
	"github.com/files-manager/files-service/internal/api"
	"github.com/files-manager/files-service/internal/api/handlers"
	"github.com/files-manager/files-service/internal/blob"
	"github.com/files-manager/files-service/internal/configuration"
	"github.com/files-manager/files-service/internal/files"
	"github.com/files-manager/files-service/internal/identity"
	"github.com/files-manager/files-service/internal/metadata"
	"github.com/files-manager/files-service/internal/queue"
	"github.com/files-manager/files-service/internal/scan"
	"github.com/files-manager/files-service/internal/worker"
)

const serviceName = "files-service"

func main() {
	cfg := configuration.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *configuration.Config, log *slog.Logger) error {
	store, err := metadata.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer store.Close()
	log.Info("connected to PostgreSQL")

	resolver, cache, err := buildResolver(ctx, cfg)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	blobs, err := buildBlobStore(ctx, cfg)
	if err != nil {
		return err
	}

	var jobs queue.Queue
	if cfg.NATSURL != "" {
		natsQueue, err := queue.NewNATS(cfg.NATSURL, log)
		if err != nil {
			return err
		}
		defer natsQueue.Close()
		jobs = natsQueue
		log.Info("connected to NATS", "url", cfg.NATSURL)
	} else {
		jobs = queue.NewMemory(1024)
	}

	var scanner *scan.Scanner
	if cfg.CLAMAVURL != "" {
		scanner = scan.NewScanner(cfg.CLAMAVURL, log)
	}

	svc := files.NewService(store, blobs, jobs, scanner, cfg.Storage.FolderPath, log)
	go worker.NewRenditions(jobs, store, blobs, log).Run(ctx)

	tracer.Start(tracer.WithService(serviceName))
	defer tracer.Stop()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gintrace.Middleware(serviceName))

	var cachePinger handlers.Pinger
	if cache != nil {
		cachePinger = cache
	}
	api.RegisterRoutes(router, api.Deps{
		Files: handlers.NewFileHandler(svc, log),
		App:   handlers.NewAppHandler(store, cachePinger),
		Auth:  middleware.Authenticate(resolver),
	})

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("server starting", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped")
	return nil
}

func buildResolver(ctx context.Context, cfg *configuration.Config) (identity.Resolver, *identity.Redis, error) {
	if cfg.Auth.Backend == "oidc" {
		resolver, err := identity.NewOIDC(ctx, cfg.Auth.OIDCIssuer)
		return resolver, nil, err
	}
	cache, err := identity.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	return cache, cache, nil
}

func buildBlobStore(ctx context.Context, cfg *configuration.Config) (blob.Store, error) {
	if cfg.Storage.Backend == "minio" {
		return blob.NewMinio(ctx,
			cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey,
			cfg.MinIO.BucketName, cfg.MinIO.UseSSL)
	}
	return blob.NewLocal(), nil
}
