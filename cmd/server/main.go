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

	"github.com/joho/godotenv"

	"github.com/hongminglow/hospcare-be/internal/auth"
	"github.com/hongminglow/hospcare-be/internal/config"
	"github.com/hongminglow/hospcare-be/internal/logging"
	"github.com/hongminglow/hospcare-be/internal/server"
	"github.com/hongminglow/hospcare-be/internal/service"
	"github.com/hongminglow/hospcare-be/internal/storage"
	"github.com/hongminglow/hospcare-be/internal/storage/cache"
	"github.com/hongminglow/hospcare-be/internal/storage/mongo"
	"github.com/hongminglow/hospcare-be/internal/storage/postgres"
	"github.com/hongminglow/hospcare-be/internal/upload"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.New(cfg.LogFormat)
	slog.SetDefault(logger)

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("init database", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis unavailable; doctor listing is uncached", slog.Any("error", err))
		} else {
			defer client.Close()
			store = cache.NewDoctorCache(store, client, cfg.DoctorsCacheTTL, logger)
		}
	}

	files, err := openUploads(ctx, cfg)
	if err != nil {
		logger.Error("init upload storage", slog.Any("error", err))
		os.Exit(1)
	}
	uploads := upload.NewAcceptor(files)

	hasher := auth.NewHasher()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	srv := server.New(cfg, server.Deps{
		Registrar:     service.NewRegistrar(store, hasher, tokens, uploads, logger),
		Authenticator: service.NewAuthenticator(store, hasher, tokens, logger),
		Sessions:      service.NewSessionValidator(tokens),
		Directory:     service.NewDirectory(store, logger),
		Logger:        logger,
	})

	go func() {
		logger.Info("HospCare API listening", slog.String("addr", cfg.HTTPAddress()), slog.String("env", cfg.AppEnv))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", slog.Any("error", err))
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.UserStore, func(), error) {
	driver, err := cfg.StoreDriver()
	if err != nil {
		return nil, nil, err
	}
	if driver == config.DriverPostgres {
		s, err := postgres.NewUserStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	s, err := mongo.NewUserStore(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

func openUploads(ctx context.Context, cfg config.Config) (upload.Storage, error) {
	if cfg.UploadBackend == config.UploadS3 {
		s3, err := upload.NewS3Storage(ctx, upload.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			return nil, err
		}
		return s3, nil
	}
	disk, err := upload.NewDiskStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	return disk, nil
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; relying on existing environment")
	}
}
