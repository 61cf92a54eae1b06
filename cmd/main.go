package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	httpctx "github.com/gc02/usuario-server/internal/api/http/context"
	"github.com/gc02/usuario-server/internal/api/http/router"
	httpServer "github.com/gc02/usuario-server/internal/api/http/server"
	"github.com/gc02/usuario-server/internal/config"
	"github.com/gc02/usuario-server/internal/content"
	"github.com/gc02/usuario-server/internal/identity"
	"github.com/gc02/usuario-server/internal/logger"
	"github.com/gc02/usuario-server/internal/model"
	"github.com/gc02/usuario-server/internal/repository/postgres"
	"github.com/gc02/usuario-server/internal/server"
	"github.com/gc02/usuario-server/internal/service"
	storage "github.com/gc02/usuario-server/internal/storage/minio"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	logger, closeLog := newLogger(cfg.Log)
	defer closeLog.Close()

	conn, err := postgres.NewConnection(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer conn.Close()
	store := postgres.NewStore(conn)

	idp, err := newIdentityProvider(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize identity provider", "error", err, "mode", cfg.Identity.Mode)
	}

	contentClient := content.NewClient(cfg.Content.BaseURL, cfg.Content.Timeout, nil)

	var avatars model.Storage
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		avatars = client
	}

	limit := cfg.Content.MaxConcurrency
	services := router.Services{
		Users:     service.NewUser(store, idp, contentClient, avatars, limit, logger),
		Artists:   service.NewArtist(store, contentClient, limit, logger),
		Cart:      service.NewCart(store, contentClient, limit, logger),
		Wishlist:  service.NewWishlist(store, contentClient, limit, logger),
		Favorites: service.NewFavorites(store, contentClient, limit, logger),
		Purchases: service.NewPurchase(store, contentClient, limit, logger),
		Health:    store,
	}

	engine := router.New(services, idp, httpctx.NewManager(), logger, router.Options{
		RateLimit:      cfg.HTTP.RateLimit,
		RateBurst:      cfg.HTTP.RateBurst,
		AvatarUploads:  avatars != nil,
		MaxAvatarBytes: cfg.Storage.MaxAvatarBytes,
	}).Register()

	srv := httpServer.NewHTTPServer(withCORS(engine, cfg.HTTP.CORSOrigins), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("starting server", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newLogger(cfg config.Log) (*logger.Logger, io.Closer) {
	if cfg.File == "" {
		return logger.New(cfg.Level), nopCloser{}
	}
	return logger.NewWithFile(cfg.Level, logger.FileOptions{
		Path:       cfg.File,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
	})
}

func newIdentityProvider(ctx context.Context, cfg *config.Config) (model.IdentityProvider, error) {
	if cfg.Identity.Mode == config.IdentityLocal {
		return identity.NewLocal(cfg.Identity.LocalSecret), nil
	}
	return identity.NewFirebase(ctx, identity.Credentials{
		ProjectID:   cfg.Firebase.ProjectID,
		ClientEmail: cfg.Firebase.ClientEmail,
		PrivateKey:  cfg.Firebase.PrivateKey,
		File:        cfg.Firebase.CredentialsFile,
	})
}

func withCORS(next http.Handler, origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Location", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})(next)
}
