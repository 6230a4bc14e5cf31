package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	webAdapter "shopfront/internal/adapters/web"
	"shopfront/internal/ai"
	"shopfront/internal/app"
	"shopfront/internal/config"
	"shopfront/internal/core"
	"shopfront/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()
	log.Printf("using %s store, origin %s", cfg.StoreBackend, st.Origin())

	engine := core.NewEngine(st)
	if err := engine.Load(ctx); err != nil {
		log.Fatalf("load state: %v", err)
	}

	catalog := core.NewCatalogService(engine)
	cart := core.NewCartService(engine)
	orders := core.NewOrderService(engine)
	finance := core.NewFinanceService(engine)
	notifications := core.NewNotificationService(engine)
	settings := core.NewSettingsService(engine)
	users := core.NewUserService(engine)

	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set, advisor replies are canned")
	}
	advisor := ai.NewAdvisor(cfg.OpenAIAPIKey)
	video := ai.NewVideoClient(cfg.VideoAPIURL, cfg.VideoAPIKey)

	svc := app.NewAppService(catalog, cart, orders, finance, notifications, settings, users, advisor, video)
	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins, cfg.JWTSecret)

	// Reconcile snapshots written by other instances for as long as we run.
	replicator := core.NewReplicator(engine, st)
	go func() {
		if err := replicator.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("replicator stopped: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("server starting on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return store.NewPostgresStore(ctx, cfg.DatabaseURL)
	case config.BackendRedis:
		return store.NewRedisStore(ctx, cfg.RedisAddr)
	default:
		return store.NewMemoryStore(), nil
	}
}
