// verify-store dumps every snapshot in the configured store with revisions
// and timestamps. Useful for checking what a running instance actually
// persisted and whether two instances converged.
//
// Usage: go run ./cmd/verify-store
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

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

	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	for _, key := range core.AllKeys() {
		env, err := st.Get(ctx, key)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				fmt.Printf("%-15s (never written)\n", key)
				continue
			}
			log.Fatalf("get %q: %v", key, err)
		}

		// Decode untyped and revive timestamps the way a consumer without
		// the Go types would see the data.
		var raw any
		if err := json.Unmarshal(env.Data, &raw); err != nil {
			log.Fatalf("decode %q: %v", key, err)
		}
		raw = store.ReviveDates(raw)

		count := ""
		if items, ok := raw.([]any); ok {
			count = fmt.Sprintf(", %d items", len(items))
		}
		fmt.Printf("%-15s rev %-4d updated %s by %s%s\n",
			key, env.Rev, env.UpdatedAt.Format("2006-01-02 15:04:05"), env.Origin, count)
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
