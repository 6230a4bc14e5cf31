// seed is a one-shot tool that loads a demo catalog, the shop profile, the
// payment directory, and a default admin user into the configured store.
// Existing collections are left alone so it is safe to re-run.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

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
	if cfg.StoreBackend == config.BackendMemory {
		log.Fatal("seeding a memory store is pointless; set STORE_BACKEND to postgres or redis")
	}

	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	engine := core.NewEngine(st)
	if err := engine.Load(ctx); err != nil {
		log.Fatalf("load state: %v", err)
	}

	seedProfile(ctx, engine)
	seedCatalog(ctx, engine)
	seedAdminUser(ctx, engine)

	log.Println("seed complete")
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.StoreBackend == config.BackendRedis {
		return store.NewRedisStore(ctx, cfg.RedisAddr)
	}
	return store.NewPostgresStore(ctx, cfg.DatabaseURL)
}

func seedProfile(ctx context.Context, engine *core.Engine) {
	settings := core.NewSettingsService(engine)
	if settings.Profile(ctx).Name != "" {
		log.Println("shop profile present, skipping")
		return
	}
	err := settings.UpdateProfile(ctx, core.ShopProfile{
		Name:          "Solea Footwear",
		Owner:         "Imran Malik",
		Address:       "Shop 14, Liberty Market, Lahore",
		ContactPerson: "Imran Malik",
		ContactMobile: "0300-8765432",
		Email:         "contact@solea.example",
	})
	if err != nil {
		log.Fatalf("seed profile: %v", err)
	}
	if _, err := settings.AddBankAccount(ctx, core.BankAccount{
		BankName:      "Meezan Bank",
		AccountTitle:  "Solea Footwear",
		AccountNumber: "0101-2345678-9",
	}); err != nil {
		log.Fatalf("seed bank account: %v", err)
	}
	if _, err := settings.AddWallet(ctx, core.WalletAccount{
		WalletName:   "JazzCash",
		AccountTitle: "Solea Footwear",
		WalletNumber: "0300-8765432",
	}); err != nil {
		log.Fatalf("seed wallet: %v", err)
	}
	log.Println("shop profile seeded")
}

func seedCatalog(ctx context.Context, engine *core.Engine) {
	catalog := core.NewCatalogService(engine)
	if len(catalog.List(ctx)) > 0 {
		log.Println("catalog present, skipping")
		return
	}

	demo := []core.ProductInput{
		{
			Name: "Runner Pro", Brand: "Servis", Category: "Men", Subcategory: "Trainers",
			Price: decimal.NewFromInt(4500),
			Sizes: []string{"40", "41", "42", "43"}, Colors: []string{"Black", "Grey"},
			Stock:       evenStock([]string{"Black", "Grey"}, []string{"40", "41", "42", "43"}, 5),
			Description: "Lightweight daily trainer with a cushioned sole.",
		},
		{
			Name: "Court Classic", Brand: "Bata", Category: "Women", Subcategory: "Flats",
			Price: decimal.NewFromInt(3200),
			Sizes: []string{"36", "37", "38", "39"}, Colors: []string{"White", "Beige"},
			Stock:       evenStock([]string{"White", "Beige"}, []string{"36", "37", "38", "39"}, 4),
			Description: "Low-profile court shoe for everyday wear.",
		},
		{
			Name: "Trail Max", Brand: "NDure", Category: "Men", Subcategory: "Hiking",
			Price: decimal.NewFromInt(6800),
			Sizes: []string{"41", "42", "43", "44"}, Colors: []string{"Olive", "Black"},
			Stock:       evenStock([]string{"Olive", "Black"}, []string{"41", "42", "43", "44"}, 2),
			Description: "Grippy outsole and reinforced toe for rough ground.",
		},
		{
			Name: "Hopscotch", Brand: "Bata", Category: "Kids", Subcategory: "School",
			Price: decimal.NewFromInt(1900),
			Sizes: []string{"28", "30", "32"}, Colors: []string{"Blue", "Pink"},
			Stock:       evenStock([]string{"Blue", "Pink"}, []string{"28", "30", "32"}, 6),
			Description: "Velcro-strap school shoe that survives the playground.",
		},
	}
	for _, in := range demo {
		if _, err := catalog.Add(ctx, in); err != nil {
			log.Fatalf("seed product %s: %v", in.Name, err)
		}
	}
	log.Printf("catalog seeded with %d products", len(demo))
}

// evenStock stocks every (color, size) pair with the same quantity.
func evenStock(colors, sizes []string, qty int) []core.StockEntry {
	var out []core.StockEntry
	for _, c := range colors {
		for _, s := range sizes {
			out = append(out, core.StockEntry{Color: c, Size: s, Quantity: qty})
		}
	}
	return out
}

func seedAdminUser(ctx context.Context, engine *core.Engine) {
	users := core.NewUserService(engine)
	if len(users.List(ctx)) > 0 {
		log.Println("users present, skipping")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("change-me-now"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	if _, err := users.Add(ctx, "Admin", "admin@solea.example", "Admin", string(hash)); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}
	log.Println("admin user seeded (admin@solea.example, password change-me-now)")
}
