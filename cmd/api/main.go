package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/guardtag/guardtag-backend/api/routes"
	"github.com/guardtag/guardtag-backend/internal/cart"
	"github.com/guardtag/guardtag-backend/internal/catalog"
	"github.com/guardtag/guardtag-backend/internal/checkout"
	"github.com/guardtag/guardtag-backend/internal/contacts"
	"github.com/guardtag/guardtag-backend/internal/orders"
	"github.com/guardtag/guardtag-backend/internal/payments"
	"github.com/guardtag/guardtag-backend/pkg/config"
	"github.com/guardtag/guardtag-backend/pkg/db"
	"github.com/guardtag/guardtag-backend/pkg/logger"
	"github.com/guardtag/guardtag-backend/pkg/migrate"
	"github.com/guardtag/guardtag-backend/pkg/redis"
	pkgstripe "github.com/guardtag/guardtag-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	catalogRepo := catalog.NewRepository(dbClient.DB())
	if cfg.FeatureFlags.SeedCatalog {
		if err := catalog.Seed(context.Background(), catalogRepo, logg); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}
	catalogService := catalog.NewService(catalogRepo)

	cartManager := cart.NewManager(cart.NewRedisSlot(redisClient, cfg.Cart.SlotTTL), logg)

	ordersService := orders.NewService(orders.NewRepository(dbClient.DB()), logg)
	contactsService := contacts.NewService(contacts.NewRepository(dbClient.DB()), logg)

	// Card payments are optional; without a Stripe key the storefront still
	// takes cash and bank-transfer orders.
	var gateway payments.Gateway
	if cfg.Stripe.APIKey != "" {
		stripeClient, err := pkgstripe.NewClient(context.Background(), cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap stripe", err)
			os.Exit(1)
		}
		gateway = payments.NewStripeGateway(stripeClient)
	} else {
		logg.Warn(context.Background(), "stripe api key not set, card payments disabled")
	}

	checkoutService := checkout.NewService(ordersService, gateway, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			catalogService,
			cartManager,
			checkoutService,
			ordersService,
			contactsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
