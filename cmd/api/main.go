package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mymessage/storefront-gateway/api/middleware"
	"github.com/mymessage/storefront-gateway/api/routes"
	"github.com/mymessage/storefront-gateway/internal/cart"
	"github.com/mymessage/storefront-gateway/internal/catalog"
	"github.com/mymessage/storefront-gateway/internal/checkout"
	"github.com/mymessage/storefront-gateway/internal/waitlist"
	"github.com/mymessage/storefront-gateway/pkg/config"
	"github.com/mymessage/storefront-gateway/pkg/logger"
	"github.com/mymessage/storefront-gateway/pkg/redis"
	"github.com/mymessage/storefront-gateway/pkg/shopify"
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

	storefrontClient, err := shopify.NewStorefrontClient(cfg.Shopify)
	if err != nil {
		logg.Error(context.Background(), "failed to build storefront client", err)
		os.Exit(1)
	}

	adminClient, err := shopify.NewAdminClient(cfg.Shopify)
	if err != nil {
		logg.Error(context.Background(), "failed to build admin client", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(adminClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build catalog service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(storefrontClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build checkout service", err)
		os.Exit(1)
	}

	var waitlistService waitlist.Service
	if cfg.Sendgrid.APIKey != "" {
		sender, err := waitlist.NewSendgridSender(cfg.Sendgrid)
		if err != nil {
			logg.Error(context.Background(), "failed to build sendgrid sender", err)
			os.Exit(1)
		}
		waitlistService, err = waitlist.NewService(sender, cfg.Sendgrid.NotifyEmail, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to build waitlist service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "sendgrid api key not set, waitlist disabled")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

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
		Handler: routes.NewRouter(routes.Deps{
			Config:           cfg,
			Logger:           logg,
			Redis:            redisClient,
			Metrics:          middleware.NewHTTPMetrics(registry),
			MetricsGatherer:  registry,
			CartRegistry:     cart.NewRegistry(),
			CatalogService:   catalogService,
			CheckoutService:  checkoutService,
			WaitlistService:  waitlistService,
			StorefrontClient: storefrontClient,
			MediaHTTPClient:  &http.Client{Timeout: cfg.Media.ProxyTimeout},
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
