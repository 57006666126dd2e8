package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mymessage/storefront-gateway/api/controllers"
	aggregatecontrollers "github.com/mymessage/storefront-gateway/api/controllers/aggregate"
	cartcontrollers "github.com/mymessage/storefront-gateway/api/controllers/cart"
	"github.com/mymessage/storefront-gateway/api/middleware"
	cartsvc "github.com/mymessage/storefront-gateway/internal/cart"
	"github.com/mymessage/storefront-gateway/internal/catalog"
	checkoutsvc "github.com/mymessage/storefront-gateway/internal/checkout"
	waitlistsvc "github.com/mymessage/storefront-gateway/internal/waitlist"
	"github.com/mymessage/storefront-gateway/pkg/config"
	"github.com/mymessage/storefront-gateway/pkg/logger"
	"github.com/mymessage/storefront-gateway/pkg/redis"
	"github.com/mymessage/storefront-gateway/pkg/shopify"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	Redis            *redis.Client
	Metrics          *middleware.HTTPMetrics
	MetricsGatherer  prometheus.Gatherer
	CartRegistry     *cartsvc.Registry
	CatalogService   catalog.Service
	CheckoutService  checkoutsvc.Service
	WaitlistService  waitlistsvc.Service
	StorefrontClient *shopify.Client
	MediaHTTPClient  *http.Client
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}

	waitlistPolicy := middleware.NewRateLimitPolicy(
		"waitlist",
		cfg.RateLimit.WaitlistWindow,
		cfg.RateLimit.WaitlistIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisPinger(deps.Redis)))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/aggregate", func(r chi.Router) {
			r.Get("/collections-with-media", aggregatecontrollers.CollectionsWithMedia(deps.CatalogService, logg))
			r.Get("/product-media/{handle}", aggregatecontrollers.ProductMedia(deps.CatalogService, logg))
		})

		r.Get("/media/stream", controllers.MediaStream(deps.MediaHTTPClient, cfg.Media, logg))

		r.Post("/storefront/graphql", controllers.StorefrontQuery(deps.StorefrontClient, logg))

		r.With(middleware.RateLimit(waitlistPolicy, rateLimiter(deps.Redis), logg)).
			Post("/waitlist", controllers.WaitlistSubscribe(deps.WaitlistService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.Fetch(deps.CartRegistry, logg))
				r.Post("/items", cartcontrollers.AddItem(deps.CartRegistry, logg))
				r.Delete("/items/{productId}", cartcontrollers.RemoveItem(deps.CartRegistry, logg))
				r.Patch("/items/{productId}", cartcontrollers.SetQuantity(deps.CartRegistry, logg))
				r.Post("/open", cartcontrollers.OpenPanel(deps.CartRegistry, logg))
				r.Post("/close", cartcontrollers.ClosePanel(deps.CartRegistry, logg))
			})

			r.Post("/checkout", controllers.CheckoutCreate(deps.CheckoutService, deps.CartRegistry, logg))
		})
	})

	return r
}

// redisPinger keeps a typed-nil *redis.Client from masquerading as a
// non-nil Pinger.
func redisPinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func rateLimiter(client *redis.Client) middleware.RateLimiterStore {
	if client == nil {
		return nil
	}
	return client
}
