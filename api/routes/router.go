package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tahweela/tahweela-backend/api/controllers"
	cartcontrollers "github.com/tahweela/tahweela-backend/api/controllers/cart"
	ordercontrollers "github.com/tahweela/tahweela-backend/api/controllers/orders"
	"github.com/tahweela/tahweela-backend/api/middleware"
	"github.com/tahweela/tahweela-backend/internal/auth"
	"github.com/tahweela/tahweela-backend/internal/catalog"
	"github.com/tahweela/tahweela-backend/internal/checkout"
	"github.com/tahweela/tahweela-backend/internal/orders"
	"github.com/tahweela/tahweela-backend/pkg/config"
	"github.com/tahweela/tahweela-backend/pkg/enums"
	"github.com/tahweela/tahweela-backend/pkg/logger"
	"github.com/tahweela/tahweela-backend/pkg/metrics"
	pkgredis "github.com/tahweela/tahweela-backend/pkg/redis"
)

// Dependencies are the services the HTTP surface dispatches to. DB and Redis
// are only pinged by the readiness probe; a nil Idempotency store disables replay.
type Dependencies struct {
	DB          controllers.Pinger
	Redis       controllers.Pinger
	Idempotency pkgredis.IdempotencyStore
	Auth        *auth.Service
	Catalog     catalog.Service
	Carts       cartcontrollers.Carts
	Checkout    checkout.Service
	Orders      orders.Service
	HTTPMetrics *metrics.HTTPMetrics
	Metrics     http.Handler
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Logging(logg, deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"db":    deps.DB,
			"redis": deps.Redis,
		}))
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductSearch(deps.Catalog, logg))
		r.Get("/{productId}", controllers.ProductGet(deps.Catalog, logg))
	})

	r.Post("/api/v1/auth/login", controllers.AuthLogin(deps.Auth, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Auth, logg))
		r.Use(middleware.Idempotency(deps.Idempotency, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
			r.Get("/me", controllers.AuthMe(deps.Auth, logg))
			r.Patch("/me", controllers.AuthUpdateProfile(deps.Auth, logg))
			r.Get("/state", controllers.AuthState(deps.Auth, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(deps.Carts, logg))
			r.Delete("/", cartcontrollers.CartClear(deps.Carts, logg))
			r.Put("/open", cartcontrollers.CartSetOpen(deps.Carts, logg))
			r.Post("/items", cartcontrollers.CartAddItem(deps.Carts, deps.Catalog, logg))
			r.Patch("/items", cartcontrollers.CartUpdateItem(deps.Carts, logg))
			r.Delete("/items", cartcontrollers.CartRemoveItem(deps.Carts, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordercontrollers.BuyerOrders(deps.Orders, logg))
			r.Get("/{orderId}", ordercontrollers.BuyerOrderDetail(deps.Orders, logg))
			r.Post("/{orderId}/cancel", ordercontrollers.BuyerCancelOrder(deps.Orders, logg))
			r.With(middleware.RequireUserType(logg, enums.UserTypeSupplier, enums.UserTypeAdmin)).
				Patch("/{orderId}/status", ordercontrollers.OrderUpdateStatus(deps.Orders, logg))
		})
	})

	return r
}
