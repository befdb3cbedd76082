package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guardtag/guardtag-backend/api/controllers"
	"github.com/guardtag/guardtag-backend/api/middleware"
	"github.com/guardtag/guardtag-backend/internal/cart"
	"github.com/guardtag/guardtag-backend/internal/catalog"
	checkoutsvc "github.com/guardtag/guardtag-backend/internal/checkout"
	"github.com/guardtag/guardtag-backend/internal/contacts"
	"github.com/guardtag/guardtag-backend/internal/orders"
	"github.com/guardtag/guardtag-backend/pkg/config"
	"github.com/guardtag/guardtag-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisPinger controllers.Pinger,
	catalogService catalog.Service,
	cartManager *cart.Manager,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
	contactsService contacts.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": dbPinger,
			"redis":    redisPinger,
		}))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Get("/category/{category}", controllers.ListProductsByCategory(catalogService, logg))
			r.Get("/{id}", controllers.GetProduct(catalogService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(cartManager, logg))
				r.Delete("/", controllers.ClearCart(cartManager, logg))
				r.Post("/items", controllers.AddCartItem(cartManager, catalogService, logg))
				r.Patch("/items", controllers.UpdateCartItem(cartManager, logg))
				r.Delete("/items", controllers.RemoveCartItem(cartManager, logg))
				r.Post("/open", controllers.OpenCart(cartManager, logg))
				r.Post("/close", controllers.CloseCart(cartManager, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", controllers.Checkout(checkoutService, cartManager, logg))
				r.Post("/confirm-payment", controllers.ConfirmPayment(checkoutService, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/{id}", controllers.GetOrder(ordersService, logg))
			r.Post("/{id}/confirm", controllers.ConfirmOrder(ordersService, logg))
		})

		r.Post("/contact", controllers.SubmitContact(contactsService, logg))
	})

	return r
}
