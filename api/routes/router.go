package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tripbazaar/travel-backend/api/controllers"
	bookingcontrollers "github.com/tripbazaar/travel-backend/api/controllers/booking"
	hotelcontrollers "github.com/tripbazaar/travel-backend/api/controllers/hotels"
	"github.com/tripbazaar/travel-backend/api/middleware"
	internalbooking "github.com/tripbazaar/travel-backend/internal/booking"
	internalsearch "github.com/tripbazaar/travel-backend/internal/search"
	internaltxns "github.com/tripbazaar/travel-backend/internal/transactions"
	"github.com/tripbazaar/travel-backend/pkg/cache"
	"github.com/tripbazaar/travel-backend/pkg/config"
	"github.com/tripbazaar/travel-backend/pkg/db"
	"github.com/tripbazaar/travel-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cacheP cache.Pinger,
	registry *prometheus.Registry,
	searchService internalsearch.Service,
	bookingService internalbooking.Service,
	transactionsService internaltxns.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cacheP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/hotels", func(r chi.Router) {
		r.Post("/autosuggest", hotelcontrollers.Suggest(searchService, logg))
		r.Post("/search", hotelcontrollers.Search(searchService, logg))
		r.Post("/searchpackages", hotelcontrollers.SearchPackages(searchService, logg))
		r.Post("/bookingpolicy", bookingcontrollers.Policy(bookingService, logg))

		// prebook accepts anonymous callers; identity is resolved from
		// the contact details when no token is present
		r.With(middleware.OptionalAuth(cfg.JWT, logg)).
			Post("/prebook", bookingcontrollers.Prebook(bookingService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Post("/cancel", bookingcontrollers.Cancel(bookingService, logg))
			r.Post("/transactions", bookingcontrollers.Transactions(transactionsService, logg))
			r.Get("/invoice", bookingcontrollers.Invoice(transactionsService, logg))
			r.Get("/voucher", bookingcontrollers.Voucher(transactionsService, logg))
		})
	})

	return r
}
