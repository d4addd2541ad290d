// internal/transport/http/router.go
package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-filters/internal/common/logger"
	"storefront-filters/internal/common/observability"
)

// Pinger reports whether a backing store is reachable. *sql.DB satisfies
// it directly.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter wires the storefront API. alerts may be nil when the stock
// alert feature is disabled; its routes then answer 404. obs may be nil in
// tests.
func NewRouter(listing ListingService, alerts AlertService, db Pinger, obs *observability.Observability, log logger.Logger) http.Handler {
	h := &handlers{listing: listing, alerts: alerts, obs: obs, logger: log}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestID,
		requestLogger(log),
		recordMetrics,
	)

	r.Route("/api/v1/store", func(r chi.Router) {
		r.Get("/categories/{categoryID}/products", h.categoryProducts)
		r.Get("/categories/{categoryID}/filters", h.categoryFilters)
		if alerts != nil {
			r.Post("/products/{productID}/stock-alerts", h.createStockAlert)
		}
	})

	r.Get("/healthz", healthz(db))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
