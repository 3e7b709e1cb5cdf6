package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/notice"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	reviews *service.ReviewCatalog,
	catalog *service.CatalogService,
	compare *service.CompareService,
	feedback *service.FeedbackService,
	notices *notice.Queue,
	healthHandler *health.Handler,
	logger *slog.Logger,
	pprofCIDRs []string,
	rateRPS int,
	rateBurst int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	reviewHandler := NewReviewHandler(reviews, logger)
	productHandler := NewProductHandler(catalog, logger)
	compareHandler := NewCompareHandler(compare, logger)
	feedbackHandler := NewFeedbackHandler(feedback, logger)
	noticeHandler := NewNoticeHandler(notices, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(rateRPS, rateBurst, logger))
		r.Use(ContentTypeJSON)

		// The product listing is public and session-free.
		r.Get("/products", productHandler.List)
		r.Get("/products/{productID}", productHandler.Get)

		// Review reads are public; mutations need a session.
		r.Get("/pages/{pageID}/reviews", reviewHandler.List)
		r.Get("/pages/{pageID}/reviews/summary", reviewHandler.Summary)

		r.Group(func(r chi.Router) {
			r.Use(SessionFromHeader)

			r.Post("/pages/{pageID}/reviews", reviewHandler.Submit)
			r.Post("/pages/{pageID}/reviews/{reviewID}/helpful", reviewHandler.MarkHelpful)
			r.Post("/pages/{pageID}/reviews/{reviewID}/report", reviewHandler.Report)

			r.Get("/compare", compareHandler.Get)
			r.Get("/compare/status", compareHandler.Status)
			r.Delete("/compare", compareHandler.Clear)
			r.Post("/compare/items", compareHandler.Toggle)
			r.Delete("/compare/items/{productID}", compareHandler.Remove)

			r.Post("/feedback", feedbackHandler.Submit)
			r.Get("/feedback", feedbackHandler.List)

			r.Get("/notices", noticeHandler.List)
			r.Delete("/notices/{noticeID}", noticeHandler.Dismiss)
		})
	})

	return r
}
