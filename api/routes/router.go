package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OmerAlfiel/Shahen-website/api/controllers"
	"github.com/OmerAlfiel/Shahen-website/api/middleware"
	"github.com/OmerAlfiel/Shahen-website/api/responses"
	"github.com/OmerAlfiel/Shahen-website/internal/contacts"
	"github.com/OmerAlfiel/Shahen-website/internal/quote"
	"github.com/OmerAlfiel/Shahen-website/pkg/config"
	pkgerrors "github.com/OmerAlfiel/Shahen-website/pkg/errors"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
	"github.com/OmerAlfiel/Shahen-website/pkg/metrics"
)

// NewRouter wires every HTTP route. limiter may be nil, which disables rate
// limiting; registry may be nil, which disables /metrics and HTTP metrics.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbState controllers.DatabaseState,
	limiter middleware.RateLimitStore,
	quoteService quote.Service,
	contactService contacts.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	var (
		httpMetrics  *metrics.HTTPMetrics
		quoteMetrics *metrics.QuoteMetrics
	)
	if registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(registry)
		quoteMetrics = metrics.NewQuoteMetrics(registry)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.SecurityHeaders(cfg.App.IsDev()),
		middleware.CORS(cfg.HTTP.FrontendURL),
		chimw.Compress(5),
		chimw.RequestSize(cfg.HTTP.BodyLimitBytes),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "Route not found"))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	readiness := map[string]controllers.Pinger{}
	if p, ok := dbState.(controllers.Pinger); ok {
		readiness["database"] = p
	}
	if p, ok := limiter.(controllers.Pinger); ok {
		readiness["redis"] = p
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	ratePolicy := middleware.RateLimitPolicy{
		Window: cfg.RateLimit.Window,
		Max:    cfg.RateLimit.Max,
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(ratePolicy, limiter, logg))

		r.Get("/health", controllers.Health(cfg, dbState))

		r.Route("/quote", func(r chi.Router) {
			r.Post("/estimate", controllers.EstimateQuote(quoteService, quoteMetrics, logg))
		})

		r.Route("/contact", func(r chi.Router) {
			r.Post("/", controllers.SubmitContact(contactService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(cfg.Admin, logg))
				r.Get("/", controllers.ListContacts(contactService, logg))
				r.Get("/search", controllers.SearchContacts(contactService, logg))
				r.Get("/stats", controllers.ContactStats(contactService, logg))
				r.Get("/{id}", controllers.GetContact(contactService, logg))
				r.Put("/{id}/status", controllers.UpdateContactStatus(contactService, logg))
				r.Delete("/{id}", controllers.DeleteContact(contactService, logg))
			})
		})
	})

	return r
}
