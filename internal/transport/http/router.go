package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/Natili254/Eveflow/internal/clock"
	"github.com/Natili254/Eveflow/internal/metrics"
)

// RouterConfig wires services and middleware into the public API.
type RouterConfig struct {
	Events       EventLister
	Applications ApplicationService
	Payments     PaymentService
	Dashboard    DashboardService

	Auth        *Authenticator
	Limiter     *limiter.Limiter
	Logger      logrus.FieldLogger
	Clock       clock.Clock
	CORSOrigins []string
}

// NewRouter builds the HTTP handler. /health and /metrics are public; every
// other route requires a bearer token. When a limiter is configured it runs
// ahead of authentication so rejected callers are throttled by IP.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Clock == nil {
		cfg.Clock = clock.NewSystem()
	}

	r := chi.NewRouter()
	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(MethodNotAllowedHandler().ServeHTTP)

	r.Use(metrics.InstrumentHandler)
	r.Use(func(next http.Handler) http.Handler { return RequestLogger(next, cfg.Logger) })
	r.Use(CORS(cfg.CORSOrigins))

	r.Get("/health", HealthHandler(cfg.Clock))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(RateLimit(cfg.Limiter, cfg.Auth.Identify))
		}
		r.Use(cfg.Auth.Middleware)

		r.Get("/events", HandleListEvents(cfg.Events))

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", HandleListApplications(cfg.Applications))
			r.Post("/", HandleSubmitApplication(cfg.Applications))
			r.Put("/{id}", HandleUpdateApplication(cfg.Applications))
			r.Delete("/{id}", HandleWithdrawApplication(cfg.Applications))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", HandleListPayments(cfg.Payments))
			r.Put("/{id}/pay", HandlePay(cfg.Payments))
		})

		r.Get("/dashboard/stats", HandleDashboard(cfg.Dashboard))
	})

	return r
}
