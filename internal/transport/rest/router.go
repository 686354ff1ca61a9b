package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/qaza-tracker/internal/config"
	"github.com/heartmarshall/qaza-tracker/internal/transport/middleware"
)

// ExecPath is where the gateway actions are served.
const ExecPath = "/exec"

// RouterDeps collects what NewRouter mounts. Limiter and Metrics are optional.
type RouterDeps struct {
	Logger  *slog.Logger
	Gateway *GatewayHandler
	Health  *HealthHandler
	Metrics *middleware.Metrics
	Limiter *middleware.RateLimiter
	CORS    config.CORSConfig
}

// NewRouter builds the ledgerd HTTP handler.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Recovery(d.Logger),
		middleware.Logger(d.Logger),
	)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.CORS(d.CORS))

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		if d.Limiter != nil {
			r.Use(d.Limiter.Limit)
		}
		r.Get(ExecPath, d.Gateway.Read)
		r.Post(ExecPath, d.Gateway.Write)
	})

	return r
}
