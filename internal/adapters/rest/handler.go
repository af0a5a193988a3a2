package rest

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/kmod24/moodboard/internal/core/services"
	"github.com/kmod24/moodboard/internal/metrics"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	auth    *services.Auth
	journal *services.Journal
	limiter *RateLimiter
	logger  *zap.Logger

	router *http.ServeMux
	chain  http.Handler
}

// NewHandler initializes the HTTP adapter and sets up routes. A nil limiter
// disables rate limiting.
func NewHandler(auth *services.Auth, journal *services.Journal, limiter *RateLimiter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		auth:    auth,
		journal: journal,
		limiter: limiter,
		logger:  logger,
		router:  http.NewServeMux(),
	}

	h.routes()

	var chain http.Handler = h.router
	if limiter != nil {
		chain = limiter.Handler(chain)
	}
	chain = requestLogger(logger, chain)
	h.chain = cors(chain)
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.chain.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.handle("GET /{$}", "/", h.Root)
	h.handle("GET /health", "/health", h.HealthCheck)
	h.router.Handle("GET /metrics", metrics.Handler())

	h.handle("POST /auth/register", "/auth/register", h.Register)
	h.handle("POST /auth/login", "/auth/login", h.Login)

	h.handle("POST /moods", "/moods", h.requireUser(h.CreateMood))
	h.handle("GET /moods", "/moods", h.requireUser(h.ListMoods))
	h.handle("GET /moods/{id}", "/moods/{id}", h.requireUser(h.GetMood))
}

func (h *Handler) handle(pattern, route string, fn http.HandlerFunc) {
	h.router.Handle(pattern, metrics.InstrumentHandler(route, fn))
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
