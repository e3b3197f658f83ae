package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/mixtapehq/mixtape/internal/auth"
	"github.com/mixtapehq/mixtape/internal/repositories"
	"github.com/mixtapehq/mixtape/internal/services"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// Options holds the dependencies for the API.
type Options struct {
	Users     *repositories.UserRepository
	Playlists *repositories.PlaylistRepository
	Tracks    *repositories.TrackRepository
	Catalog   services.Catalog
	Tokens    *auth.TokenIssuer
	Logger    *log.Logger

	// RequestsPerSecond bounds the request rate across the API.
	// Zero disables limiting.
	RequestsPerSecond float64
}

// API composes the repositories, catalog proxy, and token issuer behind the
// HTTP surface. Stateless per request: the only state it holds are its
// collaborators.
type API struct {
	users     *repositories.UserRepository
	playlists *repositories.PlaylistRepository
	tracks    *repositories.TrackRepository
	catalog   services.Catalog
	tokens    *auth.TokenIssuer
	logger    *log.Logger
	limiter   *rate.Limiter
}

// New creates the API from its options.
func New(opts *Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		// Fractional rates truncate to a zero burst, which would reject
		// every request including the first.
		burst := max(1, int(opts.RequestsPerSecond))
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &API{
		users:     opts.Users,
		playlists: opts.Playlists,
		tracks:    opts.Tracks,
		catalog:   opts.Catalog,
		tokens:    opts.Tokens,
		logger:    logger,
		limiter:   limiter,
	}
}

// RegisterHandlers mounts all API routes on the given router.
func (a *API) RegisterHandlers(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(a.loggingMiddleware)
	if a.limiter != nil {
		api.Use(a.rateLimitMiddleware)
	}

	api.HandleFunc("/health", a.healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", a.registerHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", a.loginHandler).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(a.authMiddleware)

	protected.HandleFunc("/playlists", a.playlistListHandler).Methods(http.MethodGet)
	protected.HandleFunc("/playlists", a.playlistCreateHandler).Methods(http.MethodPost)
	protected.HandleFunc("/playlists/{id}", a.playlistGetHandler).Methods(http.MethodGet)
	protected.HandleFunc("/playlists/{id}", a.playlistUpdateHandler).Methods(http.MethodPut)
	protected.HandleFunc("/playlists/{id}", a.playlistDeleteHandler).Methods(http.MethodDelete)
	protected.HandleFunc("/playlists/{playlistId}/songs", a.songAddHandler).Methods(http.MethodPost)
	protected.HandleFunc("/playlists/{playlistId}/songs/{songId}", a.songRemoveHandler).Methods(http.MethodDelete)
	protected.HandleFunc("/search", a.searchHandler).Methods(http.MethodGet)
}

// healthHandler reports liveness.
func (a *API) healthHandler(w http.ResponseWriter, r *http.Request) {
	serveJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
