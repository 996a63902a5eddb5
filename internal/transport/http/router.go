package http

import (
	"log"
	"net/http"

	"github.com/MillyinVR/tovis-app-sub004/internal/auth"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewHandler assembles the service's HTTP surface: the authenticated hold
// endpoint, health, and a JSON 404 for everything else, wrapped in CORS and
// request logging.
func NewHandler(svc SlotReserver, jwtSecret []byte, corsOrigins []string, logger *log.Logger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)
	r.Handle("/holds", auth.RequireClient(jwtSecret, HandleCreateHold(svc))).Methods(http.MethodPost)
	r.NotFoundHandler = NotFoundHandler()
	r.MethodNotAllowedHandler = MethodNotAllowedHandler()

	cors := handlers.CORS(
		handlers.AllowedOrigins(corsOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	return RequestLogger(cors(r), logger)
}
