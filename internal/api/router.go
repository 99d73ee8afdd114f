package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pjessen/partywords/internal/api/handler"
	"github.com/pjessen/partywords/internal/api/middleware"
	"github.com/pjessen/partywords/internal/services/auth"
	"github.com/pjessen/partywords/internal/services/party"
	"github.com/pjessen/partywords/internal/services/words"
	"github.com/pjessen/partywords/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	PartyRegistry   *party.Registry
	PartyController *party.Controller
	WordsService    *words.Service
	WSHandler       *ws.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(cfg.AuthService)
	partyHandler := handler.NewPartyHandler(cfg.PartyRegistry, cfg.PartyController)
	wordsHandler := handler.NewWordsHandler(cfg.WordsService)

	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	hostMiddleware := middleware.RequireHost()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Identity routes (no auth required to obtain a session)
	api.HandleFunc("/players/guest", authHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/hosts/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/hosts/login", authHandler.Login).Methods(http.MethodPost)

	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)

	// Party creation is reserved for host accounts; snapshots allow
	// anonymous spectating
	partyCreate := api.PathPrefix("/parties").Subrouter()
	partyCreate.Use(authMiddleware, hostMiddleware)
	partyCreate.HandleFunc("", partyHandler.Create).Methods(http.MethodPost)

	partyRead := api.PathPrefix("/parties").Subrouter()
	partyRead.Use(optionalAuthMiddleware)
	partyRead.HandleFunc("/{code}", partyHandler.Get).Methods(http.MethodGet)

	// Dictionary routes
	api.HandleFunc("/dictionaries", wordsHandler.ListDictionaries).Methods(http.MethodGet)
	api.HandleFunc("/wordpacks", wordsHandler.ListPacks).Methods(http.MethodGet)
	api.HandleFunc("/wordpacks/{name}", wordsHandler.GetPack).Methods(http.MethodGet)

	packWrite := api.PathPrefix("/wordpacks").Subrouter()
	packWrite.Use(authMiddleware, hostMiddleware)
	packWrite.HandleFunc("/{name}", wordsHandler.SavePack).Methods(http.MethodPut)
	packWrite.HandleFunc("/{name}", wordsHandler.DeletePack).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Gameplay websocket; auth happens inside the handler via the token
	// query parameter
	wsRoute := r.PathPrefix("/ws").Subrouter()
	wsRoute.Use(loggingMiddleware)
	wsRoute.Handle("/{code}", cfg.WSHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
