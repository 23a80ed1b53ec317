package httpapi

import (
	"net/http"

	"github.com/avenratt/league-portal/internal/domain/user"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/season", handler.GetCurrentSeason)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayerProfile)
	mux.HandleFunc("GET /v1/players/{playerID}/tpe", handler.GetPlayerTPE)
	mux.HandleFunc("GET /v1/players/{playerID}/ledger", handler.ListPlayerLedger)
	mux.HandleFunc("GET /v1/players/{playerID}/events", handler.ListPlayerEvents)
	mux.HandleFunc("GET /v1/players/{playerID}/bank", handler.ListPlayerBankTransactions)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("POST /v1/players/{playerID}/attributes", RequireAuth(verifier, http.HandlerFunc(handler.SubmitAttributeChanges)))
	mux.Handle("POST /v1/players/{playerID}/retirement", RequireAuth(verifier, http.HandlerFunc(handler.SubmitRetirement)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/players/pending",
		RequireAuth(verifier, RequireRole(user.RoleAdmin, http.HandlerFunc(handler.ListPendingPlayers))))
	mux.Handle("POST /v1/admin/players/{playerID}/approval",
		RequireAuth(verifier, RequireRole(user.RoleAdmin, http.HandlerFunc(handler.DecidePlayerApproval))))
	mux.Handle("POST /v1/admin/tpe/grants",
		RequireAuth(verifier, RequireRole(user.RolePT, http.HandlerFunc(handler.AppendGrantBatch))))
	mux.Handle("POST /v1/admin/season/advance",
		RequireAuth(verifier, RequireRole(user.RoleAdmin, http.HandlerFunc(handler.AdvanceSeason))))
}
