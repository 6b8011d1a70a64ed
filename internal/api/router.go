package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fastprodman/billionspend/internal/services/game"
)

// NewRouter constructs a chi router with all API endpoints registered.
func NewRouter(g *game.Game) http.Handler {
	h := NewHandler(g)
	r := chi.NewRouter()

	r.Use(requestID, logRequests, middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/catalog", h.ListCatalogHandler)

	r.Route("/game", func(r chi.Router) {
		r.Get("/", h.GetGameHandler)
		r.Get("/current", h.GetCurrentHandler)
		r.Post("/purchase", h.PurchaseHandler)
		r.Post("/sell", h.SellHandler)
		r.Post("/reset", h.ResetGameHandler)
		r.Post("/swipe", h.SwipeHandler)
		r.Post("/shake", h.ShakeHandler)
	})

	r.Route("/stats", func(r chi.Router) {
		r.Get("/", h.GetStatsHandler)
		r.Get("/formatted", h.GetFormattedStatsHandler)
		r.Post("/reset", h.ResetStatsHandler)
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.GetSettingsHandler)
		r.Patch("/", h.PatchSettingsHandler)
		r.Get("/formatted", h.GetFormattedSettingsHandler)
		r.Post("/reset", h.ResetSettingsHandler)
	})

	r.Post("/data/clear", h.ClearDataHandler)
	r.Get("/ws", h.ChangesHandler)

	return r
}
