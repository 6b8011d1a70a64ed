package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/fastprodman/billionspend/internal/catalog"
	"github.com/fastprodman/billionspend/internal/format"
	"github.com/fastprodman/billionspend/internal/services/game"
	"github.com/fastprodman/billionspend/internal/services/ledger"
	"github.com/fastprodman/billionspend/internal/services/settings"
)

const maxBodyBytes = 1 << 20

// HandlerProvider exposes a Game over HTTP.
type HandlerProvider struct {
	g *game.Game
}

func NewHandler(g *game.Game) *HandlerProvider {
	return &HandlerProvider{g: g}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody reads a single JSON object into dst, rejecting unknown fields.
// On failure the response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty body")
			return false
		}

		writeError(w, http.StatusBadRequest, "invalid JSON")

		return false
	}

	return true
}

// writeGameError maps game sentinels onto status codes.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrUnknownItem):
		writeError(w, http.StatusNotFound, "unknown item")
	case errors.Is(err, game.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, "insufficient funds")
	case errors.Is(err, game.ErrItemNotHeld):
		writeError(w, http.StatusConflict, "item not held")
	default:
		slog.Error("game operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// --- Catalog ---

// ListCatalogHandler handles GET /catalog[?category=]
func (h *HandlerProvider) ListCatalogHandler(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("category"))
	if raw == "" {
		writeJSON(w, http.StatusOK, h.g.Ledger.AllItems())
		return
	}

	c := catalog.Category(strings.ToLower(raw))
	if !c.Valid() {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}

	writeJSON(w, http.StatusOK, h.g.Ledger.ItemsByCategory(c))
}

// --- Game ---

type gameResponse struct {
	State                ledger.GameState `json:"state"`
	Analytics            ledger.Analytics `json:"analytics"`
	RemainingBudget      string           `json:"remainingBudget"`
	TotalSpent           string           `json:"totalSpent"`
	CompletionPercentage string           `json:"completionPercentage"`
	Loaded               bool             `json:"loaded"`
}

// GetGameHandler handles GET /game
func (h *HandlerProvider) GetGameHandler(w http.ResponseWriter, _ *http.Request) {
	state := h.g.Ledger.State()
	analytics := h.g.Ledger.Analytics()

	writeJSON(w, http.StatusOK, gameResponse{
		State:                state,
		Analytics:            analytics,
		RemainingBudget:      format.Compact(state.CurrentBudget),
		TotalSpent:           format.Full(state.TotalSpent),
		CompletionPercentage: format.Percent(analytics.CompletionPercentage),
		Loaded:               h.g.Ledger.IsLoaded(),
	})
}

type currentResponse struct {
	Item       catalog.Item `json:"item"`
	Price      string       `json:"price"`
	CanAfford  bool         `json:"canAfford"`
	OwnedCount int          `json:"ownedCount"`
}

func (h *HandlerProvider) describe(it catalog.Item) currentResponse {
	return currentResponse{
		Item:       it,
		Price:      format.Full(it.Price),
		CanAfford:  h.g.Ledger.CanAfford(it),
		OwnedCount: h.g.Ledger.OwnedCount(it.ID),
	}
}

// GetCurrentHandler handles GET /game/current
func (h *HandlerProvider) GetCurrentHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.describe(h.g.Current()))
}

type itemRequest struct {
	ItemID string `json:"itemId"`
}

func (h *HandlerProvider) readItemID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req itemRequest
	if !decodeBody(w, r, &req) {
		return "", false
	}

	id := strings.TrimSpace(req.ItemID)
	if id == "" {
		writeError(w, http.StatusBadRequest, "itemId required")
		return "", false
	}

	return id, true
}

// PurchaseHandler handles POST /game/purchase
func (h *HandlerProvider) PurchaseHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.readItemID(w, r)
	if !ok {
		return
	}

	completed, err := h.g.Purchase(id)
	if err != nil {
		writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "completed": completed})
}

// SellHandler handles POST /game/sell
func (h *HandlerProvider) SellHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.readItemID(w, r)
	if !ok {
		return
	}

	err := h.g.Sell(id)
	if err != nil {
		writeGameError(w, err)
		return
	}

	writeOK(w)
}

// ResetGameHandler handles POST /game/reset
func (h *HandlerProvider) ResetGameHandler(w http.ResponseWriter, _ *http.Request) {
	h.g.Ledger.Reset()
	writeOK(w)
}

type swipeRequest struct {
	TranslationX *float64 `json:"translationX"`
}

// SwipeHandler handles POST /game/swipe
func (h *HandlerProvider) SwipeHandler(w http.ResponseWriter, r *http.Request) {
	var req swipeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.TranslationX == nil {
		writeError(w, http.StatusBadRequest, "translationX required")
		return
	}

	res, err := h.g.Swipe(*req.TranslationX)
	if err != nil {
		writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

type shakeRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ShakeHandler handles POST /game/shake
func (h *HandlerProvider) ShakeHandler(w http.ResponseWriter, r *http.Request) {
	var req shakeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	it, shaken := h.g.Shake(req.X, req.Y, req.Z)

	writeJSON(w, http.StatusOK, map[string]any{"shaken": shaken, "item": it})
}

// --- Statistics ---

// GetStatsHandler handles GET /stats
func (h *HandlerProvider) GetStatsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"statistics": h.g.Stats.Stats(),
		"analytics":  h.g.Stats.Analytics(),
	})
}

// GetFormattedStatsHandler handles GET /stats/formatted
func (h *HandlerProvider) GetFormattedStatsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.g.Stats.Formatted())
}

// ResetStatsHandler handles POST /stats/reset
func (h *HandlerProvider) ResetStatsHandler(w http.ResponseWriter, _ *http.Request) {
	h.g.Stats.Reset()
	writeOK(w)
}

// --- Settings ---

// GetSettingsHandler handles GET /settings
func (h *HandlerProvider) GetSettingsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.g.Settings.Settings())
}

// GetFormattedSettingsHandler handles GET /settings/formatted
func (h *HandlerProvider) GetFormattedSettingsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.g.Settings.Formatted())
}

type settingsPatch struct {
	SoundEnabled     *bool                        `json:"soundEnabled"`
	VibrationEnabled *bool                        `json:"vibrationEnabled"`
	Theme            *settings.Theme              `json:"theme"`
	Language         *string                      `json:"language"`
	Accessibility    *settings.AccessibilityPatch `json:"accessibility"`
}

// PatchSettingsHandler handles PATCH /settings. Only the fields present in
// the body change.
func (h *HandlerProvider) PatchSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req settingsPatch
	if !decodeBody(w, r, &req) {
		return
	}

	// theme first so an invalid one leaves everything untouched
	if req.Theme != nil {
		err := h.g.Settings.SetTheme(*req.Theme)
		if err != nil {
			if errors.Is(err, settings.ErrInvalidTheme) {
				writeError(w, http.StatusBadRequest, "invalid theme")
				return
			}

			writeError(w, http.StatusInternalServerError, "internal error")

			return
		}
	}

	if req.SoundEnabled != nil {
		h.g.Settings.SetSoundEnabled(*req.SoundEnabled)
	}

	if req.VibrationEnabled != nil {
		h.g.Settings.SetVibrationEnabled(*req.VibrationEnabled)
	}

	if req.Language != nil {
		h.g.Settings.SetLanguage(*req.Language)
	}

	if req.Accessibility != nil {
		h.g.Settings.SetAccessibility(*req.Accessibility)
	}

	writeJSON(w, http.StatusOK, h.g.Settings.Settings())
}

// ResetSettingsHandler handles POST /settings/reset
func (h *HandlerProvider) ResetSettingsHandler(w http.ResponseWriter, _ *http.Request) {
	h.g.Settings.Reset()
	writeOK(w)
}

// --- Data ---

// ClearDataHandler handles POST /data/clear. Memory is reset even when the
// store fails, the caller still gets a 500 in that case.
func (h *HandlerProvider) ClearDataHandler(w http.ResponseWriter, r *http.Request) {
	err := h.g.ClearAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear stored data")
		return
	}

	writeOK(w)
}
