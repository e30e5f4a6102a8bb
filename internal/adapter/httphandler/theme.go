package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/threadline/storefront/internal/core/domain"
	"github.com/threadline/storefront/internal/core/port"
)

// GET /v1/theme, PUT /v1/theme — session theme preference.

type ThemeHandler struct {
	themes port.ThemeSwitcher
}

func RegisterTheme(mux *http.ServeMux, themes port.ThemeSwitcher) {
	h := ThemeHandler{themes}
	mux.HandleFunc("GET /v1/theme", h.GetTheme)
	mux.HandleFunc("PUT /v1/theme", h.PutTheme)
}

func (h ThemeHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	const op = "ThemeHandler.GetTheme"
	log := slog.With("op", op)

	writeJSON(w, http.StatusOK, ThemeBody{Theme: string(h.themes.Theme())}, log)
}

func (h ThemeHandler) PutTheme(w http.ResponseWriter, r *http.Request) {
	const op = "ThemeHandler.PutTheme"
	log := slog.With("op", op)

	var body ThemeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.themes.SetTheme(r.Context(), domain.Theme(body.Theme))
	if err != nil {
		http.Error(w, "unknown theme", http.StatusBadRequest)
		log.Warn("rejected theme", "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
