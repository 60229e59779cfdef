package handler

import (
	"context"
	"net/http"
)

// DarkModeStore reads and flips the dark mode flag.
type DarkModeStore interface {
	Enabled(ctx context.Context) (bool, error)
	Toggle(ctx context.Context) (bool, error)
}

// PreferenceHandler serves the dark mode flag.
type PreferenceHandler struct {
	darkMode DarkModeStore
}

// NewPreferenceHandler builds a PreferenceHandler.
func NewPreferenceHandler(dm DarkModeStore) *PreferenceHandler {
	return &PreferenceHandler{darkMode: dm}
}

// DarkMode handles GET /preferences/dark-mode.
func (h *PreferenceHandler) DarkMode(w http.ResponseWriter, r *http.Request) {
	on, err := h.darkMode.Enabled(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, darkModeBody(on))
}

// ToggleDarkMode handles POST /preferences/dark-mode/toggle.
func (h *PreferenceHandler) ToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	on, err := h.darkMode.Toggle(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, darkModeBody(on))
}

func darkModeBody(on bool) map[string]any {
	value := "off"
	if on {
		value = "on"
	}
	return map[string]any{"darkMode": value, "enabled": on}
}
