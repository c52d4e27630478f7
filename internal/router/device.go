package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/MRamiBalles/sdop/internal/host"
	"github.com/MRamiBalles/sdop/internal/network"
	"github.com/MRamiBalles/sdop/internal/platform/logger"
)

// deviceHandler serves the server's own persistent device.
type deviceHandler struct {
	session *host.Session
	logger  *logger.Logger
}

// State handles GET /api/state
func (h *deviceHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.State())
}

// Frame handles GET /api/frame
func (h *deviceHandler) Frame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Frame())
}

// Save handles POST /api/save
func (h *deviceHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Save(r.Context()); err != nil {
		h.logger.Error("Manual save failed: " + err.Error())
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Recap handles GET /api/recap?since=2006-01-02T15:04:05. Without since it
// covers the last 24 hours of device time.
func (h *deviceHandler) Recap(w http.ResponseWriter, r *http.Request) {
	since := h.session.State().Now.Add(-24 * time.Hour)
	if raw := r.URL.Query().Get("since"); raw != "" {
		if err := since.UnmarshalText([]byte(raw)); err != nil {
			writeError(w, http.StatusBadRequest, "invalid since")
			return
		}
	}

	recap, err := h.session.Recap(r.Context(), since)
	if errors.Is(err, host.ErrNoJournal) {
		writeError(w, http.StatusNotFound, "no event journal")
		return
	}
	if err != nil {
		h.logger.Error("Recap failed: " + err.Error())
		writeError(w, http.StatusInternalServerError, "recap failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"since": since,
		"recap": recap,
	})
}

// Action handles POST /api/action with the same body the websocket accepts.
func (h *deviceHandler) Action(w http.ResponseWriter, r *http.Request) {
	var action network.PlayerAction
	if err := decodeBody(r, &action); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := h.session.HandleAction(action); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
