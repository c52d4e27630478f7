package router

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MRamiBalles/sdop/internal/host"
	"github.com/MRamiBalles/sdop/internal/input"
	"github.com/MRamiBalles/sdop/internal/save"
)

// maxTickDelta caps a single sandbox tick.
const maxTickDelta = 24 * time.Hour

// gamesHandler exposes the sandbox registry.
type gamesHandler struct {
	registry *host.Registry
}

func handleParam(r *http.Request) host.Handle {
	return host.Handle(chi.URLParam(r, "handle"))
}

func (h *gamesHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, host.ErrUnknownHandle):
		writeError(w, http.StatusNotFound, "unknown game")
	case errors.Is(err, host.ErrRegistryFull):
		writeError(w, http.StatusServiceUnavailable, "too many games")
	case errors.Is(err, host.ErrBadTimeScale):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Create handles POST /api/games. A body holding a save starts from it.
func (h *gamesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Save *save.SaveFile `json:"save"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var (
		handle host.Handle
		err    error
	)
	if body.Save != nil {
		// Reject anything the device could not persist.
		if _, err := save.Encode(*body.Save); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		handle, err = h.registry.CreateFromSave(*body.Save)
	} else {
		handle, err = h.registry.CreateBlank()
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"handle": string(handle)})
}

// Destroy handles DELETE /api/games/{handle}
func (h *gamesHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Destroy(handleParam(r)); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Tick handles POST /api/games/{handle}/tick with {"delta_ms": n}
func (h *gamesHandler) Tick(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DeltaMS int64 `json:"delta_ms"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	delta := time.Duration(body.DeltaMS) * time.Millisecond
	if delta < 0 || delta > maxTickDelta {
		writeError(w, http.StatusBadRequest, "delta_ms out of range")
		return
	}
	if err := h.registry.Tick(handleParam(r), delta); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Input handles POST /api/games/{handle}/input with held buttons.
func (h *gamesHandler) Input(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Left   bool `json:"left"`
		Middle bool `json:"middle"`
		Right  bool `json:"right"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	states := input.States{input.Left: body.Left, input.Middle: body.Middle, input.Right: body.Right}
	if err := h.registry.UpdateInput(handleParam(r), states); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TimeScale handles POST /api/games/{handle}/time-scale with {"scale": x}
func (h *gamesHandler) TimeScale(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Scale float32 `json:"scale"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := h.registry.SetTimeScale(handleParam(r), body.Scale); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Frame handles GET /api/games/{handle}/frame?delta_ms=n
func (h *gamesHandler) Frame(w http.ResponseWriter, r *http.Request) {
	var delta time.Duration
	if raw := r.URL.Query().Get("delta_ms"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms < 0 {
			writeError(w, http.StatusBadRequest, "invalid delta_ms")
			return
		}
		delta = time.Duration(ms) * time.Millisecond
	}
	f, err := h.registry.Refresh(handleParam(r), delta)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// Save handles GET /api/games/{handle}/save
func (h *gamesHandler) Save(w http.ResponseWriter, r *http.Request) {
	s, err := h.registry.Snapshot(handleParam(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
