package handler

import (
	"context"
	"errors"
	"net/http"

	"dashinbox/internal/scheduler"
)

// SyncController abstracts the inbox refresh loop for handlers.
type SyncController interface {
	Start(ctx context.Context) error
	Stop() error
	Refresh() error
	Status() scheduler.Status
}

// ControlHandler starts and stops the periodic inbox refresh.
type ControlHandler struct {
	scheduler SyncController
	baseCtx   context.Context
}

// NewControlHandler creates a new instance. Loops started through the handler
// live until baseCtx ends or Stop is called.
func NewControlHandler(baseCtx context.Context, s SyncController) *ControlHandler {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &ControlHandler{scheduler: s, baseCtx: baseCtx}
}

// Start resumes the refresh loop.
func (h *ControlHandler) Start(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.Start(h.baseCtx); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scheduler.ErrAlreadyRunning) {
			status = http.StatusConflict
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "started"})
}

// Stop pauses the refresh loop.
func (h *ControlHandler) Stop(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.Stop(); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scheduler.ErrNotRunning) {
			status = http.StatusConflict
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}

// Refresh asks the running loop to sync now.
func (h *ControlHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.Refresh(); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh scheduled"})
}

// Status reports the loop state and the last sync result.
func (h *ControlHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.scheduler.Status())
}
