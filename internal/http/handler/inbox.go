package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dashinbox/internal/model"
	"dashinbox/internal/service"
	"dashinbox/internal/widget"
)

// InboxService is the inbox behavior the handler needs.
type InboxService interface {
	ReloadInbox(ctx context.Context) error
	Snapshot() service.InboxSnapshot
	Toggle(ctx context.Context, id model.MessageID) (widget.Row, *widget.Task, bool)
	Delete(ctx context.Context, id model.MessageID) (*widget.Task, bool)
}

// InboxHandler exposes the message status widget over HTTP.
type InboxHandler struct {
	svc InboxService
}

// NewInboxHandler builds an InboxHandler.
func NewInboxHandler(svc InboxService) *InboxHandler {
	return &InboxHandler{svc: svc}
}

type actionResponse struct {
	Row    *widget.Row     `json:"row,omitempty"`
	TaskID string          `json:"task_id,omitempty"`
	Task   widget.TaskKind `json:"task,omitempty"`
}

var errUnknownMessage = errors.New("message not rendered")

// List handles GET /inbox.
func (h *InboxHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Snapshot())
}

// Sync handles POST /inbox/sync. It re-renders the inbox from the server,
// dropping expanded and hidden flags like a page reload.
func (h *InboxHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ReloadInbox(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Snapshot())
}

// Toggle handles POST /inbox/{id}/toggle. The response does not wait for the
// mark-as-read request.
func (h *InboxHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}

	row, task, found := h.svc.Toggle(r.Context(), id)
	if !found {
		writeError(w, http.StatusNotFound, errUnknownMessage)
		return
	}

	resp := actionResponse{Row: &row}
	if task != nil {
		resp.TaskID = task.ID.String()
		resp.Task = task.Kind
	}
	writeJSON(w, http.StatusAccepted, resp)
}

// Delete handles DELETE /inbox/{id}.
func (h *InboxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}

	task, found := h.svc.Delete(r.Context(), id)
	if !found {
		writeError(w, http.StatusNotFound, errUnknownMessage)
		return
	}
	writeJSON(w, http.StatusAccepted, actionResponse{TaskID: task.ID.String(), Task: task.Kind})
}

func messageID(w http.ResponseWriter, r *http.Request) (model.MessageID, bool) {
	id, err := model.ParseMessageID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}
