// Package widget keeps the client-side view of the recipient's inbox: which
// rows are expanded, which are hidden, and which have been acknowledged as
// read by the server.
package widget

import (
	"context"
	"sync"

	"dashinbox/internal/model"
)

// API is the subset of the messages API the widget calls.
type API interface {
	UpdateStatus(ctx context.Context, id model.MessageID, status model.Status) error
	Delete(ctx context.Context, id model.MessageID) error
}

// ViewState is the client-side state of a row.
type ViewState string

const (
	ViewCreated ViewState = "CREATED"
	ViewRead    ViewState = "READ"
	ViewDeleted ViewState = "DELETED_VIEW"
)

// Row is a presentation snapshot of one message.
type Row struct {
	ID       model.MessageID `json:"id"`
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	Status   model.Status    `json:"status"`
	State    ViewState       `json:"state"`
	Expanded bool            `json:"expanded"`
	Hidden   bool            `json:"hidden"`
	Bold     bool            `json:"bold"`
}

type record struct {
	title    string
	body     string
	status   model.Status
	expanded bool
	hidden   bool
}

func (r *record) state() ViewState {
	switch {
	case r.hidden:
		return ViewDeleted
	case r.status == model.StatusRead:
		return ViewRead
	default:
		return ViewCreated
	}
}

// Widget is the message status widget. It is safe for concurrent use.
type Widget struct {
	api API

	mu    sync.Mutex
	order []model.MessageID
	rows  map[model.MessageID]*record
}

// New builds an empty widget; call Load to render rows.
func New(api API) *Widget {
	return &Widget{api: api, rows: make(map[model.MessageID]*record)}
}

// Load replaces the rendered rows with the given server state, discarding
// client-side history. Rows start collapsed. Deleted messages are not rendered.
func (w *Widget) Load(messages []model.Message) {
	w.render(messages, false)
}

// Merge applies a fresh server listing without disturbing the session: rows
// already held keep their expanded and hidden flags and never go back from
// READ to CREATED. Rows the server no longer lists are dropped.
func (w *Widget) Merge(messages []model.Message) {
	w.render(messages, true)
}

func (w *Widget) render(messages []model.Message, keepSession bool) {
	rows := make(map[model.MessageID]*record, len(messages))
	order := make([]model.MessageID, 0, len(messages))
	for _, msg := range messages {
		if msg.Status == model.StatusDeleted || !msg.Status.Valid() {
			continue
		}
		if _, dup := rows[msg.ID]; dup {
			continue
		}
		rows[msg.ID] = &record{
			title:  msg.Content.Title,
			body:   msg.Body(),
			status: msg.Status,
		}
		order = append(order, msg.ID)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if keepSession {
		for id, rec := range rows {
			prev, ok := w.rows[id]
			if !ok {
				continue
			}
			rec.expanded = prev.expanded
			rec.hidden = prev.hidden
			if prev.status == model.StatusRead {
				rec.status = model.StatusRead
			}
		}
	}
	w.rows = rows
	w.order = order
}

// Toggle flips the visibility of a row's content. For an unread row it also
// starts a mark-as-read request; the row becomes READ only if that request
// succeeds. It returns nil when no request was started.
func (w *Widget) Toggle(ctx context.Context, id model.MessageID) *Task {
	w.mu.Lock()
	rec, ok := w.rows[id]
	if !ok {
		w.mu.Unlock()
		return nil
	}
	rec.expanded = !rec.expanded
	unread := rec.status == model.StatusCreated
	w.mu.Unlock()

	if !unread {
		return nil
	}

	task := newTask(TaskMarkRead, id)
	go func() {
		err := w.api.UpdateStatus(context.WithoutCancel(ctx), id, model.StatusRead)
		if err == nil {
			w.markRead(id)
		}
		task.finish(err)
	}()
	return task
}

// Delete hides the row and sends a delete request without waiting on it. The
// row stays hidden whatever the server answers.
func (w *Widget) Delete(ctx context.Context, id model.MessageID) *Task {
	w.mu.Lock()
	rec, ok := w.rows[id]
	if ok {
		rec.hidden = true
	}
	w.mu.Unlock()

	if !ok {
		return nil
	}

	task := newTask(TaskDelete, id)
	go func() {
		task.finish(w.api.Delete(context.WithoutCancel(ctx), id))
	}()
	return task
}

func (w *Widget) markRead(id model.MessageID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if rec, ok := w.rows[id]; ok && rec.status == model.StatusCreated {
		rec.status = model.StatusRead
	}
}

// Row returns the snapshot of a single row, hidden or not.
func (w *Widget) Row(id model.MessageID) (Row, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, ok := w.rows[id]
	if !ok {
		return Row{}, false
	}
	return snapshot(id, rec), true
}

// Rows returns the visible rows in the order the server rendered them.
func (w *Widget) Rows() []Row {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Row, 0, len(w.order))
	for _, id := range w.order {
		rec := w.rows[id]
		if rec.hidden {
			continue
		}
		out = append(out, snapshot(id, rec))
	}
	return out
}

// Unread counts visible rows still waiting to be read.
func (w *Widget) Unread() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := 0
	for _, rec := range w.rows {
		if !rec.hidden && rec.status == model.StatusCreated {
			n++
		}
	}
	return n
}

func snapshot(id model.MessageID, rec *record) Row {
	return Row{
		ID:       id,
		Title:    rec.title,
		Body:     rec.body,
		Status:   rec.status,
		State:    rec.state(),
		Expanded: rec.expanded,
		Hidden:   rec.hidden,
		Bold:     rec.status == model.StatusCreated,
	}
}
