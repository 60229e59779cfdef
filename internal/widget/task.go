package widget

import (
	"context"

	"github.com/google/uuid"

	"dashinbox/internal/model"
)

// TaskKind names the request a Task carries.
type TaskKind string

const (
	TaskMarkRead TaskKind = "mark-read"
	TaskDelete   TaskKind = "delete"
)

// Task is an outbound request started by a widget action. The result is
// available once Done is closed.
type Task struct {
	ID        uuid.UUID
	Kind      TaskKind
	MessageID model.MessageID

	done chan struct{}
	err  error
}

func newTask(kind TaskKind, id model.MessageID) *Task {
	return &Task{
		ID:        uuid.New(),
		Kind:      kind,
		MessageID: id,
		done:      make(chan struct{}),
	}
}

// Done is closed when the request has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the request error. It is nil until Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the request finishes or ctx ends.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Task) finish(err error) {
	t.err = err
	close(t.done)
}
