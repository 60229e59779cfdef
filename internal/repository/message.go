package repository

import (
	"context"

	"dashinbox/internal/model"
)

// MessageRepository defines the remote operations required for messages.
type MessageRepository interface {
	List(ctx context.Context, offset, limit int) (model.MessagePage, error)
	ListAll(ctx context.Context) ([]model.Message, error)
	Get(ctx context.Context, id model.MessageID) (model.Message, error)
	UpdateStatus(ctx context.Context, id model.MessageID, status model.Status) error
	Delete(ctx context.Context, id model.MessageID) error
}
