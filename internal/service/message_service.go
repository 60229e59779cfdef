package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"dashinbox/internal/model"
	"dashinbox/internal/repository"
	"dashinbox/internal/widget"
)

// InboxService binds the remote messages API to the message status widget.
type InboxService struct {
	repo   repository.MessageRepository
	widget *widget.Widget
	logger *log.Logger

	mu       sync.Mutex
	lastSync time.Time
}

// InboxServiceOptions configures InboxService.
type InboxServiceOptions struct {
	Logger *log.Logger
}

// InboxSnapshot is the rendered inbox returned to callers.
type InboxSnapshot struct {
	Rows     []widget.Row `json:"rows"`
	Unread   int          `json:"unread"`
	SyncedAt *time.Time   `json:"synced_at,omitempty"`
}

// NewInboxService builds an InboxService.
func NewInboxService(repo repository.MessageRepository, opts InboxServiceOptions) *InboxService {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "inbox-service ", log.LstdFlags)
	}

	return &InboxService{
		repo:   repo,
		widget: widget.New(repo),
		logger: logger,
	}
}

// SyncInbox re-fetches the recipient's messages and merges them into the
// widget. Expanded and hidden rows stay as the user left them, so a periodic
// sync never brings a deleted row back.
func (s *InboxService) SyncInbox(ctx context.Context) error {
	return s.sync(ctx, s.widget.Merge)
}

// ReloadInbox re-fetches the recipient's messages and re-renders the widget
// from scratch, discarding client-side history like a page reload.
func (s *InboxService) ReloadInbox(ctx context.Context) error {
	return s.sync(ctx, s.widget.Load)
}

func (s *InboxService) sync(ctx context.Context, apply func([]model.Message)) error {
	messages, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Printf("failed to fetch messages: %v", err)
		return fmt.Errorf("fetch messages: %w", err)
	}

	apply(messages)

	s.mu.Lock()
	s.lastSync = time.Now().UTC()
	s.mu.Unlock()
	s.logger.Printf("inbox synced: %d messages, %d unread", len(messages), s.widget.Unread())
	return nil
}

// Snapshot returns the visible rows and the unread badge count.
func (s *InboxService) Snapshot() InboxSnapshot {
	snap := InboxSnapshot{
		Rows:   s.widget.Rows(),
		Unread: s.widget.Unread(),
	}
	s.mu.Lock()
	if !s.lastSync.IsZero() {
		ts := s.lastSync
		snap.SyncedAt = &ts
	}
	s.mu.Unlock()
	return snap
}

// Row returns the current state of one rendered row.
func (s *InboxService) Row(id model.MessageID) (widget.Row, bool) {
	return s.widget.Row(id)
}

// Toggle expands or collapses a row, marking it read on first open.
func (s *InboxService) Toggle(ctx context.Context, id model.MessageID) (widget.Row, *widget.Task, bool) {
	task := s.widget.Toggle(ctx, id)
	row, ok := s.widget.Row(id)
	return row, task, ok
}

// Delete hides a row and requests its deletion.
func (s *InboxService) Delete(ctx context.Context, id model.MessageID) (*widget.Task, bool) {
	task := s.widget.Delete(ctx, id)
	return task, task != nil
}
