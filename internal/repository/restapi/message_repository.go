package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dashinbox/internal/model"
	"dashinbox/internal/repository"
)

var _ repository.MessageRepository = (*MessageRepository)(nil)

const messagesPath = "/api/v1/mensajes/mensaje/"

// ErrNotFound matches API errors with a 404 status.
var ErrNotFound = errors.New("message not found")

// APIError describes a non-2xx response from the messages API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s returned status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Options configures MessageRepository.
type Options struct {
	BaseURL   string
	CSRFToken string
	SessionID string
	APIToken  string
	Timeout   time.Duration
	Client    *http.Client
}

// MessageRepository talks to the messages REST API over HTTP.
type MessageRepository struct {
	client    *http.Client
	baseURL   string
	csrfToken string
	sessionID string
	apiToken  string
}

// NewMessageRepository creates a new repository instance.
func NewMessageRepository(opts Options) *MessageRepository {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &MessageRepository{
		client:    client,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		csrfToken: opts.CSRFToken,
		sessionID: opts.SessionID,
		apiToken:  opts.APIToken,
	}
}

// List fetches one window of the recipient's messages using the server's
// limit/offset pagination. A limit of zero leaves the page size to the server.
// Deleted messages are filtered out by the server.
func (r *MessageRepository) List(ctx context.Context, offset, limit int) (model.MessagePage, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	path := messagesPath
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var out model.MessagePage
	if err := r.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return model.MessagePage{}, err
	}
	return out, nil
}

// ListAll walks the list endpoint by following each page's next link as the
// server wrote it. Messages that shift between windows while walking are
// returned once.
func (r *MessageRepository) ListAll(ctx context.Context) ([]model.Message, error) {
	var messages []model.Message
	seen := make(map[model.MessageID]struct{})
	visited := make(map[string]struct{})

	next := messagesPath
	for next != "" {
		if _, ok := visited[next]; ok {
			return nil, fmt.Errorf("list messages: next link %s was already fetched", next)
		}
		visited[next] = struct{}{}

		var page model.MessagePage
		if err := r.do(ctx, http.MethodGet, next, nil, &page); err != nil {
			return nil, err
		}
		for _, msg := range page.Results {
			if _, dup := seen[msg.ID]; dup {
				continue
			}
			seen[msg.ID] = struct{}{}
			messages = append(messages, msg)
		}

		if page.Next == nil || len(page.Results) == 0 {
			break
		}
		next = *page.Next
	}
	return messages, nil
}

// Get fetches a single message.
func (r *MessageRepository) Get(ctx context.Context, id model.MessageID) (model.Message, error) {
	var out model.Message
	if err := r.do(ctx, http.MethodGet, messagePath(id), nil, &out); err != nil {
		return model.Message{}, err
	}
	return out, nil
}

// UpdateStatus sends PATCH {"estado": status} for the message.
func (r *MessageRepository) UpdateStatus(ctx context.Context, id model.MessageID, status model.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %d", model.ErrInvalidStatus, int(status))
	}

	payload := map[string]int{"estado": int(status)}
	var ack map[string]any
	return r.do(ctx, http.MethodPatch, messagePath(id), payload, &ack)
}

// Delete asks the server to mark the message as deleted.
func (r *MessageRepository) Delete(ctx context.Context, id model.MessageID) error {
	return r.do(ctx, http.MethodDelete, messagePath(id), nil, nil)
}

func messagePath(id model.MessageID) string {
	return messagesPath + url.PathEscape(id.String()) + "/"
}

func (r *MessageRepository) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.endpoint(path), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.authorize(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// endpoint resolves a request path against the base URL. Absolute URLs, such
// as the next links of a list page, are used as given.
func (r *MessageRepository) endpoint(path string) string {
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	return r.baseURL + path
}

// authorize attaches the CSRF token and whichever credentials are configured.
// Django checks the header against the csrftoken cookie, so both are sent.
func (r *MessageRepository) authorize(req *http.Request) {
	if r.apiToken != "" {
		req.Header.Set("Authorization", "Token "+r.apiToken)
	}
	if r.csrfToken != "" {
		req.Header.Set("X-CSRFToken", r.csrfToken)
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: r.csrfToken})
	}
	if r.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: r.sessionID})
	}
	if origin := r.baseURL; origin != "" {
		req.Header.Set("Referer", origin+"/")
	}
}
