package model

import (
	"errors"
	"fmt"
	"strconv"
)

// Status is the delivery state of a message for its recipient. The integer
// values are the wire codes used by the messages API.
type Status int

const (
	StatusCreated Status = 10
	StatusRead    Status = 20
	StatusDeleted Status = 30
)

// ErrInvalidStatus is returned when a code does not map to a known Status.
var ErrInvalidStatus = errors.New("invalid message status")

// ParseStatus maps a wire code to a Status.
func ParseStatus(code int) (Status, error) {
	s := Status(code)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStatus, code)
	}
	return s, nil
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusCreated, StatusRead, StatusDeleted:
		return true
	}
	return false
}

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusRead:
		return "read"
	case StatusDeleted:
		return "deleted"
	}
	return "status(" + strconv.Itoa(int(s)) + ")"
}

// MessageID identifies a recipient message on the server.
type MessageID int64

func (id MessageID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseMessageID parses the decimal form used in URLs and CLI arguments.
func ParseMessageID(raw string) (MessageID, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid message id %q: %w", raw, err)
	}
	return MessageID(v), nil
}

// Content is the shared body of a message sent to one or more recipients.
type Content struct {
	ID    int64   `json:"id"`
	Title string  `json:"titulo"`
	Text  *string `json:"texto"`
}

// Message is one recipient's copy of a message as returned by the API.
type Message struct {
	ID          MessageID `json:"id"`
	RecipientID int64     `json:"destinatario"`
	Status      Status    `json:"estado"`
	Content     Content   `json:"mensaje"`
}

// Unread reports whether the recipient has not opened the message yet.
func (m Message) Unread() bool {
	return m.Status == StatusCreated
}

// Body returns the message text or an empty string when the server sent null.
func (m Message) Body() string {
	if m.Content.Text == nil {
		return ""
	}
	return *m.Content.Text
}

// MessagePage is the paginated list envelope of the messages endpoint.
type MessagePage struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Message `json:"results"`
}
