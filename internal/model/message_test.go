package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, code := range []int{10, 20, 30} {
		s, err := ParseStatus(code)
		if err != nil {
			t.Fatalf("parse %d: %v", code, err)
		}
		if int(s) != code {
			t.Fatalf("expected %d, got %d", code, s)
		}
	}

	if _, err := ParseStatus(9999999); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestStatusString(t *testing.T) {
	if StatusRead.String() != "read" {
		t.Fatalf("unexpected string %q", StatusRead.String())
	}
	if Status(11).String() != "status(11)" {
		t.Fatalf("unexpected string %q", Status(11).String())
	}
}

func TestMessageDecode(t *testing.T) {
	raw := `{"id":42,"destinatario":3,"estado":10,"mensaje":{"id":5,"titulo":"Hola","texto":null}}`

	var msg Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if msg.ID != 42 || msg.RecipientID != 3 {
		t.Fatalf("unexpected ids: %+v", msg)
	}
	if !msg.Unread() {
		t.Fatal("expected message to be unread")
	}
	if msg.Content.Title != "Hola" || msg.Body() != "" {
		t.Fatalf("unexpected content: %+v", msg.Content)
	}
}

func TestParseMessageID(t *testing.T) {
	id, err := ParseMessageID("7")
	if err != nil || id != 7 {
		t.Fatalf("expected 7, got %v (%v)", id, err)
	}
	if _, err := ParseMessageID("abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
