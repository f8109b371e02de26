package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func TestListMessagesKeepsOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/users/me/messages"):
			if r.URL.Query().Get("q") != "is:unread" {
				t.Errorf("unexpected query %q", r.URL.Query().Get("q"))
			}
			_, _ = io.WriteString(w, `{"messages":[{"id":"m1"},{"id":"m2"},{"id":"m3"}]}`)
		case strings.Contains(r.URL.Path, "/users/me/messages/"):
			id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
			_, _ = fmt.Fprintf(w, `{"id":%q,"snippet":"snippet %s"}`, id, id)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	msgs, err := client.ListMessages(context.Background(), "is:unread", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, want := range []string{"m1", "m2", "m3"} {
		if msgs[i].Id != want {
			t.Fatalf("message %d: expected %s, got %s", i, want, msgs[i].Id)
		}
	}
}

func encode(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestBodyPrefersHTML(t *testing.T) {
	msg := &gmail.Message{Payload: &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Headers:  []*gmail.MessagePartHeader{{Name: "Subject", Value: "Hello"}},
		Parts: []*gmail.MessagePart{
			{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: encode("plain?")}},
			{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: encode("<p>rich</p>")}},
		},
	}}
	body, isHTML := Body(msg)
	if !isHTML || body != "<p>rich</p>" {
		t.Fatalf("expected html body, got %q (%v)", body, isHTML)
	}
	if Header(msg, "subject") != "Hello" {
		t.Fatalf("expected case-insensitive header lookup")
	}
}

func TestBodyFallsBackToSnippet(t *testing.T) {
	msg := &gmail.Message{Snippet: "short", Payload: &gmail.MessagePart{MimeType: "text/plain"}}
	body, isHTML := Body(msg)
	if isHTML || body != "short" {
		t.Fatalf("expected snippet, got %q", body)
	}
}
