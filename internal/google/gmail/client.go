// Package gmail reads messages from the signed-in user's mailbox.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const (
	me = "me"
	// fetchConcurrency bounds parallel message gets.
	fetchConcurrency = 4
)

type Client struct {
	svc *gmail.Service
}

func New(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// ListMessages returns up to limit full messages matching query, newest first.
func (c *Client) ListMessages(ctx context.Context, query string, limit int64) ([]*gmail.Message, error) {
	resp, err := c.svc.Users.Messages.List(me).Q(query).MaxResults(limit).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	out := make([]*gmail.Message, len(resp.Messages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	var mu sync.Mutex
	for i, ref := range resp.Messages {
		g.Go(func() error {
			msg, err := c.svc.Users.Messages.Get(me, ref.Id).Format("full").Context(gctx).Do()
			if err != nil {
				return fmt.Errorf("get message %s: %w", ref.Id, err)
			}
			mu.Lock()
			out[i] = msg
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Header returns the first header called name, case-insensitively.
func Header(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// Body returns the message body, preferring HTML, and whether it is HTML.
// Plain text bodies are returned as-is.
func Body(msg *gmail.Message) (string, bool) {
	if msg == nil || msg.Payload == nil {
		return "", false
	}
	if html, ok := findPart(msg.Payload, "text/html"); ok {
		return html, true
	}
	if text, ok := findPart(msg.Payload, "text/plain"); ok {
		return text, false
	}
	return msg.Snippet, false
}

func findPart(part *gmail.MessagePart, mimeType string) (string, bool) {
	if part == nil {
		return "", false
	}
	if strings.EqualFold(part.MimeType, mimeType) && part.Body != nil && part.Body.Data != "" {
		data, err := decode(part.Body.Data)
		if err == nil {
			return data, true
		}
	}
	for _, child := range part.Parts {
		if body, ok := findPart(child, mimeType); ok {
			return body, true
		}
	}
	return "", false
}

// Gmail uses URL-safe base64, with or without padding depending on the part.
func decode(data string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
