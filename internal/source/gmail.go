package source

import (
	"context"
	"html"
	"net/mail"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"

	ggmail "taskdeck/internal/google/gmail"
	"taskdeck/internal/overview"
)

type MailService interface {
	ListMessages(ctx context.Context, query string, limit int64) ([]*gmail.Message, error)
}

const (
	GmailListID  = "gmail:inbox"
	gmailLimit   = 25
	gmailWebBase = "https://mail.google.com/mail/u/0/#all/"
)

// Gmail shows the messages matching a search query as one list.
type Gmail struct {
	svc   MailService
	query string
}

func NewGmail(svc MailService, query string) *Gmail {
	return &Gmail{svc: svc, query: query}
}

func (s *Gmail) Name() string { return "Gmail" }

func (s *Gmail) Lists(ctx context.Context) ([]overview.List, error) {
	msgs, err := s.svc.ListMessages(ctx, s.query, gmailLimit)
	if err != nil {
		return nil, err
	}
	items := make([]overview.Item, 0, len(msgs))
	for _, msg := range msgs {
		if msg == nil {
			continue
		}
		items = append(items, overview.MessageItem(convertMessage(msg)))
	}
	return []overview.List{{
		ID:    GmailListID,
		Name:  "Inbox",
		Type:  overview.ListTypeMessage,
		Items: items,
	}}, nil
}

func convertMessage(msg *gmail.Message) overview.Message {
	subject := strings.TrimSpace(ggmail.Header(msg, "Subject"))
	if subject == "" {
		subject = "(no subject)"
	}
	body, isHTML := ggmail.Body(msg)
	if !isHTML {
		body = strings.ReplaceAll(html.EscapeString(body), "\n", "<br>")
	}
	sender := overview.Sender{}
	if from, err := mail.ParseAddress(ggmail.Header(msg, "From")); err == nil {
		sender.Name = from.Name
		sender.Email = from.Address
	} else {
		sender.Name = ggmail.Header(msg, "From")
	}
	if replyTo, err := mail.ParseAddress(ggmail.Header(msg, "Reply-To")); err == nil {
		sender.ReplyTo = replyTo.Address
	}
	out := overview.Message{
		ID:     msg.Id,
		Title:  subject,
		Body:   body,
		Source: overview.MessageSource{Name: "Gmail", Logo: "gmail"},
		Sender: sender,
		Recipients: overview.Recipients{
			To:  recipients(ggmail.Header(msg, "To")),
			Cc:  recipients(ggmail.Header(msg, "Cc")),
			Bcc: recipients(ggmail.Header(msg, "Bcc")),
		},
		Link: gmailWebBase + msg.Id,
	}
	if msg.InternalDate > 0 {
		out.SentAt = time.UnixMilli(msg.InternalDate)
	}
	return out
}

func recipients(header string) []overview.Recipient {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	addrs, err := mail.ParseAddressList(header)
	if err != nil {
		return []overview.Recipient{{Name: header}}
	}
	out := make([]overview.Recipient, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, overview.Recipient{Name: a.Name, Email: a.Address})
	}
	return out
}
