package orchestrators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"

	"fitstudio/internal/adapters/email"
	"fitstudio/internal/domain/outbox"
)

// EmailPayload is the outbox payload of one queued notification.
type EmailPayload struct {
	To      []string `json:"to"`
	From    string   `json:"from,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

func (p EmailPayload) request() email.SendRequest {
	return email.SendRequest{To: p.To, From: p.From, Subject: p.Subject, HTML: p.HTML, ReplyTo: p.ReplyTo}
}

// notification is a studio inbox notice about one accepted submission.
type notification struct {
	Heading string
	Fields  []notificationField
	ReplyTo string
}

type notificationField struct {
	Label string
	Value string
}

var notificationTemplate = template.Must(template.New("notification").Parse(`<h2>{{.Heading}}</h2>
<table>
{{- range .Fields}}{{if .Value}}
<tr><th align="left">{{.Label}}</th><td style="white-space:pre-wrap">{{.Value}}</td></tr>
{{- end}}{{end}}
</table>`))

func (n notification) render() (string, error) {
	var buf bytes.Buffer
	if err := notificationTemplate.Execute(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// notify emails the studio inboxes, one message per inbox. Anything that is
// not accepted by the provider is queued in the outbox.
// POST: never fails the submission; problems are logged
func notify(ctx context.Context, kind string, n notification, deps FormDeps) {
	if len(deps.NotifyTo) == 0 || deps.Sender == nil {
		return
	}
	html, err := n.render()
	if err != nil {
		slog.Error("notification_render_failed", "kind", kind, "error", err)
		return
	}

	payloads := make([]EmailPayload, 0, len(deps.NotifyTo))
	reqs := make([]email.SendRequest, 0, len(deps.NotifyTo))
	for _, to := range deps.NotifyTo {
		p := EmailPayload{To: []string{to}, From: deps.From, Subject: n.Heading, HTML: html, ReplyTo: n.ReplyTo}
		payloads = append(payloads, p)
		reqs = append(reqs, p.request())
	}

	results, err := deps.Sender.SendBatch(ctx, reqs)
	if err == nil && len(results) == len(reqs) {
		slog.Info("notification_sent", "kind", kind, "count", len(results))
		return
	}
	slog.Warn("notification_send_failed", "kind", kind, "sent", len(results), "error", err)

	// Results come back in request order, so the unsent tail is queued.
	for _, p := range payloads[min(len(results), len(payloads)):] {
		if qerr := enqueueEmail(ctx, p, deps); qerr != nil {
			slog.Error("notification_queue_failed", "kind", kind, "error", qerr)
		}
	}
}

func enqueueEmail(ctx context.Context, p EmailPayload, deps FormDeps) error {
	if deps.Outbox == nil {
		return fmt.Errorf("no outbox configured")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode email payload: %w", err)
	}
	entry := outbox.NewEntry(deps.GenerateID(), outbox.ActionTypeNotifyEmail, string(raw), deps.Now())
	if err := entry.Validate(); err != nil {
		return err
	}
	if err := deps.Outbox.Save(ctx, entry); err != nil {
		return fmt.Errorf("save outbox entry: %w", err)
	}
	slog.Info("notification_queued", "entry_id", entry.ID)
	return nil
}
