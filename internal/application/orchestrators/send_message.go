package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"eventhub/internal/adapters/email"
	registrationStore "eventhub/internal/adapters/storage/registration"
	"eventhub/internal/domain/account"
	eventDomain "eventhub/internal/domain/event"
)

// EventStoreForMessaging defines the event read needed by SendMessage.
type EventStoreForMessaging interface {
	GetByID(ctx context.Context, id string) (eventDomain.Event, error)
}

// RosterForMessaging defines the roster read needed by SendMessage.
type RosterForMessaging interface {
	ListParticipants(ctx context.Context, eventID string) ([]registrationStore.ParticipantRow, error)
}

var (
	ErrEmptyMessage = errors.New("message cannot be empty")
	ErrNoRecipients = errors.New("event has no registered participants")
)

// mdRenderer converts the coordinator's markdown message into the HTML body.
// Raw HTML in the input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// SendMessageInput carries input for the send message orchestrator.
type SendMessageInput struct {
	EventID    string
	Message    string
	CallerID   string
	CallerRole string
}

// SendMessageResult reports the outcome of a broadcast.
type SendMessageResult struct {
	Recipients int
}

// SendMessageDeps holds dependencies for SendMessage.
type SendMessageDeps struct {
	EventStore  EventStoreForMessaging
	Roster      RosterForMessaging
	Sender      email.Sender
	FromAddress string
	ReplyTo     string
}

// ExecuteSendMessage broadcasts a message to every registrant of an event the
// caller owns. Fire-and-forget: one attempt, success or failure reported once,
// no retry or audit trail.
// PRE: Caller owns the event; message is non-blank
// POST: One email per registrant handed to the provider
func ExecuteSendMessage(ctx context.Context, input SendMessageInput, deps SendMessageDeps) (SendMessageResult, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return SendMessageResult{}, ErrEmptyMessage
	}
	if input.CallerRole != account.RoleCoordinator {
		return SendMessageResult{}, ErrNotCoordinator
	}

	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return SendMessageResult{}, ErrEventNotFound
	}
	if !e.IsOwnedBy(input.CallerID) {
		slog.Warn("message_event", "event", "send_denied", "event_id", input.EventID, "caller_id", input.CallerID)
		return SendMessageResult{}, ErrNotEventOwner
	}

	roster, err := deps.Roster.ListParticipants(ctx, input.EventID)
	if err != nil {
		return SendMessageResult{}, err
	}
	if len(roster) == 0 {
		return SendMessageResult{}, ErrNoRecipients
	}

	var body bytes.Buffer
	if err := mdRenderer.Convert([]byte(message), &body); err != nil {
		body.Reset()
		body.WriteString("<p>" + template.HTMLEscapeString(message) + "</p>")
	}
	html := fmt.Sprintf("<p>Update for <strong>%s</strong> (%s %s, %s):</p>%s",
		template.HTMLEscapeString(e.Title),
		template.HTMLEscapeString(e.Date),
		template.HTMLEscapeString(e.Time),
		template.HTMLEscapeString(e.Location),
		body.String(),
	)
	subject := "Update: " + e.Title

	reqs := make([]email.SendRequest, 0, len(roster))
	for _, row := range roster {
		reqs = append(reqs, email.SendRequest{
			To:      []string{row.Email},
			From:    deps.FromAddress,
			Subject: subject,
			HTML:    html,
			ReplyTo: deps.ReplyTo,
		})
	}

	if _, err := deps.Sender.SendBatch(ctx, reqs); err != nil {
		return SendMessageResult{}, fmt.Errorf("message dispatch failed: %w", err)
	}

	slog.Info("message_event", "event", "message_sent", "event_id", input.EventID, "recipients", len(reqs))
	return SendMessageResult{Recipients: len(reqs)}, nil
}
