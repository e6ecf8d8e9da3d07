package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to deliver one message via an external
// provider. Event broadcasts produce one request per registrant.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address (e.g. "EventHub <noreply@eventhub.local>")
	Subject string
	HTML    string // HTML body
	ReplyTo string // Reply-to address
}

// SendResult contains the response from the provider.
type SendResult struct {
	MessageID string    // Provider's message ID
	SentAt    time.Time // When the send was accepted
}

// Sender is the interface for delivering messages via an external provider.
// Dispatch is fire-and-forget: there is no delivery confirmation or retry.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
	SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error)
}
