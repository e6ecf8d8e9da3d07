package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"eventhub/internal/adapters/email"
	registrationStore "eventhub/internal/adapters/storage/registration"
	"eventhub/internal/domain/account"
)

// --- Mock roster ---

type mockRoster struct {
	rows map[string][]registrationStore.ParticipantRow
	err  error
}

func newMockRoster() *mockRoster {
	return &mockRoster{rows: make(map[string][]registrationStore.ParticipantRow)}
}

// ListParticipants returns the mock roster for an event.
// PRE: eventID is non-empty
// POST: Returns stored rows or the configured error
func (m *mockRoster) ListParticipants(_ context.Context, eventID string) ([]registrationStore.ParticipantRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows[eventID], nil
}

// --- Mock sender ---

type mockSender struct {
	sent     int
	fail     bool
	sentReqs []email.SendRequest
}

// Send simulates a single delivery.
// PRE: req is valid
// POST: Increments sent counter
func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.fail {
		return email.SendResult{}, errors.New("send failed")
	}
	m.sent++
	m.sentReqs = append(m.sentReqs, req)
	return email.SendResult{MessageID: "mock-id"}, nil
}

// SendBatch simulates batch delivery.
// PRE: reqs is non-empty
// POST: Returns one result per request
func (m *mockSender) SendBatch(_ context.Context, reqs []email.SendRequest) ([]email.SendResult, error) {
	if m.fail {
		return nil, errors.New("batch send failed")
	}
	var results []email.SendResult
	for _, req := range reqs {
		m.sent++
		m.sentReqs = append(m.sentReqs, req)
		results = append(results, email.SendResult{MessageID: "mock-batch-id"})
	}
	return results, nil
}

func messagingFixture(t *testing.T) (*mockEventStore, *mockRoster, *mockSender, SendMessageDeps) {
	t.Helper()
	events := newMockEventStore()
	seedEvent(events, "evt-1")
	roster := newMockRoster()
	roster.rows["evt-1"] = []registrationStore.ParticipantRow{
		{AccountID: "acct-1", Name: "ananya", Email: "ananya@college.edu"},
		{AccountID: "acct-2", Name: "vikram", Email: "vikram@college.edu"},
	}
	sender := &mockSender{}
	deps := SendMessageDeps{
		EventStore:  events,
		Roster:      roster,
		Sender:      sender,
		FromAddress: "EventHub <noreply@test.com>",
		ReplyTo:     "coordinators@test.com",
	}
	return events, roster, sender, deps
}

// --- Send Message Tests ---

// TestSendMessage_Broadcast tests that every registrant gets one message.
func TestSendMessage_Broadcast(t *testing.T) {
	_, _, sender, deps := messagingFixture(t)

	res, err := ExecuteSendMessage(context.Background(), SendMessageInput{
		EventID:    "evt-1",
		Message:    "Venue changed to **Block C**.",
		CallerID:   "coord-1",
		CallerRole: account.RoleCoordinator,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Recipients != 2 {
		t.Errorf("Recipients = %d, want 2", res.Recipients)
	}
	if sender.sent != 2 {
		t.Errorf("sent = %d, want 2", sender.sent)
	}

	req := sender.sentReqs[0]
	if req.To[0] != "ananya@college.edu" {
		t.Errorf("To = %q, want roster order", req.To[0])
	}
	if !strings.Contains(req.Subject, "Tech Fest") {
		t.Errorf("subject %q should name the event", req.Subject)
	}
	if !strings.Contains(req.HTML, "<strong>Block C</strong>") {
		t.Errorf("markdown not rendered, HTML = %q", req.HTML)
	}
	if !strings.Contains(req.HTML, "Main Auditorium") {
		t.Errorf("event context missing from body, HTML = %q", req.HTML)
	}
}

// TestSendMessage_RawHTMLEscaped tests that HTML in the message body is not
// passed through to recipients.
func TestSendMessage_RawHTMLEscaped(t *testing.T) {
	_, _, sender, deps := messagingFixture(t)

	_, err := ExecuteSendMessage(context.Background(), SendMessageInput{
		EventID:    "evt-1",
		Message:    `<script>alert("x")</script>`,
		CallerID:   "coord-1",
		CallerRole: account.RoleCoordinator,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(sender.sentReqs[0].HTML, "<script>") {
		t.Errorf("raw HTML leaked into body: %q", sender.sentReqs[0].HTML)
	}
}

// TestSendMessage_BlankMessage tests that whitespace-only text never reaches
// the provider.
func TestSendMessage_BlankMessage(t *testing.T) {
	_, _, sender, deps := messagingFixture(t)

	for _, msg := range []string{"", "   ", "\n\t "} {
		_, err := ExecuteSendMessage(context.Background(), SendMessageInput{
			EventID:    "evt-1",
			Message:    msg,
			CallerID:   "coord-1",
			CallerRole: account.RoleCoordinator,
		}, deps)
		if !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("message %q: expected ErrEmptyMessage, got: %v", msg, err)
		}
	}
	if sender.sent != 0 {
		t.Errorf("sent = %d, want 0", sender.sent)
	}
}

// TestSendMessage_NotOwner tests that a different coordinator cannot message
// the roster.
func TestSendMessage_NotOwner(t *testing.T) {
	_, _, sender, deps := messagingFixture(t)

	_, err := ExecuteSendMessage(context.Background(), SendMessageInput{
		EventID:    "evt-1",
		Message:    "hello",
		CallerID:   "coord-2",
		CallerRole: account.RoleCoordinator,
	}, deps)
	if !errors.Is(err, ErrNotEventOwner) {
		t.Errorf("expected ErrNotEventOwner, got: %v", err)
	}
	if sender.sent != 0 {
		t.Errorf("sent = %d, want 0", sender.sent)
	}
}

// TestSendMessage_ParticipantRejected tests the role gate on messaging.
func TestSendMessage_ParticipantRejected(t *testing.T) {
	_, _, _, deps := messagingFixture(t)

	_, err := ExecuteSendMessage(context.Background(), SendMessageInput{
		EventID:    "evt-1",
		Message:    "hello",
		CallerID:   "acct-1",
		CallerRole: account.RoleParticipant,
	}, deps)
	if !errors.Is(err, ErrNotCoordinator) {
		t.Errorf("expected ErrNotCoordinator, got: %v", err)
	}
}

// TestSendMessage_NoRecipients tests that an empty roster is reported, not
// silently succeeded.
func TestSendMessage_NoRecipients(t *testing.T) {
	_, roster, _, deps := messagingFixture(t)
	roster.rows["evt-1"] = nil

	_, err := ExecuteSendMessage(context.Background(), SendMessageInput{
		EventID:    "evt-1",
		Message:    "hello",
		CallerID:   "coord-1",
		CallerRole: account.RoleCoordinator,
	}, deps)
	if !errors.Is(err, ErrNoRecipients) {
		t.Errorf("expected ErrNoRecipients, got: %v", err)
	}
}

// TestSendMessage_EventNotFound tests messaging a missing event.
func TestSendMessage_EventNotFound(t *testing.T) {
	_, _, _, deps := messagingFixture(t)

	_, err := ExecuteSendMessage(context.Background(), SendMessageInput{
		EventID:    "evt-missing",
		Message:    "hello",
		CallerID:   "coord-1",
		CallerRole: account.RoleCoordinator,
	}, deps)
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got: %v", err)
	}
}

// TestSendMessage_ProviderFailure tests that dispatch errors surface to the caller.
func TestSendMessage_ProviderFailure(t *testing.T) {
	_, _, sender, deps := messagingFixture(t)
	sender.fail = true

	_, err := ExecuteSendMessage(context.Background(), SendMessageInput{
		EventID:    "evt-1",
		Message:    "hello",
		CallerID:   "coord-1",
		CallerRole: account.RoleCoordinator,
	}, deps)
	if err == nil {
		t.Error("expected error from provider failure")
	}
}
