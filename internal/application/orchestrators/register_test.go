package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	registrationStore "eventhub/internal/adapters/storage/registration"
	"eventhub/internal/domain/event"
	"eventhub/internal/domain/registration"
)

// --- Mock registration store ---

type regKey struct{ eventID, accountID string }

type mockRegistrationStore struct {
	regs map[regKey]registration.Registration
}

func newMockRegistrationStore() *mockRegistrationStore {
	return &mockRegistrationStore{regs: make(map[regKey]registration.Registration)}
}

// Create stores a mock registration.
// PRE: r is valid
// POST: Stored, or ErrDuplicate when the pair already exists
func (m *mockRegistrationStore) Create(_ context.Context, r registration.Registration) error {
	k := regKey{r.EventID, r.AccountID}
	if _, ok := m.regs[k]; ok {
		return registrationStore.ErrDuplicate
	}
	m.regs[k] = r
	return nil
}

// Get retrieves a mock registration.
// PRE: eventID and accountID non-empty
// POST: Returns registration or error
func (m *mockRegistrationStore) Get(_ context.Context, eventID, accountID string) (registration.Registration, error) {
	r, ok := m.regs[regKey{eventID, accountID}]
	if !ok {
		return registration.Registration{}, errors.New("not found")
	}
	return r, nil
}

// Delete removes a mock registration.
// PRE: eventID and accountID non-empty
// POST: Registration removed from map
func (m *mockRegistrationStore) Delete(_ context.Context, eventID, accountID string) error {
	k := regKey{eventID, accountID}
	if _, ok := m.regs[k]; !ok {
		return errors.New("not found")
	}
	delete(m.regs, k)
	return nil
}

func seedEvent(store *mockEventStore, id string) {
	store.events[id] = event.Event{
		ID:            id,
		Title:         "Tech Fest",
		Description:   "desc",
		Date:          "2026-04-10",
		Time:          "09:30",
		Location:      "Main Auditorium",
		CoordinatorID: "coord-1",
	}
}

// --- Register Tests ---

// TestRegister_Success tests registering for an existing event.
func TestRegister_Success(t *testing.T) {
	regs := newMockRegistrationStore()
	events := newMockEventStore()
	seedEvent(events, "evt-1")

	deps := RegisterDeps{RegistrationStore: regs, Events: events, Now: fixedNow}
	r, err := ExecuteRegister(context.Background(), RegisterInput{EventID: "evt-1", AccountID: "acct-1"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.RegisteredAt.Equal(fixedTime) {
		t.Errorf("RegisteredAt = %v, want %v", r.RegisteredAt, fixedTime)
	}
	if _, ok := regs.regs[regKey{"evt-1", "acct-1"}]; !ok {
		t.Error("registration not persisted")
	}
}

// TestRegister_Duplicate tests that registering twice surfaces a dedicated error.
func TestRegister_Duplicate(t *testing.T) {
	regs := newMockRegistrationStore()
	events := newMockEventStore()
	seedEvent(events, "evt-1")
	deps := RegisterDeps{RegistrationStore: regs, Events: events, Now: fixedNow}

	if _, err := ExecuteRegister(context.Background(), RegisterInput{EventID: "evt-1", AccountID: "acct-1"}, deps); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := ExecuteRegister(context.Background(), RegisterInput{EventID: "evt-1", AccountID: "acct-1"}, deps)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got: %v", err)
	}
	if len(regs.regs) != 1 {
		t.Errorf("registrations = %d, want 1", len(regs.regs))
	}
}

// TestRegister_EventNotFound tests that registering for a missing event fails.
func TestRegister_EventNotFound(t *testing.T) {
	deps := RegisterDeps{
		RegistrationStore: newMockRegistrationStore(),
		Events:            newMockEventStore(),
		Now:               fixedNow,
	}
	_, err := ExecuteRegister(context.Background(), RegisterInput{EventID: "evt-missing", AccountID: "acct-1"}, deps)
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got: %v", err)
	}
}

// --- Cancel Tests ---

// TestCancel_WithinWindow tests cancelling before two days have elapsed.
func TestCancel_WithinWindow(t *testing.T) {
	regs := newMockRegistrationStore()
	regs.regs[regKey{"evt-1", "acct-1"}] = registration.Registration{
		EventID:      "evt-1",
		AccountID:    "acct-1",
		RegisteredAt: fixedTime,
	}

	now := fixedTime.Add(registration.CancelWindow - time.Second)
	deps := CancelDeps{RegistrationStore: regs, Now: func() time.Time { return now }}

	if err := ExecuteCancel(context.Background(), CancelInput{EventID: "evt-1", AccountID: "acct-1"}, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := regs.regs[regKey{"evt-1", "acct-1"}]; ok {
		t.Error("registration still present after cancel")
	}
}

// TestCancel_WindowClosed tests that cancellation is denied at and past the
// window boundary.
func TestCancel_WindowClosed(t *testing.T) {
	offsets := []time.Duration{
		registration.CancelWindow,
		registration.CancelWindow + time.Hour,
		7 * 24 * time.Hour,
	}
	for _, offset := range offsets {
		regs := newMockRegistrationStore()
		regs.regs[regKey{"evt-1", "acct-1"}] = registration.Registration{
			EventID:      "evt-1",
			AccountID:    "acct-1",
			RegisteredAt: fixedTime,
		}
		now := fixedTime.Add(offset)
		deps := CancelDeps{RegistrationStore: regs, Now: func() time.Time { return now }}

		err := ExecuteCancel(context.Background(), CancelInput{EventID: "evt-1", AccountID: "acct-1"}, deps)
		if !errors.Is(err, ErrCancelWindowOver) {
			t.Errorf("offset %v: expected ErrCancelWindowOver, got: %v", offset, err)
		}
		if _, ok := regs.regs[regKey{"evt-1", "acct-1"}]; !ok {
			t.Errorf("offset %v: registration removed despite denial", offset)
		}
	}
}

// TestCancel_NotRegistered tests cancelling without a registration.
func TestCancel_NotRegistered(t *testing.T) {
	deps := CancelDeps{RegistrationStore: newMockRegistrationStore(), Now: fixedNow}
	err := ExecuteCancel(context.Background(), CancelInput{EventID: "evt-1", AccountID: "acct-1"}, deps)
	if !errors.Is(err, ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got: %v", err)
	}
}

// TestCancel_ZeroTimestampDenied tests that a registration whose timestamp was
// lost is treated as outside the window.
func TestCancel_ZeroTimestampDenied(t *testing.T) {
	regs := newMockRegistrationStore()
	regs.regs[regKey{"evt-1", "acct-1"}] = registration.Registration{
		EventID:   "evt-1",
		AccountID: "acct-1",
	}
	deps := CancelDeps{RegistrationStore: regs, Now: fixedNow}

	err := ExecuteCancel(context.Background(), CancelInput{EventID: "evt-1", AccountID: "acct-1"}, deps)
	if !errors.Is(err, ErrCancelWindowOver) {
		t.Errorf("expected ErrCancelWindowOver, got: %v", err)
	}
}

// TestCancelThenReregister tests that a fresh registration after cancelling
// gets a fresh timestamp and its own window.
func TestCancelThenReregister(t *testing.T) {
	regs := newMockRegistrationStore()
	events := newMockEventStore()
	seedEvent(events, "evt-1")

	clock := fixedTime
	now := func() time.Time { return clock }
	registerDeps := RegisterDeps{RegistrationStore: regs, Events: events, Now: now}
	cancelDeps := CancelDeps{RegistrationStore: regs, Now: now}

	if _, err := ExecuteRegister(context.Background(), RegisterInput{EventID: "evt-1", AccountID: "acct-1"}, registerDeps); err != nil {
		t.Fatalf("register: %v", err)
	}

	clock = fixedTime.Add(24 * time.Hour)
	if err := ExecuteCancel(context.Background(), CancelInput{EventID: "evt-1", AccountID: "acct-1"}, cancelDeps); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	clock = fixedTime.Add(72 * time.Hour)
	r, err := ExecuteRegister(context.Background(), RegisterInput{EventID: "evt-1", AccountID: "acct-1"}, registerDeps)
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if !r.RegisteredAt.Equal(fixedTime.Add(72 * time.Hour)) {
		t.Errorf("RegisteredAt = %v, want the re-registration time", r.RegisteredAt)
	}

	// The new window runs from the second registration.
	clock = fixedTime.Add(73 * time.Hour)
	if err := ExecuteCancel(context.Background(), CancelInput{EventID: "evt-1", AccountID: "acct-1"}, cancelDeps); err != nil {
		t.Errorf("cancel within the fresh window: %v", err)
	}
}
