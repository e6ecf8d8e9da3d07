package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventhub/internal/domain/account"
)

// --- Mock account store ---

type mockAccountStore struct {
	accounts map[string]account.Account // keyed by ID
	saves    int
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

// GetByID retrieves a mock account by ID.
// PRE: id is non-empty
// POST: Returns mock account or error
func (m *mockAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return account.Account{}, errors.New("not found")
	}
	return a, nil
}

// GetByEmail retrieves a mock account by email.
// PRE: email is non-empty
// POST: Returns mock account or error
func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return account.Account{}, errors.New("not found")
}

// GetByUsernameOrPhone retrieves a mock account by username or phone.
// PRE: identifier is non-empty
// POST: Returns mock account or error
func (m *mockAccountStore) GetByUsernameOrPhone(_ context.Context, identifier string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Username == identifier {
			return a, nil
		}
		if a.Phone != "" && a.Phone == identifier {
			return a, nil
		}
	}
	return account.Account{}, errors.New("not found")
}

// Save persists a mock account.
// PRE: a has a valid ID
// POST: Account stored in map
func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.ID] = a
	m.saves++
	return nil
}

// Count returns the number of stored mock accounts.
// PRE: none
// POST: Returns the count
func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.accounts), nil
}

// Delete removes a mock account by ID.
// PRE: id is non-empty
// POST: Account removed from map
func (m *mockAccountStore) Delete(_ context.Context, id string) error {
	if _, ok := m.accounts[id]; !ok {
		return errors.New("not found")
	}
	delete(m.accounts, id)
	return nil
}

var fixedTime = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time {
	return fixedTime
}

func signupDeps(store *mockAccountStore) SignupDeps {
	return SignupDeps{
		AccountStore: store,
		GenerateID:   func() string { return "acct-1" },
		Now:          fixedNow,
	}
}

// --- Signup Tests ---

// TestSignup_Participant tests creating a participant account.
func TestSignup_Participant(t *testing.T) {
	store := newMockAccountStore()

	input := SignupInput{
		Username:    "ananya",
		Email:       "ananya@college.edu",
		Password:    "hunter2hunter2",
		Role:        account.RoleParticipant,
		Phone:       "9876543210",
		Department:  "CSE",
		YearOfStudy: "2",
		College:     "Govt Engineering College",
	}

	acct, err := ExecuteSignup(context.Background(), input, signupDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.ID != "acct-1" {
		t.Errorf("ID = %q, want %q", acct.ID, "acct-1")
	}
	if acct.Role != account.RoleParticipant {
		t.Errorf("role = %q, want %q", acct.Role, account.RoleParticipant)
	}
	if acct.PasswordHash == "" || acct.PasswordHash == input.Password {
		t.Error("password must be stored hashed")
	}
	if _, ok := store.accounts["acct-1"]; !ok {
		t.Error("account not persisted")
	}
}

// TestSignup_Coordinator tests that the coordinator role is assigned at signup.
func TestSignup_Coordinator(t *testing.T) {
	store := newMockAccountStore()

	input := SignupInput{
		Username: "dr-rao",
		Email:    "rao@college.edu",
		Password: "longenoughpw",
		Role:     account.RoleCoordinator,
	}

	acct, err := ExecuteSignup(context.Background(), input, signupDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !acct.IsCoordinator() {
		t.Error("expected coordinator account")
	}
}

// TestSignup_DuplicateEmail tests that a taken email is rejected.
func TestSignup_DuplicateEmail(t *testing.T) {
	store := newMockAccountStore()
	store.accounts["existing"] = account.Account{
		ID:       "existing",
		Username: "other",
		Email:    "ananya@college.edu",
		Role:     account.RoleParticipant,
	}

	input := SignupInput{
		Username: "ananya",
		Email:    "ananya@college.edu",
		Password: "hunter2hunter2",
		Role:     account.RoleParticipant,
	}

	_, err := ExecuteSignup(context.Background(), input, signupDeps(store))
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}
}

// TestSignup_DuplicateUsername tests that a taken username is rejected.
func TestSignup_DuplicateUsername(t *testing.T) {
	store := newMockAccountStore()
	store.accounts["existing"] = account.Account{
		ID:       "existing",
		Username: "ananya",
		Email:    "other@college.edu",
		Role:     account.RoleParticipant,
	}

	input := SignupInput{
		Username: "ananya",
		Email:    "ananya@college.edu",
		Password: "hunter2hunter2",
		Role:     account.RoleParticipant,
	}

	_, err := ExecuteSignup(context.Background(), input, signupDeps(store))
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got: %v", err)
	}
}

// TestSignup_DuplicatePhone tests that a phone already on file is rejected.
func TestSignup_DuplicatePhone(t *testing.T) {
	store := newMockAccountStore()
	store.accounts["existing"] = account.Account{
		ID:       "existing",
		Username: "other",
		Email:    "other@college.edu",
		Phone:    "9876543210",
		Role:     account.RoleParticipant,
	}

	input := SignupInput{
		Username: "ananya",
		Email:    "ananya@college.edu",
		Password: "hunter2hunter2",
		Phone:    "9876543210",
		Role:     account.RoleParticipant,
	}

	_, err := ExecuteSignup(context.Background(), input, signupDeps(store))
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got: %v", err)
	}
}

// TestSignup_InvalidInput tests that validation failures never reach the store.
func TestSignup_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input SignupInput
	}{
		{"empty username", SignupInput{Email: "a@b.com", Password: "hunter2hunter2", Role: account.RoleParticipant}},
		{"username with at sign", SignupInput{Username: "a@b", Email: "a@b.com", Password: "hunter2hunter2", Role: account.RoleParticipant}},
		{"bad email", SignupInput{Username: "ananya", Email: "not-an-email", Password: "hunter2hunter2", Role: account.RoleParticipant}},
		{"unknown role", SignupInput{Username: "ananya", Email: "a@b.com", Password: "hunter2hunter2", Role: "admin"}},
		{"short password", SignupInput{Username: "ananya", Email: "a@b.com", Password: "short", Role: account.RoleParticipant}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockAccountStore()
			_, err := ExecuteSignup(context.Background(), tt.input, signupDeps(store))
			if err == nil {
				t.Error("expected validation error")
			}
			if store.saves != 0 {
				t.Errorf("store.saves = %d, want 0", store.saves)
			}
		})
	}
}

// --- Delete Account Tests ---

// TestDeleteAccount_Success tests removing an existing account.
func TestDeleteAccount_Success(t *testing.T) {
	store := newMockAccountStore()
	store.accounts["acct-1"] = account.Account{ID: "acct-1", Username: "ananya"}

	err := ExecuteDeleteAccount(context.Background(), DeleteAccountInput{AccountID: "acct-1"}, DeleteAccountDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.accounts["acct-1"]; ok {
		t.Error("account still present after delete")
	}
}

// TestDeleteAccount_MissingID tests that an empty account ID is rejected.
func TestDeleteAccount_MissingID(t *testing.T) {
	err := ExecuteDeleteAccount(context.Background(), DeleteAccountInput{}, DeleteAccountDeps{AccountStore: newMockAccountStore()})
	if err == nil {
		t.Error("expected error for missing account ID")
	}
}
