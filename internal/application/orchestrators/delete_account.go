package orchestrators

import (
	"context"
	"errors"
	"log/slog"
)

// AccountStoreForDeletion defines the store interface needed by DeleteAccount.
type AccountStoreForDeletion interface {
	Delete(ctx context.Context, id string) error
}

// DeleteAccountInput carries input for the delete account orchestrator.
type DeleteAccountInput struct {
	AccountID string // From the session, never from user input
}

// DeleteAccountDeps holds dependencies for DeleteAccount.
type DeleteAccountDeps struct {
	AccountStore AccountStoreForDeletion
}

// ExecuteDeleteAccount removes the caller's own account. Registrations held by
// the account are removed by the store's cascade. Irreversible.
// PRE: AccountID comes from an authenticated session
// POST: Account and its registrations are gone
func ExecuteDeleteAccount(ctx context.Context, input DeleteAccountInput, deps DeleteAccountDeps) error {
	if input.AccountID == "" {
		return errors.New("account ID is required")
	}
	if err := deps.AccountStore.Delete(ctx, input.AccountID); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "account_deleted", "account_id", input.AccountID)
	return nil
}
